package diskusage

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func plainColors(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestFormatKB(t *testing.T) {
	tests := []struct {
		kb   float64
		want string
	}{
		{512, "512k"},
		{1023, "1023k"},
		{1024, "1M"},
		{987 * 1024, "987M"},
		{1536000, "1.5G"},
		{3 * 1024 * 1024, "3.0G"},
		{2 * 1024 * 1024 * 1024, "2.0T"},
		// Values past terabytes stay in terabytes instead of overflowing
		// the unit table.
		{5 * 1024 * 1024 * 1024 * 1024, "5120.0T"},
		{0, "0k"},
	}

	for _, tt := range tests {
		if got := formatKB(tt.kb); got != tt.want {
			t.Errorf("formatKB(%v) = %q, want %q", tt.kb, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"verylongname", 8, "verylon…"},
		{"ééééé", 3, "éé…"},
	}

	for _, tt := range tests {
		if got := truncate(tt.s, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestPartitionLineWide(t *testing.T) {
	part := Partition{Name: "tmpfs", Path: "/tmp", SizeKB: 1024, UsedKB: 512}

	got := partitionLine(part, 120, 5, 4)

	// width 120 leaves 73 bar cells; half full is 36 whole blocks plus the
	// middle partial block.
	bar := strings.Repeat("▇", 36) + "▄" + strings.Repeat("▁", 36)
	want := "  tmpfs  /tmp [ 50.0%] of     1M " + bar + " [  512k free]"
	if got != want {
		t.Errorf("line = %q\nwant   %q", got, want)
	}
}

func TestPartitionLineNarrow(t *testing.T) {
	part := Partition{Name: "tmpfs", Path: "/tmp", SizeKB: 1024, UsedKB: 512}

	got := partitionLine(part, 80, 19, 19)

	want := "  tmpfs" + strings.Repeat(" ", 14) +
		"  /tmp" + strings.Repeat(" ", 15) +
		" [ 50.0%] of     1M [  512k free]"
	if got != want {
		t.Errorf("line = %q\nwant   %q", got, want)
	}
}

func TestPartitionLineFull(t *testing.T) {
	part := Partition{Name: "disk", Path: "/", SizeKB: 1000, UsedKB: 1000}

	got := partitionLine(part, 120, 4, 1)

	// A full bar has no partial block and no empty cells.
	width := 120 - 4 - 1 - lineSizeApprox
	if !strings.Contains(got, strings.Repeat("▇", width)) {
		t.Errorf("expected a full bar in %q", got)
	}
	if strings.Contains(got, "▁") {
		t.Errorf("full bar should have no empty cells: %q", got)
	}
	if !strings.Contains(got, "[100.0%]") {
		t.Errorf("expected 100.0%% in %q", got)
	}
}

func TestRender(t *testing.T) {
	plainColors(t)

	reports := []Report{
		{
			Label: "host1",
			Partitions: []Partition{
				{Name: "zdisk", Path: "/z", SizeKB: 1000, UsedKB: 500},
				{Name: "adisk", Path: "/a", SizeKB: 1000, UsedKB: 250},
			},
		},
		{Err: "No Android device connected"},
		{Label: "SER9 (adb device)", Err: "command exited with return code 1"},
	}

	var buf bytes.Buffer
	Render(&buf, RenderConfig{Width: 120}, reports)
	out := buf.String()

	lines := strings.Split(out, "\n")
	if lines[0] != "Storage information for [host1]:" {
		t.Errorf("heading = %q", lines[0])
	}

	// Partitions sort by name regardless of report order.
	aIdx := strings.Index(out, "adisk")
	zIdx := strings.Index(out, "zdisk")
	if aIdx < 0 || zIdx < 0 || aIdx > zIdx {
		t.Errorf("partitions out of order:\n%s", out)
	}

	if !strings.Contains(out, "\nNo Android device connected\n") {
		t.Errorf("missing bare notice:\n%s", out)
	}
	if !strings.Contains(out, "Storage information for [SER9 (adb device)]:") {
		t.Errorf("missing device heading:\n%s", out)
	}
	if !strings.Contains(out, "[Error: command exited with return code 1]\n") {
		t.Errorf("missing device error:\n%s", out)
	}
}

func TestRenderDoesNotMutateInput(t *testing.T) {
	plainColors(t)

	parts := []Partition{
		{Name: "z", Path: "/z", SizeKB: 10, UsedKB: 1},
		{Name: "a", Path: "/a", SizeKB: 10, UsedKB: 1},
	}
	var buf bytes.Buffer
	Render(&buf, RenderConfig{Width: 120}, []Report{{Label: "h", Partitions: parts}})

	if parts[0].Name != "z" || parts[1].Name != "a" {
		t.Errorf("input slice reordered: %+v", parts)
	}
}
