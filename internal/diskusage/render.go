package diskusage

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

const (
	// minTerminalWidth is the narrowest terminal that still gets usage bars.
	minTerminalWidth = 100

	// lineSizeApprox is the width of a rendered line without name and path.
	lineSizeApprox = 38

	defaultTerminalWidth = 80
)

// partialBlocks grades the fractional cell at the end of a usage bar.
var partialBlocks = []rune("▂▃▄▅▆")

// RenderConfig controls how reports are laid out.
type RenderConfig struct {
	// Width is the terminal width in columns. Zero or negative falls
	// back to 80, which is too narrow for bars.
	Width int
}

// Render writes each report as a heading followed by one line per
// partition, sorted by filesystem name. Reports without a label render
// as a bare notice line.
func Render(w io.Writer, cfg RenderConfig, reports []Report) {
	width := cfg.Width
	if width <= 0 {
		width = defaultTerminalWidth
	}

	heading := color.New(color.Bold, color.BgWhite, color.FgBlack)
	for _, report := range reports {
		if report.Label == "" {
			fmt.Fprintln(w, report.Err)
			continue
		}
		fmt.Fprintln(w, heading.Sprintf("Storage information for [%s]:", report.Label))
		if report.Err != "" {
			fmt.Fprintf(w, "[Error: %s]\n\n", report.Err)
			continue
		}
		renderPartitions(w, width, report.Partitions)
		fmt.Fprintln(w)
	}
}

// renderPartitions sizes the name and path columns for the terminal and
// prints the partitions sorted by name. Narrow terminals cap both columns
// at half the width left over after the fixed parts of a line.
func renderPartitions(w io.Writer, terminalWidth int, parts []Partition) {
	var longestName, longestPath int
	for _, p := range parts {
		longestName = max(longestName, utf8.RuneCountInString(p.Name))
		longestPath = max(longestPath, utf8.RuneCountInString(p.Path))
	}

	nameLen, pathLen := longestName, longestPath
	if terminalWidth <= minTerminalWidth {
		available := terminalWidth - lineSizeApprox
		nameLen = max(lineSizeApprox/2, min(available/2, longestName))
		pathLen = max(lineSizeApprox/2, min(available/2, longestPath))
	}

	sorted := slices.Clone(parts)
	slices.SortStableFunc(sorted, func(a, b Partition) int {
		return strings.Compare(a.Name, b.Name)
	})
	for _, p := range sorted {
		fmt.Fprintln(w, partitionLine(p, terminalWidth, nameLen, pathLen))
	}
}

// partitionLine formats one partition. The percentage reflects the raw
// ratio; the bar is drawn from the ratio clamped to [0, 1], with a
// partial block grading the fractional cell.
func partitionLine(p Partition, terminalWidth, nameLen, pathLen int) string {
	var progress float64
	if p.SizeKB != 0 {
		progress = float64(p.UsedKB) / float64(p.SizeKB)
	}

	width := max(0, terminalWidth-pathLen-nameLen-lineSizeApprox)

	free := fmt.Sprintf("%6s free", formatKB(float64(p.SizeKB-p.UsedKB)))
	size := fmt.Sprintf("%6s", formatKB(float64(p.SizeKB)))
	percentage := fmt.Sprintf("%5.1f", progress*100)

	progress = min(1, max(0, progress))
	whole := int(math.Floor(progress * float64(width)))

	remainder := math.Mod(progress*float64(width), 1)
	part := string(partialBlocks[int(remainder*float64(len(partialBlocks)))])
	if width-whole-1 < 0 {
		part = ""
	}

	sizeCombined := fmt.Sprintf("%s [%s]", size, free)
	if terminalWidth >= minTerminalWidth {
		bar := strings.Repeat("▇", whole) + part + strings.Repeat("▁", max(0, width-whole-1))
		sizeCombined = fmt.Sprintf("%s %s [%s]", size, bar, free)
	}

	name := padRight(truncate(p.Name, nameLen), nameLen)
	path := padRight(truncate(p.Path, pathLen), pathLen)
	return fmt.Sprintf("  %s  %s [%s%%] of %s", name, path, percentage, sizeCombined)
}

// formatKB renders a kilobyte count with a unit suffix: whole numbers up
// to megabytes, one decimal from gigabytes on. Values past terabytes stay
// in terabytes.
func formatKB(kb float64) string {
	suffixes := map[int]string{0: "k", 3: "M", 6: "G", 9: "T"}

	order := 0
	for kb > 1023 && order < 9 {
		kb /= 1024
		order += 3
	}

	if order < 6 {
		return strconv.Itoa(int(kb)) + suffixes[order]
	}
	return fmt.Sprintf("%.1f%s", kb, suffixes[order])
}

// truncate shortens s to width runes, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-1]) + "…"
}

// padRight pads s with spaces to width runes.
func padRight(s string, width int) string {
	gap := width - utf8.RuneCountInString(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
