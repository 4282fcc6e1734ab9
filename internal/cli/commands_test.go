package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mvln/mvln/internal/config"
	"github.com/mvln/mvln/internal/diskusage"
	"github.com/mvln/mvln/internal/engine"
	"github.com/mvln/mvln/internal/planner"
)

// setupFixture creates a temporary tree, changes into it, and points the
// config lookup at a path that does not exist so tests run on defaults.
// The returned root is symlink-resolved so it matches planner output.
func setupFixture(t *testing.T) string {
	t.Helper()
	tmp, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Setenv(config.EnvConfigPath, filepath.Join(tmp, "no-such-config.yaml"))

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldDir)
	})
	return tmp
}

// linkFixture builds the standard tree used by the move tests:
// data/lib.so plus a link in app/ that points at it, and an empty
// vendor/ directory to move into.
func linkFixture(t *testing.T) string {
	t.Helper()
	tmp := setupFixture(t)
	mustMkdir(t, filepath.Join(tmp, "data"))
	mustMkdir(t, filepath.Join(tmp, "app"))
	mustMkdir(t, filepath.Join(tmp, "vendor"))
	mustWrite(t, filepath.Join(tmp, "data", "lib.so"), "lib")
	mustSymlink(t, "../data/lib.so", filepath.Join(tmp, "app", "uses"))
	return tmp
}

// runCommand executes the root command with fresh flag state and
// captured streams. Flag values persist on the package-level command
// between Execute calls, so every run resets them first.
func runCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	jsonOutput, verbose, configPath = false, false, ""
	moveDepth, moveDryRun, moveYes = 5, false, false
	duWidth, duTimeout = 0, 2

	var bufOut, bufErr bytes.Buffer
	rootCmd.SetOut(&bufOut)
	rootCmd.SetErr(&bufErr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return bufOut.String(), bufErr.String(), err
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func mustSymlink(t *testing.T, text, location string) {
	t.Helper()
	if err := os.Symlink(text, location); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func readLink(t *testing.T, location string) string {
	t.Helper()
	text, err := os.Readlink(location)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return text
}

func TestMoveDryRunPrintsPlan(t *testing.T) {
	tmp := linkFixture(t)

	out, _, err := runCommand(t, "", "data/lib.so", "vendor/lib.so", ".", "--dry-run")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	wantRename := "Rename: " + filepath.Join(tmp, "data", "lib.so") + " -> " + filepath.Join(tmp, "vendor", "lib.so")
	if !strings.Contains(out, wantRename) {
		t.Errorf("output missing %q:\n%s", wantRename, out)
	}
	wantLink := "link: " + filepath.Join(tmp, "app", "uses") + ":"
	if !strings.Contains(out, wantLink) {
		t.Errorf("output missing %q:\n%s", wantLink, out)
	}
	if !strings.Contains(out, "\t\t ../data/lib.so -> ../vendor/lib.so") {
		t.Errorf("output missing rewrite line:\n%s", out)
	}

	if _, err := os.Lstat(filepath.Join(tmp, "data", "lib.so")); err != nil {
		t.Errorf("dry run moved the target: %v", err)
	}
	if got := readLink(t, filepath.Join(tmp, "app", "uses")); got != "../data/lib.so" {
		t.Errorf("dry run rewrote the link to %q", got)
	}
}

func TestMoveAbortsOnDecline(t *testing.T) {
	tmp := linkFixture(t)

	out, errOut, err := runCommand(t, "n\n", "data/lib.so", "vendor/lib.so")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(errOut, "Proceed? (y/N): ") {
		t.Errorf("prompt not shown on stderr: %q", errOut)
	}
	if !strings.Contains(out, "Aborted") {
		t.Errorf("expected Aborted, got:\n%s", out)
	}

	if _, err := os.Lstat(filepath.Join(tmp, "data", "lib.so")); err != nil {
		t.Errorf("declined move still moved the target: %v", err)
	}
	if got := readLink(t, filepath.Join(tmp, "app", "uses")); got != "../data/lib.so" {
		t.Errorf("declined move rewrote the link to %q", got)
	}
}

func TestMoveConfirmedByPrompt(t *testing.T) {
	tmp := linkFixture(t)

	_, _, err := runCommand(t, "y\n", "data/lib.so", "vendor/lib.so")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if _, err := os.Lstat(filepath.Join(tmp, "vendor", "lib.so")); err != nil {
		t.Errorf("target not moved: %v", err)
	}
	if got := readLink(t, filepath.Join(tmp, "app", "uses")); got != "../vendor/lib.so" {
		t.Errorf("link text = %q, want %q", got, "../vendor/lib.so")
	}
}

// Naming an existing directory as the destination moves the target into
// it under its own name.
func TestMoveIntoDirectoryWithYes(t *testing.T) {
	tmp := linkFixture(t)

	out, _, err := runCommand(t, "", "data/lib.so", "vendor", "--yes")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	wantRename := "Rename: " + filepath.Join(tmp, "data", "lib.so") + " -> " + filepath.Join(tmp, "vendor", "lib.so")
	if !strings.Contains(out, wantRename) {
		t.Errorf("output missing %q:\n%s", wantRename, out)
	}
	if _, err := os.Lstat(filepath.Join(tmp, "data", "lib.so")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("old location still present (err = %v)", err)
	}
	if _, err := os.Lstat(filepath.Join(tmp, "vendor", "lib.so")); err != nil {
		t.Errorf("target not moved: %v", err)
	}
	if got := readLink(t, filepath.Join(tmp, "app", "uses")); got != "../vendor/lib.so" {
		t.Errorf("link text = %q, want %q", got, "../vendor/lib.so")
	}
}

func TestMoveJSONPlan(t *testing.T) {
	tmp := linkFixture(t)

	out, _, err := runCommand(t, "", "data/lib.so", "vendor/lib.so", "--dry-run", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var plan planner.MovePlan
	if err := json.Unmarshal([]byte(out), &plan); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if plan.Destination != filepath.Join(tmp, "vendor", "lib.so") {
		t.Errorf("destination = %q", plan.Destination)
	}
	if len(plan.Rewrites) != 1 {
		t.Fatalf("got %d rewrites, want 1", len(plan.Rewrites))
	}
	rw := plan.Rewrites[0]
	if rw.Location != filepath.Join(tmp, "app", "uses") {
		t.Errorf("rewrite location = %q", rw.Location)
	}
	if rw.NewText != "../vendor/lib.so" {
		t.Errorf("rewrite new text = %q", rw.NewText)
	}
	if rw.Class != planner.Exact {
		t.Errorf("rewrite classification = %v", rw.Class)
	}
}

// With --json and --yes the command emits the plan document followed by
// the commit result.
func TestMoveJSONCommit(t *testing.T) {
	linkFixture(t)

	out, _, err := runCommand(t, "", "data/lib.so", "vendor/lib.so", "--yes", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	dec := json.NewDecoder(strings.NewReader(out))
	var plan planner.MovePlan
	if err := dec.Decode(&plan); err != nil {
		t.Fatalf("failed to decode plan: %v\n%s", err, out)
	}
	var result engine.CommitResult
	if err := dec.Decode(&result); err != nil {
		t.Fatalf("failed to decode result: %v\n%s", err, out)
	}
	if !result.TargetMoved {
		t.Error("TargetMoved = false")
	}
	if result.Relinked != 1 {
		t.Errorf("Relinked = %d, want 1", result.Relinked)
	}
}

func TestMoveValidationError(t *testing.T) {
	tmp := linkFixture(t)
	mustWrite(t, filepath.Join(tmp, "data", "other"), "occupied")

	_, _, err := runCommand(t, "", "data/lib.so", "data/other", "--dry-run")
	if !errors.Is(err, engine.ErrDestinationExists) {
		t.Fatalf("got %v, want ErrDestinationExists", err)
	}
}

// A configured depth applies when the --depth flag is not given.
func TestMoveDepthFromConfig(t *testing.T) {
	tmp := linkFixture(t)
	cfgPath := filepath.Join(tmp, "config.yaml")
	mustWrite(t, cfgPath, "move:\n  depth: 0\n")
	t.Setenv(config.EnvConfigPath, cfgPath)

	out, _, err := runCommand(t, "", "data/lib.so", "vendor/lib.so", "--dry-run")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "No links to fix") {
		t.Errorf("depth 0 should find no links:\n%s", out)
	}
}

func TestDuLocalJSON(t *testing.T) {
	setupFixture(t)

	out, _, err := runCommand(t, "", "du", "local", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var reports []diskusage.Report
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}
	if reports[0].Err == "" && len(reports[0].Partitions) == 0 {
		t.Error("report has neither partitions nor an error")
	}
}

func TestDuRejectsUnknownMode(t *testing.T) {
	setupFixture(t)

	_, _, err := runCommand(t, "", "du", "floppy")
	if err == nil || !strings.Contains(err.Error(), "unknown mode") {
		t.Fatalf("got %v, want unknown mode error", err)
	}
}
