package integration

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mvln/mvln/internal/engine"
	"github.com/mvln/mvln/internal/fsx"
)

// newTestEngine creates an engine backed by the real filesystem with
// logging discarded.
func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return engine.New(fsx.NewRealFS(), log)
}

// tempRoot returns a symlink-resolved temporary directory so fixture
// paths compare equal to planner output.
func tempRoot(t *testing.T) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return root
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	mustMkdir(t, filepath.Dir(path))
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

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return string(data)
}

// resolve follows every symlink in path and fails the test when the
// chain is broken.
func resolve(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("broken link chain at %s: %v", path, err)
	}
	return resolved
}
