package engine

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mvln/mvln/internal/planner"
)

// discover walks the search root up to maxDepth levels deep and collects
// symlinks whose stored text mentions name. Entries directly under the
// root are at depth 1. Symlinked directories are not descended into, so
// a link is only ever reported once, at its physical location.
func (e *Engine) discover(root string, maxDepth int, name string, excluded func(string) bool) ([]planner.Link, error) {
	var links []planner.Link
	err := e.walk(root, 1, maxDepth, name, excluded, &links)
	return links, err
}

func (e *Engine) walk(dir string, depth, maxDepth int, name string, excluded func(string) bool, links *[]planner.Link) error {
	if depth > maxDepth {
		return nil
	}
	entries, err := e.fs.ReadDir(dir)
	if err != nil {
		e.log.Debug("skipping unreadable directory", "dir", dir, "error", err)
		return nil
	}
	for _, entry := range entries {
		location := filepath.Join(dir, entry.Name())
		if excluded(location) {
			continue
		}
		if entry.Type()&os.ModeSymlink != 0 {
			raw, err := e.fs.Readlink(location)
			if err != nil {
				e.log.Debug("skipping unreadable link", "link", location, "error", err)
				continue
			}
			if strings.Contains(raw, name) {
				*links = append(*links, planner.Link{Location: location, RawText: raw})
			}
			continue
		}
		if entry.IsDir() {
			if err := e.walk(location, depth+1, maxDepth, name, excluded, links); err != nil {
				return err
			}
		}
	}
	return nil
}
