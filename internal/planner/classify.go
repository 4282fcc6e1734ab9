package planner

import (
	"os"
	"path/filepath"

	"github.com/mvln/mvln/internal/fsx"
	"github.com/mvln/mvln/internal/pathutil"
)

// Classify determines whether and how link references target. The returned
// resolution is the link's full canonical resolution for PrefixOf, used
// later to preserve the link's sub-path; it is empty otherwise. Resolution
// failures come back as errors for the caller to treat as non-matches.
func Classify(fsys fsx.FS, link Link, target Target) (Classification, string, error) {
	if target.IsDir {
		return classifyDir(fsys, link, target)
	}
	return classifyEntry(fsys, link, target)
}

// classifyDir matches links whose full resolution lands inside the target
// directory, the directory itself included. Resolution tolerates a missing
// tail: a link into the directory still matches when the file it names is
// gone, and its rewritten form follows the directory to the destination.
func classifyDir(fsys fsx.FS, link Link, target Target) (Classification, string, error) {
	resolved, err := fsx.CanonicalFuture(fsys, fsx.JoinRaw(filepath.Dir(link.Location), link.RawText))
	if err != nil {
		return NoMatch, "", err
	}

	ancestor, _, _, err := pathutil.CommonAncestor(resolved, target.Canonical)
	if err != nil {
		return NoMatch, "", err
	}

	same, err := fsx.SameEntity(fsys, ancestor, target.Canonical)
	if err != nil {
		return NoMatch, "", err
	}
	if !same {
		return NoMatch, "", nil
	}
	return PrefixOf, resolved, nil
}

// classifyEntry matches links whose immediate resolution is the target.
// The single raw-text hop keeps a link-to-a-link distinguishable from a
// link-to-the-file: an indirection layer the user did not name must not be
// repointed.
func classifyEntry(fsys fsx.FS, link Link, target Target) (Classification, string, error) {
	immediate := fsx.JoinRaw(filepath.Dir(link.Location), link.RawText)

	info, err := fsys.Lstat(immediate)
	if err != nil {
		return NoMatch, "", err
	}
	if info.Mode()&os.ModeSymlink != 0 && !target.IsLink {
		return NoMatch, "", nil
	}

	same, err := fsx.SameEntity(fsys, immediate, target.Location)
	if err != nil {
		return NoMatch, "", err
	}
	if !same {
		return NoMatch, "", nil
	}
	return Exact, "", nil
}
