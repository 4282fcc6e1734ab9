package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mvln/mvln/internal/fsx"
	"github.com/mvln/mvln/internal/planner"
)

// validateRequest checks every precondition before anything is discovered
// or planned. It returns the target description, the final destination in
// canonical-future form (with the target's name appended when the user
// named an existing directory), and the canonical search root.
func (e *Engine) validateRequest(req *MoveRequest) (planner.Target, string, string, error) {
	var target planner.Target

	if req.MaxDepth < 0 {
		return target, "", "", fmt.Errorf("%w: %d", ErrBadDepth, req.MaxDepth)
	}

	targetRaw := fsx.AbsRaw(req.CWD, req.Target)
	info, err := e.fs.Lstat(targetRaw)
	if err != nil {
		return target, "", "", fmt.Errorf("%w: %s", ErrTargetNotFound, req.Target)
	}

	location, err := fsx.CanonicalLocation(e.fs, targetRaw)
	if err != nil {
		return target, "", "", fmt.Errorf("%w: %s: %v", ErrTargetUnresolvable, req.Target, err)
	}
	canonical, err := e.fs.EvalSymlinks(targetRaw)
	if err != nil {
		return target, "", "", fmt.Errorf("%w: %s: %v", ErrTargetUnresolvable, req.Target, err)
	}

	target = planner.Target{
		Location:  location,
		Canonical: canonical,
		IsLink:    info.Mode()&os.ModeSymlink != 0,
	}
	if target.IsLink {
		raw, err := e.fs.Readlink(location)
		if err != nil {
			return target, "", "", fmt.Errorf("%w: %s: %v", ErrTargetUnresolvable, req.Target, err)
		}
		target.RawText = raw
	}
	if stat, err := e.fs.Stat(location); err == nil {
		target.IsDir = stat.IsDir()
	}

	dest, err := fsx.CanonicalFuture(e.fs, fsx.AbsRaw(req.CWD, req.Destination))
	if err != nil {
		return target, "", "", fmt.Errorf("failed to resolve destination %s: %w", req.Destination, err)
	}
	if destInfo, err := e.fs.Stat(dest); err == nil && destInfo.IsDir() {
		dest = filepath.Join(dest, filepath.Base(target.Location))
	}
	if _, err := e.fs.Lstat(dest); err == nil {
		if same, err := fsx.SameEntity(e.fs, target.Location, dest); err == nil && same {
			return target, "", "", fmt.Errorf("%w: %s and %s", ErrSameEntity, req.Target, req.Destination)
		}
		return target, "", "", fmt.Errorf("%w: %s", ErrDestinationExists, dest)
	}
	if parentInfo, err := e.fs.Stat(filepath.Dir(dest)); err != nil || !parentInfo.IsDir() {
		return target, "", "", fmt.Errorf("%w: %s", ErrDestinationParentNotFound, filepath.Dir(dest))
	}

	searchRoot, err := e.fs.EvalSymlinks(fsx.AbsRaw(req.CWD, req.SearchDir))
	if err != nil {
		return target, "", "", fmt.Errorf("%w: %s", ErrSearchDirNotFound, req.SearchDir)
	}
	if rootInfo, err := e.fs.Stat(searchRoot); err != nil || !rootInfo.IsDir() {
		return target, "", "", fmt.Errorf("%w: %s is not a directory", ErrSearchDirNotFound, req.SearchDir)
	}

	return target, dest, searchRoot, nil
}
