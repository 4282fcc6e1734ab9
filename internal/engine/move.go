package engine

import (
	"fmt"
	"path/filepath"

	"github.com/mvln/mvln/internal/fsx"
	"github.com/mvln/mvln/internal/pathutil"
	"github.com/mvln/mvln/internal/planner"
)

// Plan validates the request, inspects the target and destination, and
// builds the full move plan without touching the filesystem.
//
// Algorithm steps:
// 1. Validate preconditions (target exists, destination free, search root ok)
// 2. If the target is itself a symlink, compute its rewritten text so the
//    moved link keeps pointing at the same entity from its new directory
// 3. Discover candidate symlinks under the search root whose stored text
//    mentions the target's name
// 4. Classify each candidate against the target and derive its new text;
//    candidates that fail to classify are logged and skipped
func (e *Engine) Plan(req *MoveRequest) (*planner.MovePlan, error) {
	target, dest, searchRoot, err := e.validateRequest(req)
	if err != nil {
		return nil, err
	}

	plan := planner.NewMovePlan(target, dest)

	if target.IsLink {
		text, err := e.targetLinkText(target, dest)
		if err != nil {
			return nil, fmt.Errorf("failed to rewrite target link: %w", err)
		}
		plan.TargetNewText = text
	}

	name := filepath.Base(target.Location)
	excluded := func(location string) bool {
		if location == target.Location {
			return true
		}
		_, under := pathutil.Suffix(target.Location, location)
		return under
	}
	candidates, err := e.discover(searchRoot, req.MaxDepth, name, excluded)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", searchRoot, err)
	}

	for _, link := range candidates {
		class, resolved, err := planner.Classify(e.fs, link, target)
		if err != nil {
			e.log.Debug("skipping link that fails to classify", "link", link.Location, "error", err)
			continue
		}
		if class == planner.NoMatch {
			continue
		}
		text, err := planner.PlanRewrite(e.fs, link, class, resolved, target, dest)
		if err != nil {
			e.log.Debug("skipping link that fails to plan", "link", link.Location, "error", err)
			continue
		}
		plan.AddRewrite(planner.Rewrite{
			Location: link.Location,
			OldText:  link.RawText,
			NewText:  text,
			Class:    class,
		})
	}

	return plan, nil
}

// targetLinkText computes the text a symlink target should store once it
// lives at dest. The new text keeps one level of indirection: it points at
// the canonical location of whatever the link immediately names, not at
// the end of a longer chain.
func (e *Engine) targetLinkText(target planner.Target, dest string) (string, error) {
	immediate := fsx.JoinRaw(filepath.Dir(target.Location), target.RawText)
	referent, err := fsx.CanonicalLocation(e.fs, immediate)
	if err != nil {
		return "", err
	}
	return pathutil.LinkText(dest, referent)
}

// Commit applies a plan produced by Plan: it moves the target and then
// rewrites every affected symlink. A plan may be committed again after a
// partial failure; work already done is detected and skipped, while links
// whose text no longer matches the plan stop the commit.
//
// Algorithm steps:
// 1. Move the target to the destination (symlink targets are recreated
//    with their rewritten text, everything else is renamed)
// 2. For each planned rewrite, re-read the link and compare:
//    already rewritten to the new text, count it as skipped;
//    still storing the old text, replace it;
//    anything else, stop with ErrLinkChanged
func (e *Engine) Commit(plan *planner.MovePlan) (*CommitResult, error) {
	result := &CommitResult{}

	moved, err := e.moveTarget(plan)
	if err != nil {
		return result, err
	}
	result.TargetMoved = moved

	for _, rw := range plan.Rewrites {
		current, err := e.fs.Readlink(rw.Location)
		if err != nil {
			return result, fmt.Errorf("%w: %s: %v", ErrLinkChanged, rw.Location, err)
		}
		if current == rw.NewText {
			result.Skipped++
			continue
		}
		if current != rw.OldText {
			return result, fmt.Errorf("%w: %s now stores %q, planned from %q", ErrLinkChanged, rw.Location, current, rw.OldText)
		}
		if err := e.fs.Remove(rw.Location); err != nil {
			return result, fmt.Errorf("failed to remove link %s: %w", rw.Location, err)
		}
		if err := e.fs.Symlink(rw.NewText, rw.Location); err != nil {
			return result, fmt.Errorf("failed to relink %s: %w", rw.Location, err)
		}
		result.Relinked++
	}

	return result, nil
}

// moveTarget relocates the plan's target. It reports false without error
// when a previous commit already moved it.
func (e *Engine) moveTarget(plan *planner.MovePlan) (bool, error) {
	if _, err := e.fs.Lstat(plan.Target.Location); err != nil {
		if _, destErr := e.fs.Lstat(plan.Destination); destErr == nil {
			e.log.Debug("target already moved", "destination", plan.Destination)
			return false, nil
		}
		return false, fmt.Errorf("%w: %s", ErrTargetNotFound, plan.Target.Location)
	}

	if plan.Target.IsLink {
		if err := e.fs.Symlink(plan.TargetNewText, plan.Destination); err != nil {
			return false, fmt.Errorf("failed to create link %s: %w", plan.Destination, err)
		}
		if err := e.fs.Remove(plan.Target.Location); err != nil {
			return false, fmt.Errorf("failed to remove old link %s: %w", plan.Target.Location, err)
		}
		return true, nil
	}

	if err := e.fs.Rename(plan.Target.Location, plan.Destination); err != nil {
		return false, fmt.Errorf("failed to move %s: %w", plan.Target.Location, err)
	}
	return true, nil
}
