package planner

import (
	"fmt"
	"path/filepath"

	"github.com/mvln/mvln/internal/fsx"
	"github.com/mvln/mvln/internal/pathutil"
)

// MovePlan represents every change one move will make: the target's own
// relocation plus an ordered list of link rewrites.
type MovePlan struct {
	// Target is the entry being moved
	Target Target `json:"target"`

	// Destination is the final destination in canonical-future form,
	// with the target's name already appended when the user named an
	// existing directory
	Destination string `json:"destination"`

	// TargetNewText is the target's own rewritten raw text when the
	// target is itself a symlink
	TargetNewText string `json:"target_new_text,omitempty"`

	// Rewrites is the ordered list of link-text replacements
	Rewrites []Rewrite `json:"rewrites"`
}

// Rewrite is one planned link-text replacement, applied in place at the
// link's location.
type Rewrite struct {
	// Location is the link's absolute path
	Location string `json:"location"`

	// OldText is the link's raw text at planning time
	OldText string `json:"old_text"`

	// NewText is the raw text the link will store after the move
	NewText string `json:"new_text"`

	// Class records how the link references the target
	Class Classification `json:"classification"`
}

// NewMovePlan creates an empty plan for moving target to dest.
func NewMovePlan(target Target, dest string) *MovePlan {
	return &MovePlan{
		Target:      target,
		Destination: dest,
		Rewrites:    []Rewrite{},
	}
}

// AddRewrite appends a rewrite to the plan.
func (p *MovePlan) AddRewrite(r Rewrite) {
	p.Rewrites = append(p.Rewrites, r)
}

// HasRewrites returns true if any link needs rewriting.
func (p *MovePlan) HasRewrites() bool {
	return len(p.Rewrites) > 0
}

// PlanRewrite computes the raw text that keeps link pointing at the moved
// entity once target sits at dest. resolved is the link's canonical
// resolution as returned by Classify; dest is the final destination in
// canonical-future form. The link's location is canonicalized first: raw
// text resolves against the link's physical parent, so the ancestor
// algebra must run on canonical paths even when the walk reached the link
// through a symlinked directory.
func PlanRewrite(fsys fsx.FS, link Link, class Classification, resolved string, target Target, dest string) (string, error) {
	var sub string
	if class == PrefixOf {
		s, ok := pathutil.Suffix(target.Canonical, resolved)
		if !ok {
			return "", fmt.Errorf("resolution %q is not below target %q", resolved, target.Canonical)
		}
		sub = s
	}

	location, err := fsx.CanonicalLocation(fsys, link.Location)
	if err != nil {
		return "", err
	}

	sameDir, err := fsx.SameEntity(fsys, filepath.Dir(location), filepath.Dir(dest))
	if err != nil {
		return "", err
	}

	var text string
	if sameDir {
		text = filepath.Base(dest)
	} else {
		text, err = pathutil.LinkText(location, dest)
		if err != nil {
			return "", err
		}
	}

	if sub != "" {
		text = text + string(filepath.Separator) + sub
	}
	return text, nil
}
