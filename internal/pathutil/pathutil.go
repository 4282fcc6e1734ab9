// Package pathutil implements the pure path algebra behind link rewriting:
// common-ancestor computation, ancestor-relative suffixes, and the raw text
// a symlink needs to reach a target from its own location. Nothing in this
// package touches the filesystem.
package pathutil

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Segments splits an absolute path into its path segments below the root.
// The root itself yields an empty slice.
func Segments(path string) []string {
	sep := string(filepath.Separator)
	trimmed := strings.TrimPrefix(filepath.Clean(path), sep)
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, sep)
}

// CommonAncestor walks two absolute paths segment-by-segment from the root,
// accumulating matching segments until divergence or exhaustion of either
// side. It returns the matched prefix and the number of trailing segments
// each input carries beyond it. Non-absolute input is a caller bug and the
// only error case.
func CommonAncestor(left, right string) (ancestor string, leftDepth, rightDepth int, err error) {
	if !filepath.IsAbs(left) || !filepath.IsAbs(right) {
		return "", 0, 0, fmt.Errorf("common ancestor requires absolute paths, got %q and %q", left, right)
	}

	leftSegs := Segments(left)
	rightSegs := Segments(right)

	shared := 0
	for shared < len(leftSegs) && shared < len(rightSegs) && leftSegs[shared] == rightSegs[shared] {
		shared++
	}

	sep := string(filepath.Separator)
	ancestor = sep + strings.Join(leftSegs[:shared], sep)
	return ancestor, len(leftSegs) - shared, len(rightSegs) - shared, nil
}

// LinkText computes the raw text for a symlink stored at linkLocation that
// must resolve to targetPath: an ascent from the link's parent directory to
// the common ancestor, then a descent to the target. The ascent is one step
// shorter than the link's depth below the ancestor because raw text is
// interpreted relative to the link's parent, not the link itself.
func LinkText(linkLocation, targetPath string) (string, error) {
	ancestor, linkDepth, _, err := CommonAncestor(linkLocation, targetPath)
	if err != nil {
		return "", err
	}

	ups := linkDepth - 1
	if ups < 0 {
		ups = 0
	}

	parts := make([]string, 0, ups+1)
	for i := 0; i < ups; i++ {
		parts = append(parts, "..")
	}
	if descent, ok := Suffix(ancestor, targetPath); ok && descent != "" {
		parts = append(parts, descent)
	}
	if len(parts) == 0 {
		return ".", nil
	}
	return strings.Join(parts, string(filepath.Separator)), nil
}

// Suffix returns path's segments below ancestor as a relative path. The
// suffix is empty when the two are equal; ok is false when ancestor is not
// a prefix of path.
func Suffix(ancestor, path string) (suffix string, ok bool) {
	sep := string(filepath.Separator)
	a := filepath.Clean(ancestor)
	p := filepath.Clean(path)

	if a == p {
		return "", true
	}
	if a == sep {
		if !strings.HasPrefix(p, sep) {
			return "", false
		}
		return strings.TrimPrefix(p, sep), true
	}
	if !strings.HasPrefix(p, a+sep) {
		return "", false
	}
	return p[len(a)+1:], true
}
