// Package fsx provides the filesystem access layer for move planning and
// execution.
//
// All filesystem reads and mutations go through the FS interface, which
// keeps the engine testable against real directory trees built by tests.
// The helpers implement the path-resolution rules the rest of the code
// depends on:
//   - raw link text joins its parent directory without lexical cleaning,
//     leaving dot-dot resolution to the kernel
//   - a location canonicalizes as canonical parent plus final name, so the
//     entry's own identity (a symlink staying a symlink) is preserved
//   - a path that does not exist yet canonicalizes through its longest
//     existing ancestor
package fsx

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// FS provides an abstraction for the filesystem operations used during
// move planning and execution.
type FS interface {
	// Lstat returns file info without following symlinks.
	Lstat(path string) (os.FileInfo, error)

	// Stat returns file info, following symlinks.
	Stat(path string) (os.FileInfo, error)

	// Readlink reads the raw text of a symlink.
	Readlink(path string) (string, error)

	// ReadDir reads a directory, returning its entries sorted by name.
	ReadDir(path string) ([]os.DirEntry, error)

	// EvalSymlinks returns the canonical form of an existing path.
	EvalSymlinks(path string) (string, error)

	// Symlink creates a symbolic link at newname storing oldname.
	Symlink(oldname, newname string) error

	// Remove removes a file, symlink, or empty directory.
	Remove(path string) error

	// Rename renames oldpath to newpath.
	Rename(oldpath, newpath string) error

	// SameFile reports whether two file infos describe the same object.
	SameFile(a, b os.FileInfo) bool
}

// RealFS implements FS using actual OS operations.
type RealFS struct{}

// NewRealFS creates a new RealFS.
func NewRealFS() *RealFS {
	return &RealFS{}
}

// Lstat returns file info without following symlinks.
func (fs *RealFS) Lstat(path string) (os.FileInfo, error) {
	return os.Lstat(path)
}

// Stat returns file info, following symlinks.
func (fs *RealFS) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Readlink reads the raw text of a symlink.
func (fs *RealFS) Readlink(path string) (string, error) {
	return os.Readlink(path)
}

// ReadDir reads a directory, returning its entries sorted by name.
func (fs *RealFS) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

// EvalSymlinks returns the canonical form of an existing path.
func (fs *RealFS) EvalSymlinks(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

// Symlink creates a symbolic link at newname storing oldname.
func (fs *RealFS) Symlink(oldname, newname string) error {
	return os.Symlink(oldname, newname)
}

// Remove removes a file, symlink, or empty directory.
func (fs *RealFS) Remove(path string) error {
	return os.Remove(path)
}

// Rename renames oldpath to newpath.
func (fs *RealFS) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// SameFile reports whether two file infos describe the same object.
func (fs *RealFS) SameFile(a, b os.FileInfo) bool {
	return os.SameFile(a, b)
}

// AbsRaw makes path absolute against cwd without cleaning it. Cleaning is
// deliberately avoided everywhere raw paths are handled: collapsing a
// dot-dot segment that follows a symlinked directory changes where the
// path leads.
func AbsRaw(cwd, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return cwd + string(filepath.Separator) + path
}

// JoinRaw joins a directory with a link's raw text. Absolute text stands
// alone; relative text is appended without cleaning so the kernel resolves
// any dot-dot segments against the real directory chain.
func JoinRaw(dir, raw string) string {
	if filepath.IsAbs(raw) {
		return raw
	}
	return dir + string(filepath.Separator) + raw
}

// SameEntity reports whether two paths resolve to the same filesystem
// object. Either path failing to resolve is returned as an error for the
// caller to interpret.
func SameEntity(fsys FS, a, b string) (bool, error) {
	infoA, err := fsys.Stat(a)
	if err != nil {
		return false, err
	}
	infoB, err := fsys.Stat(b)
	if err != nil {
		return false, err
	}
	return fsys.SameFile(infoA, infoB), nil
}

// CanonicalLocation canonicalizes the parent of path and reattaches the
// final name, resolving everything except the entry itself. A final dot or
// dot-dot segment carries no entry identity, so those fall back to full
// resolution.
func CanonicalLocation(fsys FS, path string) (string, error) {
	dir, base := splitLast(path)
	if base == "" || base == "." || base == ".." {
		return fsys.EvalSymlinks(path)
	}
	canonDir, err := fsys.EvalSymlinks(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(canonDir, base), nil
}

// CanonicalFuture canonicalizes a path that may not exist yet: components
// are resolved from the root down, and from the first missing component on
// the remaining segments are appended as given.
func CanonicalFuture(fsys FS, path string) (string, error) {
	if !filepath.IsAbs(path) {
		return "", errors.New("canonical future requires an absolute path")
	}

	sep := string(filepath.Separator)
	resolved := sep
	segs := strings.Split(strings.TrimPrefix(path, sep), sep)
	for i, seg := range segs {
		switch seg {
		case "", ".":
			continue
		case "..":
			resolved = filepath.Dir(resolved)
			continue
		}
		next, err := fsys.EvalSymlinks(filepath.Join(resolved, seg))
		if err == nil {
			resolved = next
			continue
		}
		if errors.Is(err, os.ErrNotExist) {
			rest := append([]string{resolved}, segs[i:]...)
			return filepath.Join(rest...), nil
		}
		return "", err
	}
	return resolved, nil
}

// splitLast splits off the final path segment without cleaning the rest.
// Trailing separators are dropped first so "a/b/" splits like "a/b".
func splitLast(path string) (dir, base string) {
	sep := string(filepath.Separator)
	trimmed := strings.TrimRight(path, sep)
	if trimmed == "" {
		return sep, ""
	}
	idx := strings.LastIndex(trimmed, sep)
	if idx < 0 {
		return ".", trimmed
	}
	if idx == 0 {
		return sep, trimmed[1:]
	}
	return trimmed[:idx], trimmed[idx+1:]
}
