package engine

import "errors"

var (
	// ErrTargetNotFound indicates the move target does not exist.
	ErrTargetNotFound = errors.New("target not found")

	// ErrTargetUnresolvable indicates the target exists but does not
	// resolve, such as a dangling symlink.
	ErrTargetUnresolvable = errors.New("target does not resolve")

	// ErrDestinationExists indicates the destination is already occupied.
	ErrDestinationExists = errors.New("destination already exists")

	// ErrDestinationParentNotFound indicates the destination's parent
	// directory does not exist.
	ErrDestinationParentNotFound = errors.New("destination parent not found")

	// ErrSameEntity indicates target and destination refer to the same
	// filesystem object.
	ErrSameEntity = errors.New("target and destination are the same entity")

	// ErrSearchDirNotFound indicates the search root does not exist or is
	// not a directory.
	ErrSearchDirNotFound = errors.New("search directory not found")

	// ErrBadDepth indicates a negative search depth.
	ErrBadDepth = errors.New("search depth must not be negative")

	// ErrLinkChanged indicates a planned link no longer stores the text it
	// was planned from.
	ErrLinkChanged = errors.New("link changed since planning")
)
