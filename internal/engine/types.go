package engine

// MoveRequest represents a request to move an entry and rewrite the links
// that reference it.
type MoveRequest struct {
	// CWD anchors relative request paths
	CWD string

	// Target is the entry to move
	Target string

	// Destination is the new path, or the new name inside an existing
	// directory
	Destination string

	// SearchDir is the root under which candidate links are discovered
	SearchDir string

	// MaxDepth bounds the discovery walk
	MaxDepth int
}

// CommitResult reports what a commit changed.
type CommitResult struct {
	// TargetMoved is false when a previous run had already moved the
	// target to the destination
	TargetMoved bool `json:"target_moved"`

	// Relinked is the number of links rewritten
	Relinked int `json:"relinked"`

	// Skipped is the number of links that already carried the planned
	// text
	Skipped int `json:"skipped"`
}
