// Package engine orchestrates move-and-relink runs.
//
// The engine is the API surface the CLI calls: planning validates the
// request, discovers candidate links under the search root, classifies
// them against the target, and produces a MovePlan; committing applies a
// plan after the caller has shown it to the user. Confirmation lives with
// the caller, so the filesystem stays untouched until a plan is accepted.
//
// Key components:
//   - Engine: coordinator holding the filesystem seam and logger
//   - Plan: validate, discover, classify, and build the MovePlan
//   - Commit: move the target, then rewrite each link in place
package engine

import (
	"log/slog"

	"github.com/mvln/mvln/internal/fsx"
)

// Engine coordinates planning and committing moves.
// It is the main API surface called by the CLI.
type Engine struct {
	fs  fsx.FS
	log *slog.Logger
}

// New creates a new Engine with the given dependencies.
func New(fs fsx.FS, log *slog.Logger) *Engine {
	return &Engine{
		fs:  fs,
		log: log,
	}
}
