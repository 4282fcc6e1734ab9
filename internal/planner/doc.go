// Package planner classifies symlinks against a move target and computes
// the rewritten link text that keeps each link valid after the move.
//
// Classification distinguishes a link that resolves to the target itself
// (Exact) from a link that resolves inside a moved directory (PrefixOf).
// Planning turns a classified link into new raw text using common-ancestor
// algebra, so the rewritten link reaches the same entity once the target
// sits at its destination.
//
// Key responsibilities:
//   - Resolve candidate links, following at most one extra symlink hop
//   - Classify candidates as Exact, PrefixOf, or NoMatch
//   - Compute rewritten raw text for same-directory and cross-directory
//     destinations
//   - Carry the MovePlan consumed by the engine's commit step
package planner
