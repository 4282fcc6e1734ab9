package planner

import "fmt"

// Classification describes how a candidate link references the move target.
type Classification int

const (
	// NoMatch means the link does not reference the target.
	NoMatch Classification = iota

	// Exact means the link's resolution is same-entity with the target.
	Exact

	// PrefixOf means the target directory is an ancestor of the link's
	// resolution.
	PrefixOf
)

// String returns the classification name used in output and logs.
func (c Classification) String() string {
	switch c {
	case Exact:
		return "exact"
	case PrefixOf:
		return "prefix"
	default:
		return "no_match"
	}
}

// MarshalText encodes the classification by name.
func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a classification from its name.
func (c *Classification) UnmarshalText(text []byte) error {
	switch string(text) {
	case "exact":
		*c = Exact
	case "prefix":
		*c = PrefixOf
	case "no_match":
		*c = NoMatch
	default:
		return fmt.Errorf("unknown classification %q", string(text))
	}
	return nil
}

// Link is a symlink candidate: where it lives and what it stores.
type Link struct {
	// Location is the clean absolute path at which the symlink exists
	Location string `json:"location"`

	// RawText is the stored target string, possibly relative
	RawText string `json:"raw_text"`
}

// Target describes the entry being moved.
type Target struct {
	// Location is the entry's canonical location: canonical parent plus
	// the entry's own final name
	Location string `json:"location"`

	// Canonical is the entry's full resolution
	Canonical string `json:"canonical"`

	// IsDir reports whether the entry resolves to a directory
	IsDir bool `json:"is_dir"`

	// IsLink reports whether the entry itself is a symlink
	IsLink bool `json:"is_link"`

	// RawText is the entry's stored text when IsLink is set
	RawText string `json:"raw_text,omitempty"`
}
