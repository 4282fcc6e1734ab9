// Package diskusage gathers df output from the local machine and from
// connected adb devices and renders it as per-partition usage bars.
//
// Collection and rendering are separate: a Collector turns command output
// into Reports, and Render turns Reports into text sized for a terminal.
// Command failures never abort a run; they become the failing device's
// report and the remaining devices still print.
package diskusage

import "fmt"

// Mode selects which devices to query.
type Mode int

const (
	// ModeBoth queries the local machine and then every adb device.
	ModeBoth Mode = iota

	// ModeLocal queries only the local machine.
	ModeLocal

	// ModeADB queries only connected adb devices.
	ModeADB
)

// ParseMode converts a mode argument into a Mode. The empty string
// selects ModeBoth.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "local":
		return ModeLocal, nil
	case "adb":
		return ModeADB, nil
	case "both", "":
		return ModeBoth, nil
	}
	return ModeBoth, fmt.Errorf("unknown mode %q (use local, adb, or both)", s)
}

// String returns the mode's argument spelling.
func (m Mode) String() string {
	switch m {
	case ModeLocal:
		return "local"
	case ModeADB:
		return "adb"
	default:
		return "both"
	}
}

// Partition is one mounted filesystem from df.
type Partition struct {
	// Name is the filesystem name, df's first column.
	Name string `json:"name"`

	// Path is the mount point, df's last column.
	Path string `json:"path"`

	// SizeKB is the total size in kilobytes.
	SizeKB int64 `json:"size_kb"`

	// UsedKB is the used size in kilobytes, computed as total minus
	// available so reserved blocks count as used.
	UsedKB int64 `json:"used_kb"`
}

// Report holds the outcome of querying one device. Either Partitions or
// Err is set. A report with an empty Label is a bare notice rendered
// without a device heading.
type Report struct {
	// Label identifies the device, the hostname for the local machine or
	// "<serial> (adb device)" for adb.
	Label string `json:"label"`

	// Partitions are the device's filesystems, empty when Err is set.
	Partitions []Partition `json:"partitions,omitempty"`

	// Err describes why the device could not be queried.
	Err string `json:"error,omitempty"`
}
