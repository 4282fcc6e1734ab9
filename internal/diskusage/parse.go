package diskusage

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Android mounts worth reporting; everything else on a device is noise.
var storageLine = regexp.MustCompile(`(?i)fuse|/storage/`)

// splitLines normalizes line endings and splits, dropping a trailing
// empty line. adb shell output arrives with CRLF endings on some devices.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// parseDF parses df data lines, header already removed. Used space is
// derived from total minus available rather than df's used column, so
// space reserved for root shows up as used. A reserved fraction is
// additionally charged to the root and home filesystems.
func parseDF(lines []string, reserved float64) ([]Partition, string) {
	if len(lines) == 0 {
		return nil, "empty output"
	}

	parts := make([]Partition, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		// 0: name | 1: size | 2: used | 3: avail | 4: use% | 5: mount
		if len(fields) != 6 {
			return nil, fmt.Sprintf("output is not correct (column size: %d)", len(fields))
		}
		size, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Sprintf("output is not correct (bad size %q)", fields[1])
		}
		avail, err := strconv.ParseInt(fields[3], 10, 64)
		if err != nil {
			return nil, fmt.Sprintf("output is not correct (bad size %q)", fields[3])
		}

		part := Partition{
			Name:   fields[0],
			Path:   fields[5],
			SizeKB: size,
			UsedKB: size - avail,
		}
		if part.Path == "/" || part.Path == "/home" {
			part.UsedKB += int64(reserved * float64(size))
		}
		parts = append(parts, part)
	}
	return parts, ""
}

// parseDevices extracts serials from adb devices output: the header line
// goes, the first field of each remaining line is a serial.
func parseDevices(out string) []string {
	lines := splitLines(out)
	if len(lines) <= 1 {
		return nil
	}

	var serials []string
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) > 0 {
			serials = append(serials, fields[0])
		}
	}
	return serials
}

// filterStorageLines keeps the df lines for Android storage mounts.
func filterStorageLines(lines []string) []string {
	var kept []string
	for _, line := range lines {
		if storageLine.MatchString(line) {
			kept = append(kept, line)
		}
	}
	return kept
}
