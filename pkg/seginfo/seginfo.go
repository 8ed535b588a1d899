// Package seginfo provides utilities for naming and discovering ignitedb's
// segment files.
//
// Filename format: NNNNNNNNN.data — a nine-digit, zero-padded decimal
// segment id followed by the fixed ".data" extension. Zero-padding keeps
// filenames lexicographically sortable in the same order as their numeric
// id; DiscoverSegmentIDs itself sorts the parsed ids numerically.
//
// Example filenames:
//
//	000000000.data
//	000000001.data
//	000000042.data
package seginfo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/iamNilotpal/ignitedb/pkg/filesys"
)

// Extension is the fixed suffix every segment filename carries.
const Extension = ".data"

// idDigits is the zero-padded width of the numeric segment id component.
const idDigits = 9

// GenerateName formats the on-disk filename for segment id.
func GenerateName(id uint32) string {
	return fmt.Sprintf("%0*d%s", idDigits, id, Extension)
}

// ParseSegmentID extracts the numeric id from a segment filename (basename
// or full path). It returns an error if the name doesn't match the
// NNNNNNNNN.data convention exactly.
func ParseSegmentID(name string) (uint32, error) {
	base := filepath.Base(name)
	if !strings.HasSuffix(base, Extension) {
		return 0, fmt.Errorf("seginfo: %q does not have the %s extension", base, Extension)
	}

	digits := strings.TrimSuffix(base, Extension)
	if len(digits) != idDigits {
		return 0, fmt.Errorf("seginfo: %q does not have a %d-digit segment id", base, idDigits)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("seginfo: %q contains non-digit characters in its id", base)
		}
	}

	id, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("seginfo: failed to parse segment id from %q: %w", base, err)
	}
	return uint32(id), nil
}

// DiscoverSegmentIDs scans dirPath for entries ending in Extension and
// returns their parsed ids in ascending order. Any entry ending in
// Extension whose name doesn't match the NNNNNNNNN.data convention is
// reported as an error — the caller (engine.Open) surfaces this as
// DATA_DIR_CORRUPTED. Non-.data entries are ignored.
func DiscoverSegmentIDs(dirPath string) ([]uint32, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("seginfo: failed to read directory %q: %w", dirPath, err)
	}

	ids := make([]uint32, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Extension) {
			continue
		}
		id, err := ParseSegmentID(entry.Name())
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// SegmentPath joins dirPath with the generated filename for id.
func SegmentPath(dirPath string, id uint32) string {
	return filepath.Join(dirPath, GenerateName(id))
}

// EnsureDir creates dirPath (and any missing parents) if it doesn't already
// exist, matching the permission convention filesys.CreateDir uses
// elsewhere in the module.
func EnsureDir(dirPath string) error {
	return filesys.CreateDir(dirPath, 0755, true)
}
