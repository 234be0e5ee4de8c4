// Package fileutil provides small filesystem helpers shared by the job
// service and its tests.
package fileutil

import (
	"fmt"
	"math"
	"os"
)

// EnsureDir creates path and any missing parents with default permissions.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", path, err)
	}
	return nil
}

// RemoveTree deletes path recursively. Missing paths are not an error.
func RemoveTree(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("remove %q: %w", path, err)
	}
	return nil
}

// FormatSizeMB renders a byte count as mebibytes with two decimals,
// e.g. 1048576 -> "1.00 MB".
func FormatSizeMB(bytes int64) string {
	mb := float64(bytes) / (1 << 20)
	return fmt.Sprintf("%.2f MB", math.Round(mb*100)/100)
}
