package logs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ResolveLogDir exposes the same directory fallback chain New uses, for
// callers (the logs CLI verb) that need to locate existing log files
// without opening a new Logger.
func ResolveLogDir() (dir string, ok bool) {
	return resolveLogDir()
}

// NewestLogFile returns the most recently rotated log file for prefix in
// dir — the file the logs verb tails. Rotation stamps sort lexically in
// chronological order, so the last match by name is the newest; under
// RotationNever there is exactly one candidate.
func NewestLogFile(dir, prefix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	matchPrefix := prefix + ".log"
	var matched []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), matchPrefix) {
			matched = append(matched, e.Name())
		}
	}
	if len(matched) == 0 {
		return "", os.ErrNotExist
	}
	sort.Strings(matched)
	return filepath.Join(dir, matched[len(matched)-1]), nil
}
