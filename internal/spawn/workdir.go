package spawn

import (
	"os/exec"
	"path/filepath"
	"strings"
)

// resolveWorkingDir implements spec.md §4.4's working-directory fallback
// chain: an explicit directory wins outright; otherwise take the parent
// directory of the command's first token (quote-aware); if that's empty,
// fall back to a PATH lookup of the bare executable name; otherwise ".".
// Grounded on original_source/src/pkg/runner.rs's find_working_dir, with
// which::which replaced by exec.LookPath.
func resolveWorkingDir(cmdline string, explicit string) string {
	if explicit != "" {
		return explicit
	}

	exe := firstToken(cmdline)
	if exe == "" {
		return "."
	}

	if dir := filepath.Dir(exe); dir != "." && dir != "" {
		return dir
	}

	if path, err := exec.LookPath(exe); err == nil {
		if dir := filepath.Dir(path); dir != "" {
			return dir
		}
	}

	return "."
}

// firstToken extracts the first whitespace-delimited token of cmdline,
// honoring a leading quoted path (e.g. `"C:\Program Files\app.exe" --flag`).
func firstToken(cmdline string) string {
	s := strings.TrimSpace(cmdline)
	if s == "" {
		return ""
	}
	if s[0] == '"' {
		if end := strings.IndexByte(s[1:], '"'); end >= 0 {
			return s[1 : end+1]
		}
	}
	if idx := strings.IndexAny(s, " \t"); idx >= 0 {
		return s[:idx]
	}
	return s
}
