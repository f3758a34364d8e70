//go:build !windows

package cmd

// isAdmin always reports false off Windows: wsw has nothing privileged
// to do there, and every caller treats that as "cannot proceed".
func isAdmin() bool { return false }
