package cmd

import "errors"

// ErrRequiresAdmin is returned by install/uninstall/start/stop/restart
// when the process does not hold administrator privileges. SCM
// registration is a privileged operation on every Windows version wsw
// targets. The wording matches spec.md §7's AccessDenied operator
// message exactly, since this is the same failure the SCM itself would
// report as ErrAccessDenied once attempted.
var ErrRequiresAdmin = errors.New("Access denied — run as Administrator")

// isAdminFunc is a package-level var so tests can stub privilege checks
// without touching the real Windows token APIs. Grounded on
// warpdl-warpdl/cmd/service_windows.go's identical isAdminFunc pattern.
var isAdminFunc = isAdmin

func requireAdmin() error {
	if !isAdminFunc() {
		return ErrRequiresAdmin
	}
	return nil
}
