// Package wswsvc bridges a Supervisor to the Windows Service Control
// Manager: registering the service (ServiceRegistry, component C7) and
// running under SCM's control-handler protocol (ServiceHost, component
// C6).
package wswsvc

// ServiceStatus mirrors the Windows SERVICE_STATUS dwCurrentState values.
// Grounded on warpdl-warpdl/internal/service/manager_windows.go's
// ServiceStatus type.
type ServiceStatus uint32

const (
	StatusStopped         ServiceStatus = 1
	StatusStartPending    ServiceStatus = 2
	StatusStopPending     ServiceStatus = 3
	StatusRunning         ServiceStatus = 4
	StatusContinuePending ServiceStatus = 5
	StatusPausePending    ServiceStatus = 6
	StatusPaused          ServiceStatus = 7
)

// String renders the status using a closed set of names for
// list_with_status/query_status output; any unlisted value is "Unknown".
func (s ServiceStatus) String() string {
	switch s {
	case StatusStopped:
		return "Stopped"
	case StatusStartPending:
		return "StartPending"
	case StatusStopPending:
		return "StopPending"
	case StatusRunning:
		return "Running"
	case StatusContinuePending:
		return "ContinuePending"
	case StatusPausePending:
		return "PausePending"
	case StatusPaused:
		return "Paused"
	default:
		return "Unknown"
	}
}
