//go:build windows

package wswsvc

import (
	"time"

	"golang.org/x/sys/windows/svc"
)

// acceptedCommands is the only SCM control this service accepts, per
// spec.md §4.6 step 3: STOP, with every other control answered
// NotImplemented.
const acceptedCommands = svc.AcceptStop

// Runner is the subset of *supervisor.Supervisor a Host drives, defined
// as an interface — the same dependency-injection shape
// warpdl-warpdl/internal/service/windows.go's RunnerInterface uses — so
// tests can substitute a fake run loop without a real Windows Job Object
// or SCM connection.
type Runner interface {
	Run()
	Stop()
}

// Host implements svc.Handler, bridging SCM control requests to a
// Runner. Grounded almost directly on
// warpdl-warpdl/internal/service/windows.go's WindowsHandler — the
// teacher's Execute/processControlRequests/handleStopRequest split
// already matches spec.md §4.6 step-for-step.
type Host struct {
	runner Runner
	logger EventLogger
}

// NewHost builds a Host driving runner, reporting its own lifecycle to
// logger. If logger is nil a console logger is used.
func NewHost(runner Runner, logger EventLogger) *Host {
	if logger == nil {
		logger = NewConsoleEventLogger(nil)
	}
	return &Host{runner: runner, logger: logger}
}

// Execute implements svc.Handler. It runs the Supervisor on its own
// goroutine, immediately reports Running, then processes control
// requests until STOP — at which point it calls Supervisor.Stop and
// waits for the Supervisor's run loop to return before reporting
// Stopped, satisfying spec.md §4.5's ordering requirement.
func (h *Host) Execute(args []string, requests <-chan svc.ChangeRequest, status chan<- svc.Status) (svcSpecificEC bool, exitCode uint32) {
	status <- svc.Status{State: svc.StartPending}
	_ = h.logger.Info("wsw service starting")

	done := make(chan struct{})
	go func() {
		h.runner.Run()
		close(done)
	}()

	status <- svc.Status{State: svc.Running, Accepts: acceptedCommands}
	_ = h.logger.Info("wsw service started")

	return h.processControlRequests(requests, status, done)
}

func (h *Host) processControlRequests(requests <-chan svc.ChangeRequest, status chan<- svc.Status, done <-chan struct{}) (bool, uint32) {
	for {
		select {
		case req, ok := <-requests:
			if !ok {
				return false, 0
			}
			switch req.Cmd {
			case svc.Interrogate:
				status <- svc.Status{State: svc.Running, Accepts: acceptedCommands}
			case svc.Stop:
				return h.handleStopRequest(status, done)
			}
		case <-done:
			// The wrapped command's Supervisor loop ended on its own
			// (should not normally happen — it only returns after Stop).
			status <- svc.Status{State: svc.Stopped}
			return false, 0
		}
	}
}

func (h *Host) handleStopRequest(status chan<- svc.Status, done <-chan struct{}) (bool, uint32) {
	_ = h.logger.Info("wsw service stopping")
	status <- svc.Status{State: svc.StopPending}

	h.runner.Stop()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		_ = h.logger.Error("timed out waiting for supervisor to stop")
	}

	_ = h.logger.Info("wsw service stopped")
	status <- svc.Status{State: svc.Stopped}
	return false, 0
}

// Run dispatches to the SCM, falling back to running runner directly in
// the calling goroutine when the binary was launched from a console
// rather than SCM — the supported debug path spec.md §4.6 requires.
func Run(serviceName string, runner Runner, logger EventLogger) error {
	isService, err := svc.IsWindowsService()
	if err != nil {
		isService = false
	}
	if !isService {
		runner.Run()
		return nil
	}
	return svc.Run(serviceName, NewHost(runner, logger))
}
