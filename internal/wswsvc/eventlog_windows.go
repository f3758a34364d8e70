//go:build windows

package wswsvc

import (
	"fmt"

	"golang.org/x/sys/windows/svc/eventlog"
)

// WindowsEventLogger implements EventLogger against the Windows Event
// Log. Grounded on
// warpdl-warpdl/internal/service/eventlog_windows.go's
// WindowsEventLogger.
type WindowsEventLogger struct {
	log *eventlog.Log
}

// NewWindowsEventLogger opens the event log for serviceName, installing
// the event source first if it is not already registered.
func NewWindowsEventLogger(serviceName string) (*WindowsEventLogger, error) {
	_ = eventlog.InstallAsEventCreate(serviceName, eventlog.Error|eventlog.Warning|eventlog.Info)

	elog, err := eventlog.Open(serviceName)
	if err != nil {
		return nil, fmt.Errorf("wswsvc: open event log: %w", err)
	}
	return &WindowsEventLogger{log: elog}, nil
}

func (w *WindowsEventLogger) Info(msg string) error    { return w.log.Info(1, msg) }
func (w *WindowsEventLogger) Warning(msg string) error { return w.log.Warning(2, msg) }
func (w *WindowsEventLogger) Error(msg string) error   { return w.log.Error(3, msg) }
func (w *WindowsEventLogger) Close() error             { return w.log.Close() }

// RegisterEventSource installs the event source for serviceName; called
// by the install verb after ServiceManager.Install succeeds.
func RegisterEventSource(serviceName string) error {
	return eventlog.InstallAsEventCreate(serviceName, eventlog.Error|eventlog.Warning|eventlog.Info)
}

// RemoveEventSource removes the event source; called by the uninstall
// verb after ServiceManager.Uninstall succeeds, on a best-effort basis.
func RemoveEventSource(serviceName string) error {
	return eventlog.Remove(serviceName)
}
