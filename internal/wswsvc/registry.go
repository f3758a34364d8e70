package wswsvc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/ferama/wsw/internal/logs"
	"github.com/ferama/wsw/internal/supervisor"
)

// Sentinel errors for service registration operations. Grounded on
// warpdl-warpdl/internal/service/manager_windows.go's identically-shaped
// error set.
var (
	ErrServiceExists         = errors.New("wswsvc: service already exists")
	ErrServiceNotFound       = errors.New("wswsvc: service not found")
	ErrServiceAlreadyRunning = errors.New("wswsvc: service is already running")
	ErrServiceNotRunning     = errors.New("wswsvc: service is not running")
	// Message matches spec.md §7's AccessDenied operator message exactly
	// so every verb that surfaces it (wrapped with %w or not) contains
	// the required phrase.
	ErrAccessDenied = errors.New("Access denied — run as Administrator")
	ErrTimeout               = errors.New("wswsvc: timed out waiting for state")
	ErrUnsupportedPlatform   = errors.New("wswsvc: unsupported platform")
)

// ServiceNamePrefix is the reserved SCM-name/log-file-name prefix every
// wsw-managed service carries (spec.md §4.1's ServiceIdentity).
const ServiceNamePrefix = "wsw"

// ServiceName maps an operator-facing name to the SCM service name: the
// bare prefix itself (or an empty name) reserves the prefix unqualified;
// any other name is stored as "<prefix>-<name>".
func ServiceName(name string) string {
	if name == "" || name == ServiceNamePrefix {
		return ServiceNamePrefix
	}
	return ServiceNamePrefix + "-" + name
}

// DisplayName applies spec.md §4.7's list-output naming rule: the bare
// prefix displays as "[default]", everything else has the prefix-dash
// stripped.
func DisplayName(serviceName string) string {
	if serviceName == ServiceNamePrefix {
		return "[default]"
	}
	return strings.TrimPrefix(serviceName, ServiceNamePrefix+"-")
}

// ServiceConfig is everything ServiceRegistry.Install needs to register a
// new service: its operator-facing name plus the LaunchSpec and logging
// policy it will be re-launched with on every SCM start.
type ServiceConfig struct {
	Name        string
	Spec        supervisor.LaunchSpec
	Rotation    logs.Rotation
	MaxLogFiles int
}

// Entry is one row of list_with_status: the raw SCM name, the display
// name after the [default]/prefix-stripping rule, and its current status.
type Entry struct {
	Name        string
	DisplayName string
	Status      ServiceStatus
}

// buildLaunchArgs encodes cfg into the argv the SCM will invoke this
// binary's hidden "run" verb with, matching
// original_source/src/pkg/service.rs's install_service launch_arguments
// construction.
func buildLaunchArgs(cfg ServiceConfig) []string {
	args := []string{"run", "--cmd", cfg.Spec.Cmdline, "--name", cfg.Name}
	if cfg.Spec.WorkingDir != "" {
		args = append(args, "--working-dir", cfg.Spec.WorkingDir)
	}
	if cfg.Spec.DisableLogs {
		args = append(args, "--disable-logs")
	}
	args = append(args, "--log-rotation", cfg.Rotation.String())
	args = append(args, "--max-log-files", strconv.Itoa(cfg.MaxLogFiles))
	return args
}

// ParseCommandLine decodes the raw lpBinaryPathName the SCM reports back
// (executable path followed by the shell-quoted launch arguments
// buildLaunchArgs produced) into a ServiceConfig. Used by the status verb
// and by the spec's install/list round-trip property.
func ParseCommandLine(raw string) (ServiceConfig, error) {
	tokens, err := shellquote.Split(raw)
	if err != nil {
		return ServiceConfig{}, fmt.Errorf("wswsvc: parse command line: %w", err)
	}
	if len(tokens) < 2 || tokens[1] != "run" {
		return ServiceConfig{}, fmt.Errorf("wswsvc: command line is not a wsw run invocation: %q", raw)
	}

	cfg := ServiceConfig{Rotation: logs.RotationNever, MaxLogFiles: 0}
	args := tokens[2:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--cmd":
			i++
			if i < len(args) {
				cfg.Spec.Cmdline = args[i]
			}
		case "--name":
			i++
			if i < len(args) {
				cfg.Name = args[i]
			}
		case "--working-dir":
			i++
			if i < len(args) {
				cfg.Spec.WorkingDir = args[i]
			}
		case "--disable-logs":
			cfg.Spec.DisableLogs = true
		case "--log-rotation":
			i++
			if i < len(args) {
				if r, err := logs.ParseRotation(args[i]); err == nil {
					cfg.Rotation = r
				}
			}
		case "--max-log-files":
			i++
			if i < len(args) {
				if n, err := strconv.Atoi(args[i]); err == nil {
					cfg.MaxLogFiles = n
				}
			}
		}
	}
	return cfg, nil
}

// SCManagerInterface abstracts the SCM connection so tests can substitute
// a fake without Windows API calls. Grounded on
// warpdl-warpdl/internal/service/manager_windows.go's SCManagerInterface.
type SCManagerInterface interface {
	OpenService(name string) (ServiceInterface, error)
	CreateService(name, exePath string, args []string) (ServiceInterface, error)
	ListServiceNames() ([]string, error)
	Close() error
}

// ServiceInterface abstracts a single registered service.
type ServiceInterface interface {
	Start() error
	Stop() error
	Delete() error
	Status() (ServiceStatus, error)
	Detail() (Detail, error)
	CommandLine() (string, error)
	Close() error
}

// Detail is the richer status the status verb needs beyond a bare
// ServiceStatus: the wrapped process's PID (0 if not running) and its
// last exit code, mirroring the fields Windows reports in
// SERVICE_STATUS_PROCESS.
type Detail struct {
	Status   ServiceStatus
	Pid      uint32
	ExitCode uint32
}

// ServiceManager implements ServiceRegistry (component C7) against any
// SCManagerInterface. Grounded on
// warpdl-warpdl/internal/service/manager_windows.go's ServiceManager.
type ServiceManager struct {
	scm SCManagerInterface
}

// NewServiceManager wraps an already-connected SCM handle.
func NewServiceManager(scm SCManagerInterface) *ServiceManager {
	return &ServiceManager{scm: scm}
}

// Install registers cfg as a new service named ServiceName(cfg.Name),
// then starts it. Fails with ErrServiceExists if already registered.
func (m *ServiceManager) Install(exePath string, cfg ServiceConfig) error {
	name := ServiceName(cfg.Name)
	svc, err := m.scm.CreateService(name, exePath, buildLaunchArgs(cfg))
	if err != nil {
		return err
	}
	defer svc.Close()
	return svc.Start()
}

// Uninstall stops (if running) and deletes the named service.
func (m *ServiceManager) Uninstall(name string) error {
	svc, err := m.scm.OpenService(ServiceName(name))
	if err != nil {
		return err
	}
	defer svc.Close()

	status, err := svc.Status()
	if err == nil && status != StatusStopped {
		_ = svc.Stop()
		_ = m.waitForServiceState(svc, StatusStopped, 10*time.Second)
	}
	return svc.Delete()
}

// waitForServiceState polls an already-open ServiceInterface, used by
// Uninstall which needs to wait on the handle it already holds rather
// than reopening the service by name.
func (m *ServiceManager) waitForServiceState(svc ServiceInterface, target ServiceStatus, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		status, err := svc.Status()
		if err != nil {
			return err
		}
		if status == target {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrTimeout
		}
		time.Sleep(time.Second)
	}
}

// Start submits a start control to the named service.
func (m *ServiceManager) Start(name string) error {
	svc, err := m.scm.OpenService(ServiceName(name))
	if err != nil {
		return err
	}
	defer svc.Close()

	status, err := svc.Status()
	if err != nil {
		return err
	}
	if status == StatusRunning {
		return ErrServiceAlreadyRunning
	}
	return svc.Start()
}

// Stop submits a stop control to the named service.
func (m *ServiceManager) Stop(name string) error {
	svc, err := m.scm.OpenService(ServiceName(name))
	if err != nil {
		return err
	}
	defer svc.Close()

	status, err := svc.Status()
	if err != nil {
		return err
	}
	if status == StatusStopped {
		return ErrServiceNotRunning
	}
	return svc.Stop()
}

// Status returns the named service's current status.
func (m *ServiceManager) Status(name string) (ServiceStatus, error) {
	svc, err := m.scm.OpenService(ServiceName(name))
	if err != nil {
		return 0, err
	}
	defer svc.Close()
	return svc.Status()
}

// QueryDetail returns the named service's status plus its wrapped
// process's PID and last exit code, for the status verb.
func (m *ServiceManager) QueryDetail(name string) (Detail, error) {
	svc, err := m.scm.OpenService(ServiceName(name))
	if err != nil {
		return Detail{}, err
	}
	defer svc.Close()
	return svc.Detail()
}

// WaitForState polls Status every second until it equals target or
// timeout elapses, per spec.md §4.7's wait_for_state operation.
func (m *ServiceManager) WaitForState(name string, target ServiceStatus, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		status, err := m.Status(name)
		if err != nil {
			return err
		}
		if status == target {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrTimeout
		}
		time.Sleep(time.Second)
	}
}

// QueryCommandLine returns the raw lpBinaryPathName recorded for the
// named service, for the status verb to decode with ParseCommandLine.
func (m *ServiceManager) QueryCommandLine(name string) (string, error) {
	svc, err := m.scm.OpenService(ServiceName(name))
	if err != nil {
		return "", err
	}
	defer svc.Close()
	return svc.CommandLine()
}

// ListWithStatus enumerates every registered service whose SCM name
// carries the reserved prefix, applying the [default]/strip display rule.
func (m *ServiceManager) ListWithStatus() ([]Entry, error) {
	names, err := m.scm.ListServiceNames()
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, n := range names {
		if n != ServiceNamePrefix && !strings.HasPrefix(n, ServiceNamePrefix+"-") {
			continue
		}
		svc, err := m.scm.OpenService(n)
		if err != nil {
			continue
		}
		status, err := svc.Status()
		svc.Close()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Name:        n,
			DisplayName: DisplayName(n),
			Status:      status,
		})
	}
	return entries, nil
}
