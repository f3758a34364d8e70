//go:build windows

package wswsvc

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/mgr"
)

// windowsSCManager wraps the Windows SCM connection. Grounded on
// warpdl-warpdl/internal/service/scm_windows.go's windowsSCManager.
type windowsSCManager struct {
	mgr *mgr.Mgr
}

// windowsService wraps a single registered service handle.
type windowsService struct {
	svc *mgr.Service
}

// OpenSCManager connects to the local Windows SCM. The caller must Close
// it when done.
func OpenSCManager() (SCManagerInterface, error) {
	m, err := mgr.Connect()
	if err != nil {
		return nil, fmt.Errorf("wswsvc: connect to service control manager: %w", translateAccessError(err))
	}
	return &windowsSCManager{mgr: m}, nil
}

func (m *windowsSCManager) OpenService(name string) (ServiceInterface, error) {
	s, err := m.mgr.OpenService(name)
	if err != nil {
		if errors.Is(err, windows.ERROR_ACCESS_DENIED) {
			return nil, fmt.Errorf("wswsvc: open service %q: %w", name, ErrAccessDenied)
		}
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, name)
	}
	return &windowsService{svc: s}, nil
}

func (m *windowsSCManager) CreateService(name, exePath string, args []string) (ServiceInterface, error) {
	if existing, err := m.mgr.OpenService(name); err == nil {
		existing.Close()
		return nil, ErrServiceExists
	}

	cfg := mgr.Config{
		DisplayName:  "Windows Service Wrapper (" + name + ")",
		StartType:    mgr.StartAutomatic,
		ErrorControl: mgr.ErrorNormal,
		ServiceType:  windows.SERVICE_WIN32_OWN_PROCESS,
	}
	s, err := m.mgr.CreateService(name, exePath, cfg, args...)
	if err != nil {
		return nil, fmt.Errorf("wswsvc: create service %q: %w", name, translateAccessError(err))
	}
	return &windowsService{svc: s}, nil
}

func (m *windowsSCManager) ListServiceNames() ([]string, error) {
	return m.mgr.ListServices()
}

func (m *windowsSCManager) Close() error {
	return m.mgr.Disconnect()
}

func (s *windowsService) Start() error {
	if err := s.svc.Start(); err != nil {
		return fmt.Errorf("wswsvc: start service: %w", translateAccessError(err))
	}
	return nil
}

func (s *windowsService) Stop() error {
	if _, err := s.svc.Control(svc.Stop); err != nil {
		return fmt.Errorf("wswsvc: stop service: %w", translateAccessError(err))
	}
	return nil
}

func (s *windowsService) Delete() error {
	if err := s.svc.Delete(); err != nil {
		return fmt.Errorf("wswsvc: delete service: %w", translateAccessError(err))
	}
	return nil
}

func (s *windowsService) Status() (ServiceStatus, error) {
	status, err := s.svc.Query()
	if err != nil {
		return 0, fmt.Errorf("wswsvc: query service status: %w", err)
	}
	return ServiceStatus(status.State), nil
}

func (s *windowsService) Detail() (Detail, error) {
	status, err := s.svc.Query()
	if err != nil {
		return Detail{}, fmt.Errorf("wswsvc: query service status: %w", err)
	}
	return Detail{
		Status:   ServiceStatus(status.State),
		Pid:      uint32(status.ProcessId),
		ExitCode: status.Win32ExitCode,
	}, nil
}

func (s *windowsService) CommandLine() (string, error) {
	cfg, err := s.svc.Config()
	if err != nil {
		return "", fmt.Errorf("wswsvc: query service config: %w", err)
	}
	return cfg.BinaryPathName, nil
}

func (s *windowsService) Close() error {
	return s.svc.Close()
}

// translateAccessError surfaces Windows access-denied errors as
// ErrAccessDenied, which spec.md §4.7 requires be reported distinctly
// from other failures.
func translateAccessError(err error) error {
	if errors.Is(err, windows.ERROR_ACCESS_DENIED) {
		return ErrAccessDenied
	}
	return err
}
