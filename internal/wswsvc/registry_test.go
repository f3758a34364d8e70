package wswsvc

import (
	"strings"
	"testing"
	"time"

	"github.com/ferama/wsw/internal/logs"
	"github.com/ferama/wsw/internal/supervisor"
)

func TestServiceNameAndDisplayName(t *testing.T) {
	cases := []struct {
		name        string
		wantService string
		wantDisplay string
	}{
		{"", "wsw", "[default]"},
		{"wsw", "wsw", "[default]"},
		{"myapp", "wsw-myapp", "myapp"},
	}
	for _, c := range cases {
		if got := ServiceName(c.name); got != c.wantService {
			t.Errorf("ServiceName(%q) = %q, want %q", c.name, got, c.wantService)
		}
		if got := DisplayName(ServiceName(c.name)); got != c.wantDisplay {
			t.Errorf("DisplayName(ServiceName(%q)) = %q, want %q", c.name, got, c.wantDisplay)
		}
	}
}

func TestBuildAndParseLaunchArgsRoundTrip(t *testing.T) {
	cfg := ServiceConfig{
		Name: "myapp",
		Spec: supervisor.LaunchSpec{
			Cmdline:     `"C:\Program Files\app\app.exe" --flag value`,
			WorkingDir:  `C:\data`,
			DisableLogs: true,
		},
		Rotation:    logs.RotationHourly,
		MaxLogFiles: 5,
	}

	args := buildLaunchArgs(cfg)
	raw := `"C:\Program Files\wsw\wsw.exe"`
	for _, a := range args {
		raw += " " + quoteForTest(a)
	}

	got, err := ParseCommandLine(raw)
	if err != nil {
		t.Fatalf("ParseCommandLine: %v", err)
	}
	if got.Name != cfg.Name {
		t.Errorf("Name = %q, want %q", got.Name, cfg.Name)
	}
	if got.Spec.Cmdline != cfg.Spec.Cmdline {
		t.Errorf("Cmdline = %q, want %q", got.Spec.Cmdline, cfg.Spec.Cmdline)
	}
	if got.Spec.WorkingDir != cfg.Spec.WorkingDir {
		t.Errorf("WorkingDir = %q, want %q", got.Spec.WorkingDir, cfg.Spec.WorkingDir)
	}
	if got.Spec.DisableLogs != cfg.Spec.DisableLogs {
		t.Errorf("DisableLogs = %v, want %v", got.Spec.DisableLogs, cfg.Spec.DisableLogs)
	}
	if got.Rotation != cfg.Rotation {
		t.Errorf("Rotation = %v, want %v", got.Rotation, cfg.Rotation)
	}
	if got.MaxLogFiles != cfg.MaxLogFiles {
		t.Errorf("MaxLogFiles = %d, want %d", got.MaxLogFiles, cfg.MaxLogFiles)
	}
}

// quoteForTest mirrors how a real SCM would report back an argument:
// embedded double quotes are escaped as \", and an argument that
// contains whitespace is wrapped in double quotes. Arguments without
// whitespace are left bare.
func quoteForTest(s string) string {
	needsQuote := false
	for _, r := range s {
		if r == ' ' || r == '\t' {
			needsQuote = true
			break
		}
	}
	s = strings.ReplaceAll(s, `"`, `\"`)
	if !needsQuote {
		return s
	}
	return `"` + s + `"`
}

// fakeService is a ServiceInterface test double.
type fakeService struct {
	status      ServiceStatus
	commandLine string
	startErr    error
	stopErr     error
	deleteErr   error
	stopCalled  bool
	deleted     bool
}

func (s *fakeService) Start() error { s.status = StatusRunning; return s.startErr }
func (s *fakeService) Stop() error {
	s.stopCalled = true
	s.status = StatusStopped
	return s.stopErr
}
func (s *fakeService) Delete() error                  { s.deleted = true; return s.deleteErr }
func (s *fakeService) Status() (ServiceStatus, error) { return s.status, nil }
func (s *fakeService) Detail() (Detail, error)        { return Detail{Status: s.status}, nil }
func (s *fakeService) CommandLine() (string, error)   { return s.commandLine, nil }
func (s *fakeService) Close() error                   { return nil }

// fakeSCManager is an SCManagerInterface test double backed by a map.
type fakeSCManager struct {
	services map[string]*fakeService
	created  map[string][]string
}

func newFakeSCManager() *fakeSCManager {
	return &fakeSCManager{services: map[string]*fakeService{}, created: map[string][]string{}}
}

func (m *fakeSCManager) OpenService(name string) (ServiceInterface, error) {
	s, ok := m.services[name]
	if !ok {
		return nil, ErrServiceNotFound
	}
	return s, nil
}

func (m *fakeSCManager) CreateService(name, exePath string, args []string) (ServiceInterface, error) {
	if _, exists := m.services[name]; exists {
		return nil, ErrServiceExists
	}
	s := &fakeService{status: StatusStopped}
	m.services[name] = s
	m.created[name] = args
	return s, nil
}

func (m *fakeSCManager) ListServiceNames() ([]string, error) {
	names := make([]string, 0, len(m.services))
	for n := range m.services {
		names = append(names, n)
	}
	return names, nil
}

func (m *fakeSCManager) Close() error { return nil }

func TestServiceManagerInstallStartsAfterCreate(t *testing.T) {
	scm := newFakeSCManager()
	m := NewServiceManager(scm)

	cfg := ServiceConfig{Name: "myapp", Spec: supervisor.LaunchSpec{Cmdline: "app.exe"}, Rotation: logs.RotationDaily}
	if err := m.Install(`C:\wsw.exe`, cfg); err != nil {
		t.Fatalf("Install: %v", err)
	}

	svc := scm.services["wsw-myapp"]
	if svc == nil {
		t.Fatal("expected service to be created")
	}
	if svc.status != StatusRunning {
		t.Errorf("expected service started after install, status = %v", svc.status)
	}
}

func TestServiceManagerInstallRejectsDuplicate(t *testing.T) {
	scm := newFakeSCManager()
	scm.services["wsw-myapp"] = &fakeService{status: StatusRunning}
	m := NewServiceManager(scm)

	err := m.Install(`C:\wsw.exe`, ServiceConfig{Name: "myapp", Spec: supervisor.LaunchSpec{Cmdline: "app.exe"}})
	if err != ErrServiceExists {
		t.Errorf("Install on duplicate = %v, want ErrServiceExists", err)
	}
}

func TestServiceManagerStartAlreadyRunning(t *testing.T) {
	scm := newFakeSCManager()
	scm.services["wsw-myapp"] = &fakeService{status: StatusRunning}
	m := NewServiceManager(scm)

	if err := m.Start("myapp"); err != ErrServiceAlreadyRunning {
		t.Errorf("Start on running service = %v, want ErrServiceAlreadyRunning", err)
	}
}

func TestServiceManagerStopNotRunning(t *testing.T) {
	scm := newFakeSCManager()
	scm.services["wsw-myapp"] = &fakeService{status: StatusStopped}
	m := NewServiceManager(scm)

	if err := m.Stop("myapp"); err != ErrServiceNotRunning {
		t.Errorf("Stop on stopped service = %v, want ErrServiceNotRunning", err)
	}
}

func TestServiceManagerListWithStatusFiltersToPrefix(t *testing.T) {
	scm := newFakeSCManager()
	scm.services["wsw"] = &fakeService{status: StatusRunning}
	scm.services["wsw-backup"] = &fakeService{status: StatusStopped}
	scm.services["unrelated-service"] = &fakeService{status: StatusRunning}
	m := NewServiceManager(scm)

	entries, err := m.ListWithStatus()
	if err != nil {
		t.Fatalf("ListWithStatus: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(entries), entries)
	}
	byName := map[string]Entry{}
	for _, e := range entries {
		byName[e.Name] = e
	}
	if byName["wsw"].DisplayName != "[default]" {
		t.Errorf("wsw display = %q, want [default]", byName["wsw"].DisplayName)
	}
	if byName["wsw-backup"].DisplayName != "backup" {
		t.Errorf("wsw-backup display = %q, want backup", byName["wsw-backup"].DisplayName)
	}
}

func TestServiceManagerWaitForStateTimesOut(t *testing.T) {
	scm := newFakeSCManager()
	scm.services["wsw-myapp"] = &fakeService{status: StatusStopPending}
	m := NewServiceManager(scm)

	err := m.WaitForState("myapp", StatusStopped, 10*time.Millisecond)
	if err != ErrTimeout {
		t.Errorf("WaitForState = %v, want ErrTimeout", err)
	}
}
