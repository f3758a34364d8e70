package logs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// withProgramData points resolveLogDir at a temp directory for the
// duration of a test by setting PROGRAMDATA, the first link in the
// fallback chain.
func withProgramData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, had := os.LookupEnv("PROGRAMDATA")
	os.Setenv("PROGRAMDATA", dir)
	t.Cleanup(func() {
		if had {
			os.Setenv("PROGRAMDATA", old)
		} else {
			os.Unsetenv("PROGRAMDATA")
		}
	})
	return filepath.Join(dir, "wsw", "logs")
}

func waitForQueueDrain(l *Logger) {
	// The writer goroutine drains asynchronously; give it a moment to
	// catch up before a test inspects the file on disk.
	for i := 0; i < 100; i++ {
		if len(l.queue) == 0 {
			time.Sleep(10 * time.Millisecond)
			return
		}
		time.Sleep(time.Millisecond)
	}
}

func TestLoggerWritesToFile(t *testing.T) {
	logDir := withProgramData(t)
	l, closeFn := New("wsw-myapp", RotationDaily, 5)
	defer closeFn()

	l.Info("hello from test", false)
	waitForQueueDrain(l)
	closeFn()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("ReadDir(%s): %v", logDir, err)
	}
	if len(entries) == 0 {
		t.Fatal("expected at least one log file to be created")
	}

	content, err := os.ReadFile(filepath.Join(logDir, entries[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(content), "hello from test") {
		t.Errorf("log file content = %q, missing message", content)
	}
}

func TestLoggerWrappedLineCarriesPrefix(t *testing.T) {
	logDir := withProgramData(t)
	l, closeFn := New("wsw-myapp", RotationDaily, 5)

	l.Info("child said hi", true)
	waitForQueueDrain(l)
	closeFn()

	entries, err := os.ReadDir(logDir)
	if err != nil || len(entries) == 0 {
		t.Fatalf("ReadDir: %v, entries=%v", err, entries)
	}
	content, _ := os.ReadFile(filepath.Join(logDir, entries[0].Name()))
	if !strings.Contains(string(content), WrappedLinePrefix+"child said hi") {
		t.Errorf("log file content = %q, missing wrapped prefix", content)
	}
}

func TestLoggerCloseIsIdempotent(t *testing.T) {
	withProgramData(t)
	l, closeFn := New("wsw-myapp", RotationDaily, 5)
	closeFn()
	closeFn() // must not panic or double-close
	_ = l
}

func TestLoggerFallsBackToConsoleOnlyWhenDirUnwritable(t *testing.T) {
	// Point every fallback link at a path that cannot be created: a
	// file (not a directory) blocking os.MkdirAll at each step.
	blockerParent := t.TempDir()
	blocker := filepath.Join(blockerParent, "blocked")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	old, had := os.LookupEnv("PROGRAMDATA")
	os.Setenv("PROGRAMDATA", filepath.Join(blocker, "wsw"))
	defer func() {
		if had {
			os.Setenv("PROGRAMDATA", old)
		} else {
			os.Unsetenv("PROGRAMDATA")
		}
	}()

	dir, ok := resolveLogDir()
	if ok {
		t.Skipf("resolveLogDir unexpectedly succeeded via a later fallback link: dir=%q", dir)
	}

	l, closeFn := New("wsw-myapp", RotationDaily, 5)
	defer closeFn()
	if l.dirOK {
		t.Error("Logger has a usable log directory, want console-only output")
	}
}
