// Package supervisor drives the inner run loop that owns a single
// wrapped child across its whole lifetime: spawn, watch, restart on
// exit, and tear down cleanly on request (spec.md §4.5, component C5).
package supervisor

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/ferama/wsw/internal/logs"
	"github.com/ferama/wsw/internal/outputpump"
	"github.com/ferama/wsw/internal/spawn"
)

// pollInterval is the cadence at which Run checks stop_requested and the
// child's exit status. Bounded at 1s so STOP is always observed within
// that window (spec.md §4.5).
const pollInterval = time.Second

// backoffDelay is the fixed pause between a child exiting (or failing to
// spawn) and the next launch attempt. Fixed rather than exponential — see
// the Open Question decision in DESIGN.md.
const backoffDelay = time.Second

// LaunchSpec is everything the Supervisor needs to (re)spawn the wrapped
// command on each restart.
type LaunchSpec struct {
	Cmdline     string
	WorkingDir  string
	DisableLogs bool
}

// Spawner is the subset of the spawn package a Supervisor needs, defined
// as an interface so tests can substitute a fake process without a real
// Windows Job Object.
type Spawner interface {
	Spawn(cmdline, workingDir string, disableLogs bool) (Child, error)
}

// Child is the subset of *spawn.Process a Supervisor drives.
type Child interface {
	Pid() int
	Wait() error
	Kill() error
}

// Supervisor owns SupervisorState exclusively: the stop flag and the
// currently-running child, if any. The invariant current_child != nil =>
// current_killtree != nil holds by construction because spawn.Spawn only
// ever returns a Child already attached to its KillTree.
type Supervisor struct {
	spec    LaunchSpec
	logger  *logs.Logger
	spawner Spawner

	stopRequested atomic.Bool

	mu      sync.Mutex
	current Child
}

// realSpawner adapts spawn.Spawn to the Spawner interface.
type realSpawner struct{}

func (realSpawner) Spawn(cmdline, workingDir string, disableLogs bool) (Child, error) {
	return spawn.Spawn(cmdline, workingDir, disableLogs)
}

// New builds a Supervisor for spec, logging wrapped-process output and
// lifecycle events to logger.
func New(spec LaunchSpec, logger *logs.Logger) *Supervisor {
	return &Supervisor{spec: spec, logger: logger, spawner: realSpawner{}}
}

// Stop sets stop_requested. Idempotent, safe to call from any goroutine —
// in service mode this is the SCM control handler's goroutine, racing
// against Run's own goroutine.
func (s *Supervisor) Stop() {
	s.stopRequested.Store(true)
}

// Run executes the state machine in spec.md §4.5:
//
//	Idle -> Launching -> Running -> Backoff -> Launching (restart loop)
//	Running -> StoppingChild -> Terminated (on stop_requested)
//	Backoff -> Terminated (on stop_requested)
//
// It returns once stop_requested is observed and the current child, if
// any, has been fully torn down. On return, current_child and
// current_killtree are both nil — the invariant the test suite checks.
func (s *Supervisor) Run() {
	for !s.stopRequested.Load() {
		child, err := s.spawner.Spawn(s.spec.Cmdline, s.spec.WorkingDir, s.spec.DisableLogs)
		if err != nil {
			s.logger.Error("spawn failed: "+err.Error(), false)
			if s.sleepUnlessStopping(backoffDelay) {
				return
			}
			continue
		}

		s.logger.Info("child started", false)
		s.setCurrent(child)

		var wg sync.WaitGroup
		if p, ok := child.(*spawn.Process); ok {
			if p.Stdout != nil {
				wg.Add(1)
				go outputpump.Run(p.Stdout, s.logger, logs.LevelInfo, &wg)
			}
			if p.Stderr != nil {
				wg.Add(1)
				go outputpump.Run(p.Stderr, s.logger, logs.LevelWarning, &wg)
			}
		}

		exited := s.watch(child)
		if !exited {
			// stop_requested fired while the child was still alive.
			s.logger.Info("stopping child", false)
		}
		// Every exit from Running — whether the child died on its own or
		// was stopped above — tears down its KillTree before the next
		// spawn or return, so no Job Object handle (and no surviving
		// descendant) ever outlives its child.
		_ = child.Kill()
		wg.Wait()
		s.clearCurrent()

		if s.stopRequested.Load() {
			return
		}

		s.logger.Info("child exited, restarting after backoff", false)
		if s.sleepUnlessStopping(backoffDelay) {
			return
		}
	}
}

// watch polls at pollInterval until either the child exits on its own
// (returns true) or stop_requested fires first (returns false).
func (s *Supervisor) watch(child Child) bool {
	done := make(chan struct{})
	go func() {
		_ = child.Wait()
		close(done)
	}()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return true
		case <-ticker.C:
			if s.stopRequested.Load() {
				return false
			}
		}
	}
}

// sleepUnlessStopping sleeps d in pollInterval-sized slices so a stop
// request is observed within pollInterval instead of after the full
// backoff. Returns true if stop_requested fired during the sleep.
func (s *Supervisor) sleepUnlessStopping(d time.Duration) bool {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if s.stopRequested.Load() {
			return true
		}
		remaining := time.Until(deadline)
		step := pollInterval
		if remaining < step {
			step = remaining
		}
		time.Sleep(step)
	}
	return s.stopRequested.Load()
}

func (s *Supervisor) setCurrent(c Child) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = c
}

func (s *Supervisor) clearCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// CurrentPid returns the PID of the currently-running child, or 0 if
// none is running. Used by ServiceHost for diagnostics only.
func (s *Supervisor) CurrentPid() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return 0
	}
	return s.current.Pid()
}
