//go:build windows

package spawn

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/ferama/wsw/internal/killtree"
)

// Spawn launches cmdline under powershell.exe -Command, matching
// original_source/src/pkg/runner.rs's run_command: stdin is the null
// device, stdout/stderr are piped unless disableLogs is set (in which
// case they are discarded rather than left to fill an unread pipe
// buffer), and the child is attached to a fresh KillTree group
// immediately after Start so no descendant it forks can escape the
// group.
func Spawn(cmdline string, workingDir string, disableLogs bool) (*Process, error) {
	if firstToken(cmdline) == "" {
		return nil, fmt.Errorf("%w: %q", ErrCommandNotFound, cmdline)
	}
	dir := resolveWorkingDir(cmdline, workingDir)

	cmd := exec.Command("powershell.exe", "-Command", cmdline)
	cmd.Dir = dir

	var stdout, stderr io.ReadCloser
	if !disableLogs {
		var err error
		stdout, err = cmd.StdoutPipe()
		if err != nil {
			return nil, fmt.Errorf("spawn: stdout pipe: %w", err)
		}
		stderr, err = cmd.StderrPipe()
		if err != nil {
			return nil, fmt.Errorf("spawn: stderr pipe: %w", err)
		}
	}

	kt, err := killtree.Create()
	if err != nil {
		return nil, fmt.Errorf("spawn: create killtree: %w", err)
	}

	if err := cmd.Start(); err != nil {
		kt.Close()
		return nil, fmt.Errorf("spawn: start: %w", err)
	}

	if err := kt.Attach(cmd.Process); err != nil {
		cmd.Process.Kill()
		kt.Close()
		return nil, fmt.Errorf("spawn: attach killtree: %w", err)
	}

	p := &Process{
		Stdout: stdout,
		Stderr: stderr,
		pid:    cmd.Process.Pid,
		kt:     kt,
		wait:   cmd.Wait,
		kill:   func() error { return cmd.Process.Kill() },
	}
	return p, nil
}
