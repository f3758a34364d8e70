package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli"

	"github.com/ferama/wsw/internal/wswsvc"
)

func statusCommand() cli.Command {
	return cli.Command{
		Name:         "status",
		Usage:        "show a wsw-managed service's state, pid, and wrapped command",
		Flags:        []cli.Flag{nameFlag},
		OnUsageError: usageErrorCallback,
		Action:       statusAction,
	}
}

func statusAction(ctx *cli.Context) error {
	name := serviceNameFrom(ctx)

	var detail wswsvc.Detail
	var cmdline string

	err := withServiceManager(func(mgr *wswsvc.ServiceManager) error {
		d, err := mgr.QueryDetail(name)
		if err != nil {
			return err
		}
		detail = d

		raw, err := mgr.QueryCommandLine(name)
		if err != nil {
			return nil // command line is best-effort; still show status
		}
		if cfg, err := wswsvc.ParseCommandLine(raw); err == nil {
			cmdline = cfg.Spec.Cmdline
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, wswsvc.ErrServiceNotFound) {
			return fmt.Errorf("service %q is not installed", wswsvc.ServiceName(name))
		}
		return fmt.Errorf("failed to query service status: %w", err)
	}

	pid := "Not running"
	if detail.Status == wswsvc.StatusRunning && detail.Pid != 0 {
		pid = fmt.Sprintf("%d", detail.Pid)
	}
	exitCode := "N/A"
	if detail.Status == wswsvc.StatusStopped {
		exitCode = fmt.Sprintf("%d", detail.ExitCode)
	}
	if cmdline == "" {
		cmdline = "(unknown)"
	}

	fmt.Printf("name:     %s\n", wswsvc.ServiceName(name))
	fmt.Printf("state:    %s\n", detail.Status)
	fmt.Printf("pid:      %s\n", pid)
	fmt.Printf("command:  %s\n", cmdline)
	fmt.Printf("exit code: %s\n", exitCode)
	return nil
}
