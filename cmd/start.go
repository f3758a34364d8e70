package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/ferama/wsw/internal/wswsvc"
)

const waitForStateTimeout = 10 * time.Second

func startCommand() cli.Command {
	return cli.Command{
		Name:         "start",
		Usage:        "start a wsw-managed service",
		Flags:        []cli.Flag{nameFlag},
		OnUsageError: usageErrorCallback,
		Action:       startAction,
	}
}

func startAction(ctx *cli.Context) error {
	if err := requireAdmin(); err != nil {
		return err
	}
	name := serviceNameFrom(ctx)

	err := withServiceManager(func(mgr *wswsvc.ServiceManager) error {
		if err := mgr.Start(name); err != nil {
			return err
		}
		return mgr.WaitForState(name, wswsvc.StatusRunning, waitForStateTimeout)
	})
	if err != nil {
		if errors.Is(err, wswsvc.ErrServiceNotFound) {
			return fmt.Errorf("service %q is not installed", wswsvc.ServiceName(name))
		}
		if errors.Is(err, wswsvc.ErrServiceAlreadyRunning) {
			return fmt.Errorf("service %q is already running", wswsvc.ServiceName(name))
		}
		return fmt.Errorf("failed to start service: %w", err)
	}

	fmt.Printf("service %q started\n", wswsvc.ServiceName(name))
	return nil
}
