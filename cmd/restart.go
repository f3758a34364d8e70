package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli"

	"github.com/ferama/wsw/internal/wswsvc"
)

func restartCommand() cli.Command {
	return cli.Command{
		Name:         "restart",
		Usage:        "stop then start a wsw-managed service",
		Flags:        []cli.Flag{nameFlag},
		OnUsageError: usageErrorCallback,
		Action:       restartAction,
	}
}

func restartAction(ctx *cli.Context) error {
	if err := requireAdmin(); err != nil {
		return err
	}
	name := serviceNameFrom(ctx)

	err := withServiceManager(func(mgr *wswsvc.ServiceManager) error {
		if stopErr := mgr.Stop(name); stopErr != nil && !errors.Is(stopErr, wswsvc.ErrServiceNotRunning) {
			return fmt.Errorf("stop failed: %w", stopErr)
		}
		if err := mgr.WaitForState(name, wswsvc.StatusStopped, waitForStateTimeout); err != nil {
			return fmt.Errorf("timed out waiting for stop: %w", err)
		}
		if err := mgr.Start(name); err != nil {
			return fmt.Errorf("start failed: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, wswsvc.ErrServiceNotFound) {
			return fmt.Errorf("service %q is not installed", wswsvc.ServiceName(name))
		}
		return err
	}

	fmt.Printf("service %q restarted\n", wswsvc.ServiceName(name))
	return nil
}
