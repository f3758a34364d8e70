package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli"

	"github.com/ferama/wsw/internal/wswsvc"
)

func stopCommand() cli.Command {
	return cli.Command{
		Name:         "stop",
		Usage:        "stop a wsw-managed service",
		Flags:        []cli.Flag{nameFlag},
		OnUsageError: usageErrorCallback,
		Action:       stopAction,
	}
}

func stopAction(ctx *cli.Context) error {
	if err := requireAdmin(); err != nil {
		return err
	}
	name := serviceNameFrom(ctx)

	err := withServiceManager(func(mgr *wswsvc.ServiceManager) error {
		if err := mgr.Stop(name); err != nil {
			return err
		}
		return mgr.WaitForState(name, wswsvc.StatusStopped, waitForStateTimeout)
	})
	if err != nil {
		if errors.Is(err, wswsvc.ErrServiceNotFound) {
			return fmt.Errorf("service %q is not installed", wswsvc.ServiceName(name))
		}
		if errors.Is(err, wswsvc.ErrServiceNotRunning) {
			return fmt.Errorf("service %q is not running", wswsvc.ServiceName(name))
		}
		return fmt.Errorf("failed to stop service: %w", err)
	}

	fmt.Printf("service %q stopped\n", wswsvc.ServiceName(name))
	return nil
}
