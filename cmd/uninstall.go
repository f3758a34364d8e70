package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli"

	"github.com/ferama/wsw/internal/wswsvc"
)

func uninstallCommand() cli.Command {
	return cli.Command{
		Name:         "uninstall",
		Aliases:      []string{"u"},
		Usage:        "stop and remove a wsw-managed service",
		Flags:        []cli.Flag{nameFlag},
		OnUsageError: usageErrorCallback,
		Action:       uninstallAction,
	}
}

func uninstallAction(ctx *cli.Context) error {
	if err := requireAdmin(); err != nil {
		return err
	}
	name := serviceNameFrom(ctx)

	err := withServiceManager(func(mgr *wswsvc.ServiceManager) error {
		return mgr.Uninstall(name)
	})
	if err != nil {
		if errors.Is(err, wswsvc.ErrServiceNotFound) {
			return fmt.Errorf("service %q is not installed", wswsvc.ServiceName(name))
		}
		if errors.Is(err, wswsvc.ErrAccessDenied) {
			return fmt.Errorf("%w: uninstalling service %q", wswsvc.ErrAccessDenied, wswsvc.ServiceName(name))
		}
		return fmt.Errorf("failed to uninstall service: %w", err)
	}

	_ = wswsvc.RemoveEventSource(wswsvc.ServiceName(name))

	fmt.Printf("service %q uninstalled\n", wswsvc.ServiceName(name))
	return nil
}
