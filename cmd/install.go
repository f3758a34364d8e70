package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/ferama/wsw/internal/wswsvc"
)

func installCommand() cli.Command {
	return cli.Command{
		Name:         "install",
		Aliases:      []string{"i"},
		Usage:        "register a command line as a Windows service and start it",
		Flags:        launchFlags,
		OnUsageError: usageErrorCallback,
		Action:       installAction,
	}
}

func installAction(ctx *cli.Context) error {
	if err := requireAdmin(); err != nil {
		return err
	}

	cfg, err := buildServiceConfigFromFlags(ctx)
	if err != nil {
		return err
	}

	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	err = withServiceManager(func(mgr *wswsvc.ServiceManager) error {
		return mgr.Install(exePath, cfg)
	})
	if err != nil {
		if errors.Is(err, wswsvc.ErrServiceExists) {
			return fmt.Errorf("service %q is already installed", wswsvc.ServiceName(cfg.Name))
		}
		if errors.Is(err, wswsvc.ErrAccessDenied) {
			return fmt.Errorf("%w: installing service %q", wswsvc.ErrAccessDenied, wswsvc.ServiceName(cfg.Name))
		}
		return fmt.Errorf("failed to install service: %w", err)
	}

	_ = wswsvc.RegisterEventSource(wswsvc.ServiceName(cfg.Name))

	fmt.Printf("service %q installed and started\n", wswsvc.ServiceName(cfg.Name))
	return nil
}
