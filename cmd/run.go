package cmd

import (
	"github.com/urfave/cli"

	"github.com/ferama/wsw/internal/logs"
	"github.com/ferama/wsw/internal/supervisor"
	"github.com/ferama/wsw/internal/wswsvc"
)

// runCommand is the entry point the SCM invokes: it is never typed by an
// operator directly, so it carries no Usage and is constructed with
// Hidden set, which omits it from the help listing.
func runCommand() cli.Command {
	return cli.Command{
		Name:   "run",
		Hidden: true,
		Flags:  launchFlags,
		Action: runAction,
	}
}

func runAction(ctx *cli.Context) error {
	cfg, err := buildServiceConfigFromFlags(ctx)
	if err != nil {
		return err
	}

	logger, closeLogger := logs.New(wswsvc.ServiceName(cfg.Name), cfg.Rotation, cfg.MaxLogFiles)
	defer closeLogger()

	sup := supervisor.New(cfg.Spec, logger)

	var eventLogger wswsvc.EventLogger
	if el, err := newServiceEventLogger(wswsvc.ServiceName(cfg.Name)); err == nil {
		eventLogger = el
		defer eventLogger.Close()
	} else {
		eventLogger = wswsvc.NewConsoleEventLogger(nil)
	}

	return wswsvc.Run(wswsvc.ServiceName(cfg.Name), sup, eventLogger)
}
