// Package cmd implements the wsw command-line interface: one verb per
// operator action (install, uninstall, start, stop, restart, status,
// list, logs) plus the hidden run verb SCM uses to re-enter service
// mode.
package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/ferama/wsw/internal/logs"
	"github.com/ferama/wsw/internal/supervisor"
	"github.com/ferama/wsw/internal/wswsvc"
)

// openSCManagerFunc is a package-level var so tests can stub SCM access
// entirely, the same dependency-injection shape
// warpdl-warpdl/cmd/service_windows.go uses for its service manager
// tests.
var openSCManagerFunc = wswsvc.OpenSCManager

// getServiceManager connects to the SCM and wraps it in a ServiceManager.
// The caller must close the returned SCManagerInterface when done.
func getServiceManager() (*wswsvc.ServiceManager, wswsvc.SCManagerInterface, error) {
	scm, err := openSCManagerFunc()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to service control manager: %w", err)
	}
	return wswsvc.NewServiceManager(scm), scm, nil
}

// withServiceManager runs fn with a connected ServiceManager, always
// closing the SCM handle afterward.
func withServiceManager(fn func(*wswsvc.ServiceManager) error) error {
	mgr, scm, err := getServiceManager()
	if err != nil {
		return err
	}
	defer scm.Close()
	return fn(mgr)
}

// nameFlag is the --name flag taken by every verb that targets a single
// service; install and run receive it through launchFlags, alongside
// --cmd.
var nameFlag = cli.StringFlag{
	Name:  "name",
	Usage: "service name (bare prefix if omitted)",
}

func serviceNameFrom(ctx *cli.Context) string {
	return ctx.String("name")
}

// usageErrorCallback mirrors warpdl-warpdl/cmd's OnUsageError convention:
// print the usage error to stderr and exit non-zero instead of dumping a
// Go error stack.
func usageErrorCallback(ctx *cli.Context, err error, isSubcommand bool) error {
	fmt.Fprintln(os.Stderr, "wsw:", err)
	return cli.NewExitError("", 1)
}

// parseRotationFlag is shared by install and run, both of which accept
// --log-rotation with the same spelling and default.
func parseRotationFlag(ctx *cli.Context) (logs.Rotation, error) {
	v := ctx.String("log-rotation")
	if v == "" {
		v = "daily"
	}
	return logs.ParseRotation(v)
}

// launchFlags are the flags install and run both accept — install to
// record a LaunchSpec, run to reconstruct one.
var launchFlags = []cli.Flag{
	cli.StringFlag{Name: "cmd", Usage: "command line to wrap (required)"},
	nameFlag,
	cli.StringFlag{Name: "working-dir", Usage: "working directory for the wrapped command"},
	cli.BoolFlag{Name: "disable-logs", Usage: "discard the wrapped command's stdout/stderr instead of capturing them"},
	cli.StringFlag{Name: "log-rotation", Usage: "minutely, hourly, daily, or never", Value: "daily"},
	cli.IntFlag{Name: "max-log-files", Usage: "rotated log files to retain (0 disables pruning)", Value: 5},
}

// buildServiceConfigFromFlags decodes launchFlags into a ServiceConfig,
// the shape install.go registers and run.go was invoked with.
func buildServiceConfigFromFlags(ctx *cli.Context) (wswsvc.ServiceConfig, error) {
	cmdline := ctx.String("cmd")
	if cmdline == "" {
		return wswsvc.ServiceConfig{}, fmt.Errorf("--cmd is required")
	}
	rotation, err := parseRotationFlag(ctx)
	if err != nil {
		return wswsvc.ServiceConfig{}, err
	}
	return wswsvc.ServiceConfig{
		Name: serviceNameFrom(ctx),
		Spec: supervisor.LaunchSpec{
			Cmdline:     cmdline,
			WorkingDir:  ctx.String("working-dir"),
			DisableLogs: ctx.Bool("disable-logs"),
		},
		Rotation:    rotation,
		MaxLogFiles: ctx.Int("max-log-files"),
	}, nil
}
