package cmd

import (
	"github.com/urfave/cli"
)

// GetApp builds the wsw CLI application: one command per verb plus the
// hidden run verb the SCM re-enters through. Grounded on
// warpdl-warpdl/cmd/cmd.go's GetApp shape.
func GetApp() *cli.App {
	return &cli.App{
		Name:         "wsw",
		HelpName:     "wsw",
		Usage:        "wrap a command line as a managed Windows service",
		UsageText:    "wsw <command> [arguments...]",
		OnUsageError: usageErrorCallback,
		Commands: []cli.Command{
			installCommand(),
			uninstallCommand(),
			startCommand(),
			stopCommand(),
			restartCommand(),
			statusCommand(),
			listCommand(),
			logsCommand(),
			runCommand(),
		},
		HideHelp: false,
	}
}

// Execute runs the wsw CLI with args (typically os.Args).
func Execute(args []string) error {
	return GetApp().Run(args)
}
