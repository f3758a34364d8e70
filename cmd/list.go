package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/ferama/wsw/internal/wswsvc"
)

func listCommand() cli.Command {
	return cli.Command{
		Name:         "list",
		Aliases:      []string{"ls"},
		Usage:        "list every wsw-managed service and its state",
		OnUsageError: usageErrorCallback,
		Action:       listAction,
	}
}

func listAction(ctx *cli.Context) error {
	var entries []wswsvc.Entry
	err := withServiceManager(func(mgr *wswsvc.ServiceManager) error {
		e, err := mgr.ListWithStatus()
		entries = e
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to list services: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("no wsw-managed services installed")
		return nil
	}

	fmt.Printf("%-20s %s\n", "NAME", "STATE")
	for _, e := range entries {
		fmt.Printf("%-20s %s\n", e.DisplayName, e.Status)
	}
	return nil
}
