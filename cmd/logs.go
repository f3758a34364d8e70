package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/ferama/wsw/internal/logs"
	"github.com/ferama/wsw/internal/wswsvc"
)

func logsCommand() cli.Command {
	return cli.Command{
		Name:  "logs",
		Usage: "tail the newest log file for a wsw-managed service",
		Flags: []cli.Flag{
			nameFlag,
			cli.BoolFlag{Name: "follow", Usage: "poll for new lines every second"},
			cli.BoolFlag{Name: "full", Usage: "print raw lines instead of stripping the wrapped-process marker"},
		},
		OnUsageError: usageErrorCallback,
		Action:       logsAction,
	}
}

func logsAction(ctx *cli.Context) error {
	prefix := wswsvc.ServiceName(serviceNameFrom(ctx))

	dir, ok := logs.ResolveLogDir()
	if !ok {
		return fmt.Errorf("no log directory available")
	}
	path, err := logs.NewestLogFile(dir, prefix)
	if err != nil {
		return fmt.Errorf("no log file found for %q: %w", prefix, err)
	}

	full := ctx.Bool("full")
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	if err := printLines(r, os.Stdout, full); err != nil && err != io.EOF {
		return err
	}

	if !ctx.Bool("follow") {
		return nil
	}

	for {
		time.Sleep(time.Second)
		if err := printLines(r, os.Stdout, full); err != nil && err != io.EOF {
			return err
		}
	}
}

// printLines drains r line-by-line to w, stripping the wrapped-process
// marker unless full is set. Grounded on spec.md §6's logs verb: "strip
// the |SVC-LOG|-tagged subset" for the default clean view.
func printLines(r *bufio.Reader, w io.Writer, full bool) error {
	for {
		line, err := r.ReadString('\n')
		if len(line) > 0 {
			if !full {
				line = strings.Replace(line, logs.WrappedLinePrefix, "", 1)
			}
			fmt.Fprint(w, line)
		}
		if err != nil {
			return err
		}
	}
}
