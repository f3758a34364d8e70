package main

import (
	"fmt"
	"os"

	"github.com/ferama/wsw/cmd"
)

var osExit = os.Exit

func main() {
	osExit(runMain(os.Args, cmd.Execute))
}

func runMain(args []string, runFunc func([]string) error) int {
	if err := runFunc(args); err != nil {
		fmt.Fprintf(os.Stderr, "wsw: %s\n", err.Error())
		return 1
	}
	return 0
}
