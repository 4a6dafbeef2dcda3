// Command heroes browses and manages a catalog of heroes.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/heroes/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
