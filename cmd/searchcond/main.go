// Command searchcond compiles request parameters into parameterized SQL
// search conditions described by a YAML or CUE search config.
package main

import (
	"os"

	"github.com/roach88/searchcond/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
