// Command gojslint is the CLI entry point.
package main

import (
	"os"

	"github.com/yaklabco/gojslint/internal/cli"
	"github.com/yaklabco/gojslint/internal/logging"
)

// Build-time variables set via -ldflags.
//
//nolint:gochecknoglobals // Set by the linker
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	if err := rootCmd.Execute(); err != nil {
		if code := cli.ExitCode(err); code != cli.ExitOK {
			if _, isExit := err.(*cli.ExitCodeError); !isExit {
				logging.Default().Error(err.Error())
			}
			os.Exit(code)
		}
	}
}
