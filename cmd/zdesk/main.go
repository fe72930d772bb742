package main

import (
	"fmt"
	"os"

	"github.com/fivetwenty-io/zendesk-client/cmd/zdesk/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := commands.NewRootCommand(commands.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
