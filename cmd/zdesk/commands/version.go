package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := struct {
				BuildInfo `yaml:",inline"`

				GoVersion string `json:"go_version" yaml:"go_version"`
				Platform  string `json:"platform"   yaml:"platform"`
			}{
				BuildInfo: app.info,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}

			done, err := writeStructured(cmd.OutOrStdout(), app.outputFormat(), info)
			if done || err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "zdesk version %s (commit %s, built %s, %s, %s)\n",
				app.info.Version, app.info.Commit, app.info.Date, info.GoVersion, info.Platform)

			return nil
		},
	}
}
