package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/flightdeck/internal/app"
	"github.com/zjrosen/flightdeck/internal/presentation"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List navigation keys as JSON",
	Long: `List every navigation key of the configured sidebar, including the
keys of each panel's sub-tabs, as JSON. Use these keys for 'start' and
for custom navigation in the config file.

Examples:
  flightdeck keys
  flightdeck keys | jq '.[].key'
  flightdeck keys | jq '.[] | select(.key == "mining") | .tabs[].key'`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfgErr != nil {
			return cfgErr
		}
		m, err := app.New(app.Options{Config: cfg, ConfigPath: cfgPath})
		if err != nil {
			return err
		}
		defer func() { _ = m.Close() }()
		return presentation.NewFormatter(cmd.OutOrStdout()).FormatLeaves(presentation.FromShell(m.Shell()))
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
}
