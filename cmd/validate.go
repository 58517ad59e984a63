package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zjrosen/flightdeck/internal/app"
	"github.com/zjrosen/flightdeck/internal/config"
	"github.com/zjrosen/flightdeck/internal/presentation"
	"github.com/zjrosen/flightdeck/internal/telemetry"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration without starting the dashboard",
	Long: `Load the configuration, build every panel and wire the navigation
exactly as the dashboard would, then report the result as JSON.

Unknown navigation keys, duplicate keys, a bad theme preset and an
unknown start key are all reported here. When a snapshot is configured it
is parsed as well.

Examples:
  flightdeck validate
  flightdeck validate --config ./my-layout.yaml
  flightdeck validate --snapshot ~/snapshot.yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfgErr != nil {
			return cfgErr
		}
		return runValidate(cmd.OutOrStdout(), cfg, cfgPath)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

var errInvalid = errors.New("configuration is invalid")

// runValidate prints the validation result and returns errInvalid when the
// configuration could not be used.
func runValidate(w io.Writer, c config.Config, path string) error {
	result := presentation.ValidationDTO{Config: path}
	if err := checkConfig(c, &result); err != nil {
		result.Error = err.Error()
	} else {
		result.Valid = true
	}
	if err := presentation.NewFormatter(w).FormatValidation(result); err != nil {
		return err
	}
	if !result.Valid {
		return errInvalid
	}
	return nil
}

func checkConfig(c config.Config, result *presentation.ValidationDTO) error {
	if err := config.Validate(c); err != nil {
		return err
	}
	feed := newFeed(c, nil, nil)
	if path := feed.Path(); path != "" {
		if _, err := telemetry.ReadSnapshot(path); err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
	}

	store, err := openHistory(c, nil)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	if store != nil {
		_ = store.Close()
	}

	m, err := app.New(app.Options{Config: c, ConfigPath: result.Config, Feed: feed})
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()

	leaves := presentation.FromShell(m.Shell())
	result.Start = string(m.Shell().Current())
	result.Leaves = presentation.CountLeaves(leaves)
	result.Panels = m.Shell().Registry().Len()
	return nil
}
