package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/flightdeck/internal/ui/styles"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the built-in theme presets",
	Long: `List the built-in theme presets. Set one with:

  theme:
    preset: amber

Individual colors can still be overridden under theme.colors.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return listThemes(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func listThemes(w io.Writer) error {
	for _, name := range styles.PresetNames() {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\ntokens: %s\n", strings.Join(tokenNames(), ", "))
	return err
}

func tokenNames() []string {
	tokens := styles.AllTokens()
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = string(t)
	}
	return out
}
