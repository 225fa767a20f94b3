package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/goodreads/filter"
)

// filtersCmd represents the filters command
var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "List the filter presets defined in the config",
	Long: `List the named filter presets from the filter section of the config file.
A preset can be passed to --filter by name, or as @name to skip expression parsing.`,
	Args:    cobra.NoArgs,
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		printFilters(cmd.OutOrStdout(), filters)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(filtersCmd)
}

func printFilters(out io.Writer, m *filter.Manager) {
	names := m.ListFilters()
	if len(names) == 0 {
		fmt.Fprintln(out, "No filter presets configured.")
		return
	}

	for _, name := range names {
		f, _ := m.GetFilter(name)
		fmt.Fprintf(out, "• %s: %s\n", name, f.Expression())
	}
}
