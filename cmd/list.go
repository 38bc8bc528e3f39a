package cmd

import (
	"github.com/spf13/cobra"

	"github.com/giantswarm/uitest/internal/app"
	"github.com/giantswarm/uitest/internal/formatting"
)

var (
	listOutputFormat string
	listFilter       string
)

// newListCmd creates the command listing the discovered tests.
func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the UI tests",
		Long: `Lists the discovered UI tests without running them.

Output formats:
  table    - Fixtures and tests in a table (default)
  console  - One full test name per line
  json     - JSON document
  yaml     - YAML document`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().StringVarP(&listOutputFormat, "output", "o", string(formatting.FormatTable), "Output format (table, console, json, yaml)")
	cmd.Flags().StringVarP(&listFilter, "filter", "f", "", "Only list tests whose full name contains this text (case-insensitive)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	format, err := formatting.ParseFormat(listOutputFormat)
	if err != nil {
		return err
	}

	fixtures, err := app.DemoSuite().Discover(listFilter)
	if err != nil {
		return err
	}

	formatter := formatting.NewFormatter(formatting.Options{
		Format: format,
		Color:  true,
		Output: cmd.OutOrStdout(),
	})
	return formatter.FormatTests(fixtures)
}
