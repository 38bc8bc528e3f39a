package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/giantswarm/uitest/internal/app"
	"github.com/giantswarm/uitest/internal/mcpserver"
)

var (
	mcpServerConfigPath string
	mcpServerDebug      bool
)

// newMCPServerCmd creates the command serving the suite over MCP.
func newMCPServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp-server",
		Short: "Serve the UI tests as MCP tools over stdio",
		Long: `Starts a Model Context Protocol server on stdin/stdout so AI assistants
can list the UI tests, run them and read the results.

Tools:
  list_tests   - discovered tests, optionally filtered
  run_tests    - run the selected tests and return the results
  get_results  - results of the most recent run

Logs go to stderr; stdout carries the protocol.`,
		Args: cobra.NoArgs,
		RunE: runMCPServer,
	}

	cmd.Flags().StringVarP(&mcpServerConfigPath, "config", "c", "", "Configuration file (default uitest.yaml)")
	cmd.Flags().BoolVar(&mcpServerDebug, "debug", false, "Enable debug logging")

	return cmd
}

func runMCPServer(cmd *cobra.Command, args []string) error {
	cfg := app.NewConfig(mcpServerDebug, false, mcpServerConfigPath)

	// Fail early on a broken configuration; every run reloads it.
	if _, err := app.NewApplication(cfg); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return mcpserver.New(*cfg, GetVersion()).Start(ctx)
}
