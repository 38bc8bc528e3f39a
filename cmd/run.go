package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/giantswarm/uitest/internal/app"
)

type runOptions struct {
	configPath string
	filter     string
	outputDir  string
	verbose    bool
	debug      bool
	silent     bool
	progress   bool
	watch      bool
}

// newRunCmd creates the command executing the UI test suite.
func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the UI tests",
		Long: `Runs every discovered UI test, or those whose full name (Fixture.Test)
contains the --filter value, and prints the run summary.

Per-test logs and one JUnit XML file per fixture are written to the output
directory. The command exits with status 1 when a test failed or no test ran.

Configuration:
  Settings are read from uitest.yaml in the current directory unless --config
  names another file. Command line flags override the file.

  With --watch the suite runs again every time the configuration file changes,
  until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Configuration file (default uitest.yaml)")
	cmd.Flags().StringVarP(&opts.filter, "filter", "f", "", "Only run tests whose full name contains this text (case-insensitive)")
	cmd.Flags().StringVarP(&opts.outputDir, "output", "o", "", "Directory receiving logs and XML reports")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log informational messages to stderr")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVarP(&opts.silent, "silent", "s", false, "Suppress all log output")
	cmd.Flags().BoolVar(&opts.progress, "progress", false, "Show a spinner with the running test")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Run again whenever the configuration file changes")
	cmd.MarkFlagsMutuallyExclusive("verbose", "silent")

	return cmd
}

func (o *runOptions) appConfig(cmd *cobra.Command) *app.Config {
	cfg := app.NewConfig(o.debug, o.verbose, o.configPath)
	cfg.Silent = o.silent
	cfg.Filter = o.filter
	cfg.OutputDir = o.outputDir
	cfg.Progress = o.progress
	cfg.Output = cmd.OutOrStdout()
	return cfg
}

func runRun(cmd *cobra.Command, opts *runOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := opts.appConfig(cmd)

	if opts.watch {
		return app.Watch(ctx, cfg, app.DefaultDebounceInterval, func(r app.RunResult) {
			reportWatchRun(cmd, r)
		})
	}

	application, err := app.NewApplication(cfg)
	if err != nil {
		return err
	}
	_, err = application.Run(ctx)
	return err
}

func reportWatchRun(cmd *cobra.Command, r app.RunResult) {
	out := cmd.ErrOrStderr()
	switch {
	case r.Err == nil:
		fmt.Fprintln(out, text.FgGreen.Sprintf("✓ %d/%d UI tests passed, waiting for changes", r.Summary.Passed, r.Summary.Total))
	case errors.Is(r.Err, app.ErrTestsFailed):
		fmt.Fprintln(out, text.FgRed.Sprintf("✗ %d/%d UI tests failed, waiting for changes", r.Summary.Failed, r.Summary.Total))
	case errors.Is(r.Err, context.Canceled):
	default:
		fmt.Fprintln(out, text.FgRed.Sprintf("✗ %v, waiting for changes", r.Err))
	}
}
