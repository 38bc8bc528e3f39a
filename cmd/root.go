package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/giantswarm/uitest/internal/config"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates every selected test passed.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a failed test, an aborted run or a general error.
	ExitCodeError = 1
	// ExitCodeConfigError indicates the configuration file could not be used.
	ExitCodeConfigError = 2
)

// rootCmd represents the base command for the uitest application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "uitest",
	Short: "Run UI tests against a frame-driven host",
	Long: `uitest discovers test fixtures, runs their tests one at a time on a
tick-driven scheduler and writes a console summary, per-test logs and
JUnit XML reports.

Tests wait for UI conditions without blocking the host's frames and fail on
timeouts, assertions and errors logged by the host while they run.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "uitest version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	var cfgErr *config.ConfigurationError
	if errors.As(err, &cfgErr) {
		return ExitCodeConfigError
	}

	// Failed tests, aborted runs and everything else
	return ExitCodeError
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newMCPServerCmd())
}
