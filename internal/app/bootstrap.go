package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/giantswarm/uitest/internal/config"
	"github.com/giantswarm/uitest/internal/report"
	"github.com/giantswarm/uitest/pkg/logging"
)

// ErrTestsFailed is returned by Run when at least one test failed or no test
// was executed.
var ErrTestsFailed = errors.New("ui tests failed")

// Application loads the configuration once and executes runs against it.
//
// Example usage:
//
//	cfg := app.NewConfig(false, false, "uitest.yaml")
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("failed to create application: %w", err)
//	}
//	summary, err := application.Run(ctx)
type Application struct {
	config *Config

	mu   sync.Mutex
	last *report.Aggregator
}

// NewApplication configures logging, loads the configuration file, applies
// the command line overrides and validates the result.
func NewApplication(cfg *Config) (*Application, error) {
	// Test logs go to the per-test log files; the console only gets warnings
	// unless asked for more.
	appLogLevel := logging.LevelWarn
	if cfg.Verbose {
		appLogLevel = logging.LevelInfo
	}
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}

	var logOutput io.Writer = os.Stderr
	if cfg.Silent {
		logOutput = io.Discard
	}
	logging.InitForCLI(appLogLevel, logOutput)

	if err := cfg.load(); err != nil {
		return nil, err
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Suite == nil {
		cfg.Suite = DemoSuite()
	}

	return &Application{config: cfg}, nil
}

func (c *Config) load() error {
	path := c.ConfigPath
	if path == "" {
		path = config.DefaultConfigFile
	}

	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load configuration from %s", path)
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	c.applyOverrides(&fileCfg)
	if err := fileCfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	c.UITestConfig = &fileCfg
	return nil
}

// Config returns the effective configuration.
func (a *Application) Config() *Config {
	return a.config
}

// LastReport returns the results of the most recent run, false before the
// first one.
func (a *Application) LastReport() (report.Document, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.last == nil {
		return report.Document{}, false
	}
	return a.last.Document(), true
}

// Run executes every selected test once and writes the configured outputs.
// Each call builds fresh services, so an Application can run repeatedly.
//
// The summary is returned together with ErrTestsFailed when a test failed,
// or with the error that aborted the run. A cancelled ctx cancels the run.
func (a *Application) Run(ctx context.Context) (report.Summary, error) {
	services, err := InitializeServices(ctx, a.config)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return report.Summary{}, fmt.Errorf("failed to initialize services: %w", err)
	}

	summary, runErr := services.Runner.Run(ctx)
	closeErr := services.Close(context.WithoutCancel(ctx))

	a.mu.Lock()
	a.last = services.Reports
	a.mu.Unlock()

	if runErr != nil {
		return summary, runErr
	}
	if closeErr != nil {
		logging.Warn("Bootstrap", "Some outputs could not be written: %v", closeErr)
	}
	if !summary.AllPassed() {
		return summary, ErrTestsFailed
	}
	return summary, nil
}
