package app

import (
	"io"

	"github.com/giantswarm/uitest/internal/config"
	"github.com/giantswarm/uitest/internal/demo"
	"github.com/giantswarm/uitest/internal/fixture"
	"github.com/giantswarm/uitest/internal/registry"
)

// Config holds the application configuration
type Config struct {
	// Debug settings
	Debug   bool
	Verbose bool
	// Silent discards all log output. The run summary is still printed.
	Silent bool

	// Path to the YAML configuration file. Empty means config.DefaultConfigFile.
	ConfigPath string

	// Command line overrides, applied on top of the file values when set.
	Filter    string
	OutputDir string

	// Progress shows a spinner with the running test.
	Progress bool

	// Output receives the run summary and the progress spinner. Defaults to
	// os.Stdout.
	Output io.Writer

	// Suite is the set of fixtures to run. Defaults to DemoSuite().
	Suite *Suite

	// Loaded file configuration with overrides applied. Filled in by
	// NewApplication.
	UITestConfig *config.UITestConfig
}

// Suite is a set of fixtures and the host components they drive.
type Suite struct {
	Fixtures []fixture.Definition
	// Register binds the host components on a fresh registry and returns the
	// host's per-frame update, or nil when the host has none.
	Register func(reg *registry.Registry) (hostUpdate func(), err error)
}

// DemoSuite runs the example fixtures against the in-memory demo host.
func DemoSuite() *Suite {
	return &Suite{
		Fixtures: demo.Fixtures(),
		Register: func(reg *registry.Registry) (func(), error) {
			demo.Register(reg)
			host, err := registry.Get[*demo.Host](reg, demo.HostKey)
			if err != nil {
				return nil, err
			}
			return host.Update, nil
		},
	}
}

// NewConfig creates a new application configuration
func NewConfig(debug, verbose bool, configPath string) *Config {
	return &Config{
		Debug:      debug,
		Verbose:    verbose,
		ConfigPath: configPath,
	}
}

// applyOverrides copies the command line values over the file configuration.
func (c *Config) applyOverrides(fileCfg *config.UITestConfig) {
	if c.Filter != "" {
		fileCfg.Filter = c.Filter
	}
	if c.OutputDir != "" {
		fileCfg.OutputDir = c.OutputDir
	}
}

// Discover lists the suite's tests selected by filter without running them.
func (s *Suite) Discover(filter string) ([]fixture.Descriptor, error) {
	catalog := fixture.NewCatalog()
	if err := catalog.Register(s.Fixtures...); err != nil {
		return nil, err
	}
	return catalog.Discover(filter)
}
