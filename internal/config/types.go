package config

import "time"

// UITestConfig is the top-level configuration structure for uitest.
type UITestConfig struct {
	// Filter selects tests by case-insensitive substring of "Fixture.Test".
	Filter string `yaml:"filter,omitempty"`
	// OutputDir is where per-test logs and XML reports are written. It is a
	// text/template rendered with the sprig function map.
	OutputDir string `yaml:"outputDir,omitempty"`

	WaitTimeout  time.Duration `yaml:"waitTimeout,omitempty"`
	PollTicks    int           `yaml:"pollTicks,omitempty"`
	TickInterval time.Duration `yaml:"tickInterval,omitempty"`

	// HostNoise lists extra message prefixes that never fail a test.
	HostNoise []string `yaml:"hostNoise,omitempty"`

	JSONReport  bool   `yaml:"jsonReport,omitempty"`
	MetricsFile string `yaml:"metricsFile,omitempty"`
	TraceFile   string `yaml:"traceFile,omitempty"`
	Color       bool   `yaml:"color,omitempty"`
}
