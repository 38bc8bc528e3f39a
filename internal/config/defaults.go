package config

import "time"

const (
	// DefaultOutputDir is relative to the working directory.
	DefaultOutputDir = "test-report"

	DefaultWaitTimeout  = 2 * time.Second
	DefaultPollTicks    = 10
	DefaultTickInterval = 16 * time.Millisecond
)

// GetDefaultConfig returns the default configuration for uitest.
func GetDefaultConfig() UITestConfig {
	return UITestConfig{
		OutputDir:    DefaultOutputDir,
		WaitTimeout:  DefaultWaitTimeout,
		PollTicks:    DefaultPollTicks,
		TickInterval: DefaultTickInterval,
	}
}
