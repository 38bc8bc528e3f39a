package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Helper function to create a temporary config file
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	loaded, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), loaded)
}

func TestLoadConfig_Override(t *testing.T) {
	path := createTempConfigFile(t, `
filter: Screens
waitTimeout: 5s
tickInterval: 10ms
hostNoise:
  - Shader warmup
jsonReport: true
metricsFile: out/uitest.prom
color: true
`)

	loaded, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Screens", loaded.Filter)
	assert.Equal(t, 5*time.Second, loaded.WaitTimeout)
	assert.Equal(t, 10*time.Millisecond, loaded.TickInterval)
	assert.Equal(t, DefaultPollTicks, loaded.PollTicks)
	assert.Equal(t, DefaultOutputDir, loaded.OutputDir)
	assert.Equal(t, []string{"Shader warmup"}, loaded.HostNoise)
	assert.True(t, loaded.JSONReport)
	assert.True(t, loaded.Color)
	assert.Equal(t, "out/uitest.prom", loaded.MetricsFile)
}

func TestLoadConfig_RoundTrip(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Filter = "Example"
	data, err := yaml.Marshal(&cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "waitTimeout: 2s")

	loaded, err := LoadConfig(createTempConfigFile(t, string(data)))
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errorType string
		contains  string
	}{
		{
			name:      "malformed yaml",
			content:   "filter: [unterminated",
			errorType: "parse",
		},
		{
			name:      "wrong type",
			content:   "pollTicks: many",
			errorType: "parse",
		},
		{
			name:      "invalid values",
			content:   "pollTicks: -1\nwaitTimeout: 0s",
			errorType: "validation",
			contains:  "field 'waitTimeout': must be positive; field 'pollTicks': must be at least 1",
		},
		{
			name:      "bad template",
			content:   "outputDir: '{{ .Missing'",
			errorType: "validation",
			contains:  "outputDir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := createTempConfigFile(t, tt.content)
			_, err := LoadConfig(path)
			require.Error(t, err)

			var cerr *ConfigurationError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.errorType, cerr.ErrorType)
			assert.Equal(t, path, cerr.FilePath)
			assert.Equal(t, DefaultConfigFile, cerr.FileName)
			assert.Contains(t, cerr.Error(), tt.contains)
			assert.Contains(t, cerr.DetailedError(), "File: "+path)
		})
	}
}

func TestLoadConfig_Unreadable(t *testing.T) {
	_, err := LoadConfig(t.TempDir())

	var cerr *ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "io", cerr.ErrorType)
}

func TestRenderOutputDir(t *testing.T) {
	t.Setenv("UITEST_JOB", "1234")

	tests := []struct {
		template string
		expected string
	}{
		{"test-report", "test-report"},
		{`reports/{{ env "UITEST_JOB" }}`, "reports/1234"},
		{`reports/{{ env "UITEST_UNSET_VARIABLE" | default "local" }}`, "reports/local"},
		{`{{ "Reports" | lower }}`, "reports"},
	}

	for _, tt := range tests {
		cfg := UITestConfig{OutputDir: tt.template}
		got, err := cfg.RenderOutputDir()
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got)
	}
}

func TestValidate(t *testing.T) {
	cfg := GetDefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.HostNoise = []string{"ok", "  "}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hostNoise[1]")

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 1)
}
