package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"gopkg.in/yaml.v3"

	"github.com/giantswarm/uitest/pkg/logging"
)

// DefaultConfigFile is looked up in the working directory.
const DefaultConfigFile = "uitest.yaml"

// LoadConfig loads configuration from path. A missing file yields the
// defaults; a malformed or invalid one yields a ConfigurationError.
func LoadConfig(path string) (UITestConfig, error) {
	config := GetDefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("ConfigLoader", "No config found at %s, using defaults", path)
			return config, config.Validate()
		}
		return UITestConfig{}, NewConfigurationError(path, "io", "could not read file", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		cerr := NewConfigurationError(path, "parse", "malformed YAML", err)
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			cerr.Suggestions = append(cerr.Suggestions, `durations are written like "2s" or "16ms"`)
		}
		return UITestConfig{}, cerr
	}

	if err := config.Validate(); err != nil {
		var cerr *ConfigurationError
		if errors.As(err, &cerr) {
			cerr.FilePath = path
			cerr.FileName = filepath.Base(path)
		}
		return UITestConfig{}, err
	}

	logging.Info("ConfigLoader", "Loaded configuration from %s", path)
	return config, nil
}

// RenderOutputDir expands the OutputDir template, e.g.
// "reports/{{ env \"CI_JOB_ID\" | default \"local\" }}".
func (c UITestConfig) RenderOutputDir() (string, error) {
	tmpl, err := template.New("outputDir").Funcs(sprig.TxtFuncMap()).Option("missingkey=error").Parse(c.OutputDir)
	if err != nil {
		return "", fmt.Errorf("parsing outputDir template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, nil); err != nil {
		return "", fmt.Errorf("rendering outputDir template: %w", err)
	}
	return buf.String(), nil
}
