// Package formatting renders test listings and run results for the CLI and
// the MCP server in several output formats (console, JSON, YAML, table).
package formatting

import (
	"fmt"
	"io"
	"os"

	"github.com/giantswarm/uitest/internal/fixture"
	"github.com/giantswarm/uitest/internal/report"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatConsole OutputFormat = "console" // One name per line
	FormatJSON    OutputFormat = "json"    // JSON output
	FormatYAML    OutputFormat = "yaml"    // YAML output
	FormatTable   OutputFormat = "table"   // Rich table output
)

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case FormatConsole, FormatJSON, FormatYAML, FormatTable:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (use console, json, yaml or table)", s)
}

// Options configures the formatter behavior
type Options struct {
	Format OutputFormat
	Color  bool // Enable colored output
	// Output defaults to os.Stdout.
	Output io.Writer
}

// Formatter renders uitest data.
type Formatter interface {
	FormatTests(fixtures []fixture.Descriptor) error
	FormatResults(doc report.Document) error
}

// NewFormatter creates the formatter for options.Format.
func NewFormatter(options Options) Formatter {
	if options.Output == nil {
		options.Output = os.Stdout
	}
	switch options.Format {
	case FormatJSON:
		return &JSONFormatter{options: options}
	case FormatYAML:
		return &YAMLFormatter{options: options}
	case FormatTable:
		return &TableFormatter{options: options}
	case FormatConsole:
		fallthrough
	default:
		return &ConsoleFormatter{options: options}
	}
}
