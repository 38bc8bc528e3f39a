package formatting

import (
	"gopkg.in/yaml.v3"

	"github.com/giantswarm/uitest/internal/fixture"
	"github.com/giantswarm/uitest/internal/report"
)

// YAMLFormatter provides YAML output formatting
type YAMLFormatter struct {
	options Options
}

func (f *YAMLFormatter) FormatTests(fixtures []fixture.Descriptor) error {
	return f.encode(NewTestListing(fixtures))
}

func (f *YAMLFormatter) FormatResults(doc report.Document) error {
	return f.encode(NewResults(doc))
}

func (f *YAMLFormatter) encode(v interface{}) error {
	enc := yaml.NewEncoder(f.options.Output)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
