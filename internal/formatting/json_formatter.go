package formatting

import (
	"fmt"

	"github.com/giantswarm/uitest/internal/fixture"
	"github.com/giantswarm/uitest/internal/report"
)

// JSONFormatter provides structured JSON output formatting
type JSONFormatter struct {
	options Options
}

func (f *JSONFormatter) FormatTests(fixtures []fixture.Descriptor) error {
	_, err := fmt.Fprintln(f.options.Output, PrettyJSON(NewTestListing(fixtures)))
	return err
}

func (f *JSONFormatter) FormatResults(doc report.Document) error {
	_, err := fmt.Fprintln(f.options.Output, PrettyJSON(NewResults(doc)))
	return err
}
