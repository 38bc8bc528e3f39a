package formatting

import (
	"fmt"

	"github.com/giantswarm/uitest/internal/fixture"
	"github.com/giantswarm/uitest/internal/report"
)

// ConsoleFormatter prints plain lines, suitable for piping into other tools.
type ConsoleFormatter struct {
	options Options
}

// FormatTests prints one full test name per line.
func (f *ConsoleFormatter) FormatTests(fixtures []fixture.Descriptor) error {
	for _, fx := range fixtures {
		for _, td := range fx.Tests {
			if _, err := fmt.Fprintln(f.options.Output, td.FullName()); err != nil {
				return err
			}
		}
	}
	return nil
}

// FormatResults prints "PASS name" or "FAIL name: message" per test.
func (f *ConsoleFormatter) FormatResults(doc report.Document) error {
	res := NewResults(doc)
	for _, t := range res.Tests {
		line := "PASS " + t.Name
		if !t.Passed {
			line = "FAIL " + t.Name + ": " + t.Message
		}
		if _, err := fmt.Fprintln(f.options.Output, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(f.options.Output, "%d/%d passed\n", res.Total-res.Failed, res.Total)
	return err
}
