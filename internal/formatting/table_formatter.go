package formatting

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/giantswarm/uitest/internal/fixture"
	"github.com/giantswarm/uitest/internal/report"
)

// TableFormatter provides rich table output formatting
type TableFormatter struct {
	options Options
}

// FormatTests renders one row per test.
func (f *TableFormatter) FormatTests(fixtures []fixture.Descriptor) error {
	listing := NewTestListing(fixtures)
	if listing.Count == 0 {
		return f.formatEmptyMessage("📋", "No tests found")
	}

	t := f.createTable()
	t.AppendHeader(table.Row{f.header("FIXTURE"), f.header("TEST")})
	for _, fx := range listing.Fixtures {
		for _, name := range fx.Tests {
			t.AppendRow(table.Row{fx.Name, name})
		}
		t.AppendSeparator()
	}
	t.Render()

	return f.formatTotal(listing.Count, "tests")
}

// FormatResults renders one row per executed test plus the pass rate.
func (f *TableFormatter) FormatResults(doc report.Document) error {
	res := NewResults(doc)
	if res.Total == 0 {
		return f.formatEmptyMessage("📋", "No UI tests executed")
	}

	t := f.createTable()
	t.AppendHeader(table.Row{f.header("TEST"), f.header("RESULT"), f.header("DURATION"), f.header("FAILURE")})
	for _, r := range res.Tests {
		result := f.colored(text.FgGreen, "OK")
		if !r.Passed {
			result = f.colored(text.FgRed, "FAILED")
		}
		t.AppendRow(table.Row{r.Name, result, r.Duration, r.Message})
	}
	t.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%.3f%% = %d/%d", res.PassRate, res.Total-res.Failed, res.Total)})
	t.Render()
	return nil
}

// createTable creates a new table with standard styling
func (f *TableFormatter) createTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(f.options.Output)
	t.SetStyle(table.StyleRounded)
	return t
}

func (f *TableFormatter) header(s string) string {
	return f.colored(text.FgHiCyan, s)
}

func (f *TableFormatter) colored(c text.Color, s string) string {
	if !f.options.Color {
		return s
	}
	return c.Sprint(s)
}

// formatEmptyMessage formats empty result messages
func (f *TableFormatter) formatEmptyMessage(icon, message string) error {
	_, err := fmt.Fprintf(f.options.Output, "%s %s\n", icon, f.colored(text.FgYellow, message))
	return err
}

func (f *TableFormatter) formatTotal(n int, noun string) error {
	_, err := fmt.Fprintf(f.options.Output, "\n%s %s %s\n",
		f.colored(text.FgHiBlue, "Total:"),
		f.colored(text.FgHiWhite, fmt.Sprint(n)),
		f.colored(text.FgHiBlue, noun))
	return err
}
