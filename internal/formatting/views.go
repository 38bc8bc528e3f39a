package formatting

import (
	"github.com/giantswarm/uitest/internal/fixture"
	"github.com/giantswarm/uitest/internal/report"
	"github.com/giantswarm/uitest/pkg/strings"
)

// TestListing is the serializable form of a discovery result.
type TestListing struct {
	Fixtures []FixtureListing `json:"fixtures" yaml:"fixtures"`
	Count    int              `json:"count" yaml:"count"`
}

// FixtureListing lists the tests of one fixture.
type FixtureListing struct {
	Name  string   `json:"name" yaml:"name"`
	Tests []string `json:"tests" yaml:"tests"`
}

// NewTestListing converts discovered fixtures. Fixtures without matching
// tests are left out.
func NewTestListing(fixtures []fixture.Descriptor) TestListing {
	listing := TestListing{Fixtures: []FixtureListing{}}
	for _, fx := range fixtures {
		if len(fx.Tests) == 0 {
			continue
		}
		fl := FixtureListing{Name: fx.Name}
		for _, td := range fx.Tests {
			fl.Tests = append(fl.Tests, td.Name)
		}
		listing.Fixtures = append(listing.Fixtures, fl)
		listing.Count += len(fl.Tests)
	}
	return listing
}

// Results is the serializable form of a run.
type Results struct {
	RunID    string       `json:"runId" yaml:"runId"`
	Total    int          `json:"total" yaml:"total"`
	Failed   int          `json:"failed" yaml:"failed"`
	PassRate float64      `json:"passRate" yaml:"passRate"`
	Duration string       `json:"duration" yaml:"duration"`
	Tests    []TestResult `json:"tests" yaml:"tests"`
}

// TestResult is one row of Results.
type TestResult struct {
	Name     string `json:"name" yaml:"name"`
	Passed   bool   `json:"passed" yaml:"passed"`
	Duration string `json:"duration" yaml:"duration"`
	Message  string `json:"message,omitempty" yaml:"message,omitempty"`
}

// NewResults converts a report document.
func NewResults(doc report.Document) Results {
	res := Results{
		RunID:    doc.Summary.RunID,
		Total:    doc.Summary.Total,
		Failed:   doc.Summary.Failed,
		PassRate: doc.Summary.PassRate,
		Duration: report.FormatClock(doc.Summary.Duration),
		Tests:    []TestResult{},
	}
	for _, fr := range doc.Fixtures {
		for _, tr := range fr.Tests {
			row := TestResult{
				Name:     tr.Name,
				Passed:   !tr.Failed(),
				Duration: formatSeconds(tr.Duration.Seconds()),
			}
			if tr.Failed() {
				row.Message = strings.TruncateMessage(report.FirstLine(tr.Failure.Message))
			}
			res.Tests = append(res.Tests, row)
		}
	}
	return res
}
