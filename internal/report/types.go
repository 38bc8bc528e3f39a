package report

import (
	"strings"
	"time"
)

// Failure is the first failure recorded for a test.
type Failure struct {
	Message    string `json:"message"`
	StackTrace string `json:"stackTrace,omitempty"`
}

// TestReport is the result record of one executed test.
type TestReport struct {
	// Name is the full test name, "Fixture.Test".
	Name     string        `json:"name"`
	Fixture  string        `json:"fixture"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
	Failure  *Failure      `json:"failure,omitempty"`
	Log      *LogSink      `json:"-"`
}

// Failed reports whether a failure was ever recorded for the test.
func (r *TestReport) Failed() bool {
	return r.Failure != nil
}

// ShortName returns the test name without its fixture prefix.
func (r *TestReport) ShortName() string {
	return strings.TrimPrefix(r.Name, r.Fixture+".")
}

// FixtureReport holds the reports of one fixture in execution order.
type FixtureReport struct {
	Name    string        `json:"name"`
	Started time.Time     `json:"started"`
	Ended   time.Time     `json:"ended"`
	Tests   []*TestReport `json:"tests"`
}

// Failures counts the failed tests of the fixture.
func (f *FixtureReport) Failures() int {
	n := 0
	for _, t := range f.Tests {
		if t.Failed() {
			n++
		}
	}
	return n
}

// Duration is the wall time between the fixture's start and end.
func (f *FixtureReport) Duration() time.Duration {
	if f.Ended.IsZero() {
		return 0
	}
	return f.Ended.Sub(f.Started)
}

// Summary is derived from the fixture reports each time it is requested.
type Summary struct {
	RunID    string        `json:"runId"`
	Started  time.Time     `json:"started"`
	Ended    time.Time     `json:"ended"`
	Duration time.Duration `json:"duration"`
	Total    int           `json:"total"`
	Failed   int           `json:"failed"`
	Passed   int           `json:"passed"`
	// PassRate is the percentage of passed tests. Zero when Total is zero.
	PassRate float64 `json:"passRate"`
}

// AllPassed reports whether at least one test ran and none failed.
func (s Summary) AllPassed() bool {
	return s.Total > 0 && s.Failed == 0
}
