package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/giantswarm/uitest/internal/clock"
	"github.com/giantswarm/uitest/pkg/logging"
)

// Options configures an Aggregator.
type Options struct {
	// OutputDir receives per-test logs, per-fixture XML and report.json.
	// Empty keeps everything in memory.
	OutputDir string
	Clock     clock.Clock
	// Color enables coloured OK/FAILED markers in the console summary.
	Color bool
	// RunID identifies the run in report.json. Generated when empty.
	RunID string
}

// Aggregator collects one report per executed test, grouped by fixture, and
// renders them. Output written to disk is best effort: failures are logged
// and kept in WriteErrors, never returned to the scheduler as fatal.
type Aggregator struct {
	opts  Options
	clock clock.Clock

	mu           sync.RWMutex
	started      time.Time
	ended        time.Time
	fixtures     []*FixtureReport
	byName       map[string]*FixtureReport
	fixtureStart map[string]time.Time
	writeErrs    []error
}

// NewAggregator creates an aggregator. Nothing touches the disk until
// Prepare is called.
func NewAggregator(opts Options) *Aggregator {
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	c := clock.OrReal(opts.Clock)
	return &Aggregator{
		opts:         opts,
		clock:        c,
		started:      c.Now(),
		byName:       make(map[string]*FixtureReport),
		fixtureStart: make(map[string]time.Time),
	}
}

// RunID returns the identifier of this run.
func (a *Aggregator) RunID() string {
	return a.opts.RunID
}

// OutputDir returns the directory reports are written to.
func (a *Aggregator) OutputDir() string {
	return a.opts.OutputDir
}

// Prepare starts the run clock and recreates the output directory, purging
// whatever a previous run left there.
func (a *Aggregator) Prepare() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.started = a.clock.Now()
	if a.opts.OutputDir == "" {
		return nil
	}
	if err := os.RemoveAll(a.opts.OutputDir); err != nil {
		return a.recordWriteError(fmt.Errorf("failed to purge report directory: %w", err))
	}
	if err := os.MkdirAll(a.opts.OutputDir, 0755); err != nil {
		return a.recordWriteError(fmt.Errorf("failed to create report directory: %w", err))
	}
	return nil
}

// BeginFixture notes when a fixture started. Its report is only created once
// the first test begins.
func (a *Aggregator) BeginFixture(fixture string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fixtureStart[fixture] = a.clock.Now()
}

// BeginTest appends a report for fullName and opens its log sink.
func (a *Aggregator) BeginTest(fixture, fullName string) *TestReport {
	var path string
	if a.opts.OutputDir != "" {
		path = filepath.Join(a.opts.OutputDir, "TEST-"+fullName+".out")
	}
	sink := openLogSink(path)
	if err := sink.Err(); err != nil {
		logging.Warn("Report", "Test log for %s is kept in memory only: %v", fullName, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := sink.Err(); err != nil {
		a.recordWriteError(err)
	}

	now := a.clock.Now()
	fr, ok := a.byName[fixture]
	if !ok {
		started, known := a.fixtureStart[fixture]
		if !known {
			started = now
		}
		fr = &FixtureReport{Name: fixture, Started: started}
		a.byName[fixture] = fr
		a.fixtures = append(a.fixtures, fr)
	}

	r := &TestReport{Name: fullName, Fixture: fixture, Started: now, Log: sink}
	fr.Tests = append(fr.Tests, r)
	return r
}

// RecordFailure stores the failure on r unless one is already recorded.
// It reports whether this call recorded it.
func (a *Aggregator) RecordFailure(r *TestReport, message, stackTrace string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if r.Failure != nil {
		return false
	}
	r.Failure = &Failure{Message: message, StackTrace: stackTrace}
	return true
}

// Failed reports whether a failure was recorded for r. Safe to call while
// another goroutine records one.
func (a *Aggregator) Failed(r *TestReport) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return r.Failure != nil
}

// EndTest stores the duration and closes the test's log file.
func (a *Aggregator) EndTest(r *TestReport, d time.Duration) {
	a.mu.Lock()
	r.Duration = d
	a.mu.Unlock()

	if err := r.Log.Close(); err != nil && r.Log.Path() != "" {
		a.mu.Lock()
		a.recordWriteError(err)
		a.mu.Unlock()
	}
}

// EndFixture stamps the fixture's end time and writes TEST-<fixture>.xml.
// Fixtures without executed tests produce nothing.
func (a *Aggregator) EndFixture(fixture string) error {
	a.mu.Lock()
	fr, ok := a.byName[fixture]
	if ok {
		fr.Ended = a.clock.Now()
	}
	a.mu.Unlock()

	if !ok || len(fr.Tests) == 0 || a.opts.OutputDir == "" {
		return nil
	}

	path := filepath.Join(a.opts.OutputDir, "TEST-"+fixture+".xml")
	f, err := os.Create(path)
	if err != nil {
		return a.writeFailed(fmt.Errorf("failed to write fixture report %s: %w", path, err))
	}
	if err := a.RenderFixtureXML(f, fixture); err != nil {
		f.Close()
		return a.writeFailed(fmt.Errorf("failed to render fixture report %s: %w", path, err))
	}
	if err := f.Close(); err != nil {
		return a.writeFailed(fmt.Errorf("failed to write fixture report %s: %w", path, err))
	}
	return nil
}

// Finish stamps the end of the run.
func (a *Aggregator) Finish() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ended = a.clock.Now()
}

// Summary computes the run summary from the current fixture reports.
func (a *Aggregator) Summary() Summary {
	a.mu.RLock()
	defer a.mu.RUnlock()

	ended := a.ended
	if ended.IsZero() {
		ended = a.clock.Now()
	}
	s := Summary{
		RunID:    a.opts.RunID,
		Started:  a.started,
		Ended:    ended,
		Duration: ended.Sub(a.started),
	}
	for _, fr := range a.fixtures {
		s.Total += len(fr.Tests)
		s.Failed += fr.Failures()
	}
	s.Passed = s.Total - s.Failed
	if s.Total > 0 {
		s.PassRate = float64(s.Passed) / float64(s.Total) * 100
	}
	return s
}

// Fixtures returns the fixture reports in execution order.
func (a *Aggregator) Fixtures() []*FixtureReport {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.fixtures)
}

// Fixture returns the report of one fixture.
func (a *Aggregator) Fixture(name string) (*FixtureReport, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	fr, ok := a.byName[name]
	return fr, ok
}

// WriteErrors returns every output failure seen so far.
func (a *Aggregator) WriteErrors() []error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.writeErrs)
}

// WriteError joins WriteErrors into one error.
func (a *Aggregator) WriteError() error {
	return errors.Join(a.WriteErrors()...)
}

func (a *Aggregator) writeFailed(err error) error {
	logging.Warn("Report", "%v", err)

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.recordWriteError(err)
}

// recordWriteError expects a.mu to be held.
func (a *Aggregator) recordWriteError(err error) error {
	a.writeErrs = append(a.writeErrs, err)
	return err
}
