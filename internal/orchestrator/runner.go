package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/giantswarm/uitest/internal/clock"
	"github.com/giantswarm/uitest/internal/condition"
	"github.com/giantswarm/uitest/internal/fixture"
	"github.com/giantswarm/uitest/internal/registry"
	"github.com/giantswarm/uitest/internal/report"
	"github.com/giantswarm/uitest/pkg/logging"
)

const (
	DefaultWaitTimeout  = 2 * time.Second
	DefaultPollTicks    = 10
	DefaultTickInterval = 16 * time.Millisecond
)

// Options configures a Runner.
type Options struct {
	Catalog  *fixture.Catalog
	Registry *registry.Registry
	Reports  *report.Aggregator
	// Logs is the diagnostic stream watched for asynchronous failures.
	// Defaults to logging.DefaultStream().
	Logs  *logging.Stream
	Clock clock.Clock

	Filter       string
	WaitTimeout  time.Duration
	PollTicks    int
	TickInterval time.Duration
	// HostNoise extends DefaultHostNoise.
	HostNoise []string

	// HostUpdate is called at the start of every tick, before any test code
	// resumes. It stands in for the host's own frame work.
	HostUpdate func()
	Observer   Observer
	// Output receives the run summary. Defaults to os.Stdout.
	Output io.Writer
}

// Status describes what the runner is doing.
type Status struct {
	Started  bool
	Finished bool
	Test     string
	Phase    Phase
}

// Runner executes every discovered test, one at a time, on a tick-driven
// cooperative scheduler. A Runner is single use and its Tick, Run and Cancel
// methods must be called from one goroutine.
type Runner struct {
	opts     Options
	registry *registry.Registry
	reports  *report.Aggregator
	logs     *logging.Stream
	clock    clock.Clock
	noise    NoiseFilter
	observer Observer

	fixtures []fixture.Descriptor
	next     func() (struct{}, bool)
	stop     func()

	started   bool
	entered   bool
	finished  bool
	cancelled bool
	rendered  bool
	err       error
	summary   string

	mu      sync.Mutex
	current *execution
}

// New validates opts and fills in defaults.
func New(opts Options) (*Runner, error) {
	if opts.Catalog == nil {
		return nil, errors.New("a fixture catalog is required")
	}
	if opts.Registry == nil {
		opts.Registry = registry.New()
	}
	opts.Clock = clock.OrReal(opts.Clock)
	if opts.Reports == nil {
		opts.Reports = report.NewAggregator(report.Options{Clock: opts.Clock})
	}
	if opts.Logs == nil {
		opts.Logs = logging.DefaultStream()
	}
	if opts.WaitTimeout <= 0 {
		opts.WaitTimeout = DefaultWaitTimeout
	}
	if opts.PollTicks <= 0 {
		opts.PollTicks = DefaultPollTicks
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	var observer Observer = NopObserver{}
	if opts.Observer != nil {
		observer = opts.Observer
	}

	return &Runner{
		opts:     opts,
		registry: opts.Registry,
		reports:  opts.Reports,
		logs:     opts.Logs,
		clock:    opts.Clock,
		noise:    NewNoiseFilter(opts.HostNoise...),
		observer: observer,
	}, nil
}

// Reports returns the aggregator the runner writes to.
func (r *Runner) Reports() *report.Aggregator {
	return r.reports
}

// Start discovers the tests and prepares the output directory. It is called
// by the first Tick when not called explicitly.
func (r *Runner) Start() error {
	if r.started {
		return nil
	}
	r.started = true

	fixtures, err := r.opts.Catalog.Discover(r.opts.Filter)
	if err != nil {
		r.err = fmt.Errorf("discovering fixtures: %w", err)
		r.finished = true
		return r.err
	}
	r.fixtures = fixtures

	if err := r.reports.Prepare(); err != nil {
		logging.Warn("Orchestrator", "Report directory unavailable, results go to the console only: %v", err)
	}

	r.next, r.stop = iter.Pull(r.loop)
	return nil
}

// Tick advances the run by one scheduling tick and returns whether there is
// more work. It never blocks on a condition.
func (r *Runner) Tick() bool {
	if !r.started {
		if err := r.Start(); err != nil {
			return false
		}
	}
	if r.finished {
		return false
	}

	if r.opts.HostUpdate != nil {
		r.opts.HostUpdate()
	}
	if _, ok := r.next(); !ok {
		r.finished = true
		r.stop()
	}
	return !r.finished
}

// Run drives Tick from a ticker until every test has run or ctx is done.
// When ctx ends first the in-flight test fails, the summary is still
// rendered and ctx.Err() is returned.
func (r *Runner) Run(ctx context.Context) (report.Summary, error) {
	if err := r.Start(); err != nil {
		return r.reports.Summary(), err
	}

	ticker := time.NewTicker(r.opts.TickInterval)
	defer ticker.Stop()

	for r.Tick() {
		select {
		case <-ctx.Done():
			r.Cancel()
			return r.reports.Summary(), ctx.Err()
		case <-ticker.C:
		}
	}
	return r.reports.Summary(), r.err
}

// Cancel stops the run. Teardown of the in-flight test still runs, but any
// wait or yield it reaches fails immediately.
func (r *Runner) Cancel() {
	if !r.started || r.finished {
		return
	}
	r.cancelled = true
	r.stop()
	r.finished = true
	if !r.entered {
		r.finishRun()
	}
}

// Err returns the error that aborted the run, if any.
func (r *Runner) Err() error {
	return r.err
}

// Finished reports whether the run is over.
func (r *Runner) Finished() bool {
	return r.finished
}

// Summary returns the rendered console summary once the run is over.
func (r *Runner) Summary() string {
	return r.summary
}

// Status reports progress. Unlike the other methods it is safe to call from
// any goroutine.
func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Status{Started: r.entered, Finished: r.rendered}
	if r.current != nil {
		s.Test = r.current.report.Name
		s.Phase = r.current.phase
	}
	return s
}

func (r *Runner) loop(yield func(struct{}) bool) {
	r.mu.Lock()
	r.entered = true
	r.mu.Unlock()
	defer r.finishRun()

	tick := func() bool {
		if r.cancelled {
			return false
		}
		if !yield(struct{}{}) {
			r.cancelled = true
			return false
		}
		return true
	}

	r.observer.RunStarted(len(r.fixtures))
	for _, fx := range r.fixtures {
		if r.cancelled {
			return
		}
		if len(fx.Tests) == 0 {
			continue
		}
		if err := r.runFixture(fx, tick); err != nil {
			r.err = err
			logging.Error("Orchestrator", err, "Aborting run")
			return
		}
	}
}

func (r *Runner) finishRun() {
	r.reports.Finish()
	r.summary = r.reports.RenderRunSummary()
	// Observers drawing on Output are done before the summary is printed.
	r.observer.RunFinished(r.reports.Summary())
	fmt.Fprint(r.opts.Output, r.summary)

	r.mu.Lock()
	r.rendered = true
	r.mu.Unlock()
}

func (r *Runner) runFixture(fx fixture.Descriptor, tick func() bool) error {
	r.reports.BeginFixture(fx.Name)
	r.observer.FixtureStarted(fx.Name)

	var err error
	for _, td := range fx.Tests {
		if r.cancelled {
			break
		}
		if err = r.runTest(fx, td, tick); err != nil {
			break
		}
	}

	// Write failures are recorded and logged by the aggregator.
	_ = r.reports.EndFixture(fx.Name)
	fr, ok := r.reports.Fixture(fx.Name)
	if !ok {
		fr = &report.FixtureReport{Name: fx.Name}
	}
	r.observer.FixtureFinished(fr)
	return err
}

func (r *Runner) runTest(fx fixture.Descriptor, td fixture.TestDescriptor, tick func() bool) error {
	instance := fx.Definition.New()
	if err := r.registry.Inject(instance); err != nil {
		return &FixtureError{Fixture: fx.Name, Err: err}
	}
	tc, err := fixture.Lookup(instance, td)
	if err != nil {
		return &FixtureError{Fixture: fx.Name, Err: err}
	}

	started := r.clock.Now()
	e := &execution{runner: r, report: r.reports.BeginTest(fx.Name, td.FullName())}
	e.t = &T{exec: e}
	r.setCurrent(e)
	defer r.setCurrent(nil)

	func() {
		unsubscribe := r.logs.Subscribe(e.onLog)
		defer unsubscribe()

		r.observer.TestStarted(fx.Name, td.FullName())
		e.emit(logging.LevelInfo, "", fmt.Sprintf("%s\nTEST STARTED: %s", report.Delimiter, td.FullName()))

		e.run(instance, tc, tick)

		verdict := "PASSED"
		if e.report.Failed() {
			verdict = "FAILED"
		}
		e.emit(logging.LevelInfo, "", fmt.Sprintf("TEST %s: %s (%.3fs)", verdict, td.FullName(), r.clock.Now().Sub(started).Seconds()))
	}()

	r.reports.EndTest(e.report, r.clock.Now().Sub(started))
	r.observer.TestFinished(e.report)
	return nil
}

func (r *Runner) setCurrent(e *execution) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = e
}

// execution is the state of the test being run.
type execution struct {
	runner *Runner
	report *report.TestReport
	t      *T
	phase  Phase
}

func (e *execution) setPhase(p Phase) {
	e.runner.mu.Lock()
	e.phase = p
	e.runner.mu.Unlock()
	e.runner.observer.PhaseChanged(e.report.Name, p)
}

func (e *execution) run(instance fixture.Fixture, tc fixture.Case, tick func() bool) {
	e.setPhase(PhaseSetup)
	if s, ok := instance.(fixture.SetUpper); ok {
		for _, op := range s.SetUp() {
			if !e.drive(op, tick) {
				break
			}
		}
	}

	e.setPhase(PhaseBody)
	e.drive(tc.Run, tick)

	e.setPhase(PhaseTeardown)
	if td, ok := instance.(fixture.TearDowner); ok {
		for _, op := range td.TearDown() {
			e.drive(op, tick)
		}
	}
	if c, ok := instance.(io.Closer); ok {
		if err := c.Close(); err != nil {
			e.fail(fmt.Sprintf("closing fixture: %v", err), "")
		}
	}

	e.setPhase(PhaseDone)
}

// drive runs one operation to completion, serving its instructions. It
// reports whether the operation finished without aborting.
func (e *execution) drive(op fixture.Func, tick func() bool) bool {
	if op == nil {
		return true
	}
	next, stop := iter.Pull(e.t.operation(op))
	defer stop()

	for {
		ins, ok := next()
		if !ok {
			return !e.t.aborted
		}
		switch ins.kind {
		case instructionYield:
			if !tick() {
				e.failWith(ErrRunCancelled)
				e.t.resume = ErrRunCancelled
			}
		case instructionWait:
			e.t.resume = e.await(ins, tick)
		}
	}
}

// await polls ins.cond every PollTicks ticks until it holds or its timeout
// elapses on the runner's clock.
func (e *execution) await(ins instruction, tick func() bool) error {
	r := e.runner
	started := r.clock.Now()
	r.observer.WaitStarted(e.report.Name, ins.cond)

	err := func() error {
		for {
			ok, err := satisfied(ins.cond)
			if err != nil {
				return err
			}
			if ok {
				return nil
			}
			if r.clock.Now().Sub(started) > ins.timeout {
				return &ConditionTimeoutError{
					Description: describe(ins.cond),
					Timeout:     ins.timeout,
					CallSite:    ins.callSite,
				}
			}
			for range r.opts.PollTicks {
				if !tick() {
					return ErrRunCancelled
				}
			}
		}
	}()

	r.observer.WaitFinished(e.report.Name, ins.cond, r.clock.Now().Sub(started), err)
	if err != nil {
		e.failWith(err)
	}
	return err
}

func satisfied(c condition.Condition) (ok bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &TestBodyError{Value: p, Stack: string(debug.Stack())}
		}
	}()
	return c.Satisfied(), nil
}

func describe(c condition.Condition) (desc string) {
	defer func() {
		if p := recover(); p != nil {
			desc = fmt.Sprintf("%T (Describe panicked: %v)", c, p)
		}
	}()
	return c.Describe()
}

func (e *execution) failWith(err error) {
	var (
		timeout *ConditionTimeoutError
		body    *TestBodyError
	)
	switch {
	case errors.As(err, &timeout):
		e.fail(timeout.Error(), timeout.CallSite)
	case errors.As(err, &body):
		e.fail(body.Error(), body.Stack)
	default:
		e.fail(err.Error(), "")
	}
}

// fail records a synchronous failure and mirrors it into the test log.
func (e *execution) fail(message, stackTrace string) {
	e.runner.reports.RecordFailure(e.report, message, stackTrace)
	e.emit(logging.LevelException, stackTrace, message)
}

func (e *execution) emit(level logging.LogLevel, stackTrace, message string) {
	e.runner.logs.Publish(logging.LogEntry{
		Timestamp:  e.runner.clock.Now(),
		Level:      level,
		Subsystem:  "Orchestrator",
		Message:    message,
		StackTrace: stackTrace,
	})
}

// onLog captures every diagnostic published while the test runs. Error-level
// entries that are not host noise fail the test; the first failure wins.
func (e *execution) onLog(entry logging.LogEntry) {
	e.report.Log.Write(entry)
	if entry.Level.IsFailure() && !e.runner.noise.Matches(entry.Text()) {
		e.runner.reports.RecordFailure(e.report, entry.Text(), entry.StackTrace)
	}
}
