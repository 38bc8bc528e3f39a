package orchestrator

import (
	"fmt"
	"iter"
	"runtime/debug"
	"time"

	"github.com/giantswarm/uitest/internal/condition"
	"github.com/giantswarm/uitest/internal/fixture"
	"github.com/giantswarm/uitest/internal/registry"
	"github.com/giantswarm/uitest/pkg/logging"
)

type instructionKind int

const (
	instructionYield instructionKind = iota
	instructionWait
)

// instruction is what an operation hands back to the scheduler when it
// suspends.
type instruction struct {
	kind     instructionKind
	cond     condition.Condition
	timeout  time.Duration
	callSite string
}

// abortSignal unwinds an operation whose failure has already been recorded.
type abortSignal struct{}

// T is the fixture.T handed to the operations of one test.
type T struct {
	exec    *execution
	yield   func(instruction) bool
	resume  error
	aborted bool
}

var _ fixture.T = (*T)(nil)

// Name returns the full test name.
func (t *T) Name() string {
	return t.exec.report.Name
}

// Registry returns the run's component registry.
func (t *T) Registry() *registry.Registry {
	return t.exec.runner.registry
}

// Yield suspends for one scheduling tick.
func (t *T) Yield() {
	t.suspend(instruction{kind: instructionYield})
}

// WaitFor suspends until c holds, using the run's default timeout.
func (t *T) WaitFor(c condition.Condition) {
	t.wait(c, t.exec.runner.opts.WaitTimeout, logging.StackTrace(1))
}

// WaitForWithin suspends until c holds or timeout elapses.
func (t *T) WaitForWithin(c condition.Condition, timeout time.Duration) {
	t.wait(c, timeout, logging.StackTrace(1))
}

func (t *T) wait(c condition.Condition, timeout time.Duration, callSite string) {
	if c == nil {
		t.exec.fail("WaitFor called with a nil condition", callSite)
		panic(abortSignal{})
	}
	t.suspend(instruction{kind: instructionWait, cond: c, timeout: timeout, callSite: callSite})
}

func (t *T) suspend(ins instruction) {
	if t.yield == nil || !t.yield(ins) {
		panic(abortSignal{})
	}
	err := t.resume
	t.resume = nil
	if err != nil {
		panic(abortSignal{})
	}
}

func (t *T) Log(args ...any) {
	t.exec.emit(logging.LevelInfo, "", fmt.Sprint(args...))
}

func (t *T) Logf(format string, args ...any) {
	t.exec.emit(logging.LevelInfo, "", fmt.Sprintf(format, args...))
}

// Error records a failure and keeps running.
func (t *T) Error(args ...any) {
	t.exec.fail(fmt.Sprint(args...), logging.StackTrace(1))
}

// Errorf records a failure and keeps running.
func (t *T) Errorf(format string, args ...any) {
	t.exec.fail(fmt.Sprintf(format, args...), logging.StackTrace(1))
}

// Fatal records a failure and aborts the operation.
func (t *T) Fatal(args ...any) {
	t.exec.fail(fmt.Sprint(args...), logging.StackTrace(1))
	panic(abortSignal{})
}

// Fatalf records a failure and aborts the operation.
func (t *T) Fatalf(format string, args ...any) {
	t.exec.fail(fmt.Sprintf(format, args...), logging.StackTrace(1))
	panic(abortSignal{})
}

func (t *T) Fail() {
	t.exec.fail("test marked as failed", logging.StackTrace(1))
}

func (t *T) FailNow() {
	if !t.Failed() {
		t.exec.fail("test aborted by FailNow", logging.StackTrace(1))
	}
	panic(abortSignal{})
}

func (t *T) Failed() bool {
	return t.exec.runner.reports.Failed(t.exec.report)
}

// operation turns op into a coroutine body. Aborts and panics end the
// sequence early and mark the operation as aborted.
func (t *T) operation(op fixture.Func) iter.Seq[instruction] {
	return func(yield func(instruction) bool) {
		t.yield = yield
		t.resume = nil
		t.aborted = false
		defer func() {
			t.yield = nil
			if p := recover(); p != nil {
				t.aborted = true
				if _, ok := p.(abortSignal); ok {
					return
				}
				t.exec.failWith(&TestBodyError{Value: p, Stack: string(debug.Stack())})
			}
		}()
		op(t)
	}
}
