package orchestrator

import (
	"errors"
	"fmt"
	"time"
)

// ErrRunCancelled is the failure recorded for a test that was in flight when
// the host stopped the run.
var ErrRunCancelled = errors.New("run cancelled before the test completed")

// ConditionTimeoutError is recorded when a wait exceeds its timeout.
type ConditionTimeoutError struct {
	// Description is the condition's Describe output when the timeout fired.
	Description string
	Timeout     time.Duration
	// CallSite is the stack of the code that started the wait.
	CallSite string
}

func (e *ConditionTimeoutError) Error() string {
	return fmt.Sprintf("Operation timed out: %s (timeout %s)", e.Description, e.Timeout)
}

// TestBodyError wraps a panic raised by a setup, test or teardown operation,
// or by a condition being polled.
type TestBodyError struct {
	Value any
	Stack string
}

func (e *TestBodyError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *TestBodyError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// FixtureError aborts the whole run: the fixture could not be prepared, which
// points at a broken test environment rather than a failing test.
type FixtureError struct {
	Fixture string
	Err     error
}

func (e *FixtureError) Error() string {
	return fmt.Sprintf("preparing fixture %s: %v", e.Fixture, e.Err)
}

func (e *FixtureError) Unwrap() error {
	return e.Err
}
