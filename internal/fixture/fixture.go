// Package fixture declares test fixtures and discovers the tests they carry.
//
// A fixture is a plain struct whose Tests method lists its test cases.
// Optional SetUp and TearDown methods return the operations run around every
// test, and a Dependencies method (registry.Injectable) names the components
// injected into each fresh instance before the test starts.
package fixture

import (
	"time"

	"github.com/giantswarm/uitest/internal/condition"
	"github.com/giantswarm/uitest/internal/registry"
)

// T is the handle a test operation uses to talk to the orchestrator. Every
// method must be called from the goroutine running the operation.
type T interface {
	// Name returns the full test name, "Fixture.Test".
	Name() string
	// Registry returns the component registry of the run.
	Registry() *registry.Registry

	// Yield suspends the operation for exactly one scheduling tick.
	Yield()
	// WaitFor suspends until c is satisfied, failing the test and aborting
	// the operation when the default timeout elapses first.
	WaitFor(c condition.Condition)
	// WaitForWithin is WaitFor with an explicit timeout.
	WaitForWithin(c condition.Condition, timeout time.Duration)

	Log(args ...any)
	Logf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	// Fail marks the test failed and keeps running.
	Fail()
	// FailNow marks the test failed and aborts the current operation.
	FailNow()
	Failed() bool
}

// Func is a single setup, test or teardown operation.
type Func func(t T)

// Case is one test of a fixture.
type Case struct {
	Name string
	Run  Func
}

// Fixture is implemented by every test fixture.
type Fixture interface {
	Tests() []Case
}

// SetUpper is implemented by fixtures with setup operations. They run in
// order before every test, and the first failing one skips the rest.
type SetUpper interface {
	SetUp() []Func
}

// TearDowner is implemented by fixtures with teardown operations. They run in
// order after every test, each one even when an earlier one failed.
type TearDowner interface {
	TearDown() []Func
}

// Definition registers a fixture type. New must return a fresh instance on
// every call; an empty Name defaults to the instance's type name.
type Definition struct {
	Name string
	New  func() Fixture
}
