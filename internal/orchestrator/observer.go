package orchestrator

import (
	"time"

	"github.com/giantswarm/uitest/internal/condition"
	"github.com/giantswarm/uitest/internal/report"
)

// Phase is the lifecycle position of the test being executed.
type Phase int

const (
	PhasePending Phase = iota
	PhaseSetup
	PhaseBody
	PhaseTeardown
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseSetup:
		return "setup"
	case PhaseBody:
		return "body"
	case PhaseTeardown:
		return "teardown"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Observer receives progress events. Calls are made from the scheduler, one
// at a time, and must not block.
type Observer interface {
	RunStarted(fixtures int)
	FixtureStarted(fixture string)
	TestStarted(fixture, test string)
	PhaseChanged(test string, phase Phase)
	WaitStarted(test string, c condition.Condition)
	WaitFinished(test string, c condition.Condition, waited time.Duration, err error)
	TestFinished(r *report.TestReport)
	FixtureFinished(r *report.FixtureReport)
	RunFinished(s report.Summary)
}

// NopObserver ignores every event. Embed it to implement a subset.
type NopObserver struct{}

func (NopObserver) RunStarted(int)                                                {}
func (NopObserver) FixtureStarted(string)                                         {}
func (NopObserver) TestStarted(string, string)                                    {}
func (NopObserver) PhaseChanged(string, Phase)                                    {}
func (NopObserver) WaitStarted(string, condition.Condition)                       {}
func (NopObserver) WaitFinished(string, condition.Condition, time.Duration, error) {}
func (NopObserver) TestFinished(*report.TestReport)                               {}
func (NopObserver) FixtureFinished(*report.FixtureReport)                         {}
func (NopObserver) RunFinished(report.Summary)                                    {}

// Observers fans events out to several observers in order.
type Observers []Observer

func (obs Observers) RunStarted(n int) {
	for _, o := range obs {
		o.RunStarted(n)
	}
}

func (obs Observers) FixtureStarted(fixture string) {
	for _, o := range obs {
		o.FixtureStarted(fixture)
	}
}

func (obs Observers) TestStarted(fixture, test string) {
	for _, o := range obs {
		o.TestStarted(fixture, test)
	}
}

func (obs Observers) PhaseChanged(test string, phase Phase) {
	for _, o := range obs {
		o.PhaseChanged(test, phase)
	}
}

func (obs Observers) WaitStarted(test string, c condition.Condition) {
	for _, o := range obs {
		o.WaitStarted(test, c)
	}
}

func (obs Observers) WaitFinished(test string, c condition.Condition, waited time.Duration, err error) {
	for _, o := range obs {
		o.WaitFinished(test, c, waited, err)
	}
}

func (obs Observers) TestFinished(r *report.TestReport) {
	for _, o := range obs {
		o.TestFinished(r)
	}
}

func (obs Observers) FixtureFinished(r *report.FixtureReport) {
	for _, o := range obs {
		o.FixtureFinished(r)
	}
}

func (obs Observers) RunFinished(s report.Summary) {
	for _, o := range obs {
		o.RunFinished(s)
	}
}
