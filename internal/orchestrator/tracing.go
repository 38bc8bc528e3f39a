package orchestrator

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/giantswarm/uitest/internal/condition"
	"github.com/giantswarm/uitest/internal/report"
)

// TracingObserver records the run as OpenTelemetry spans: one for the run,
// one per fixture and one per test, with waits as span events.
type TracingObserver struct {
	NopObserver
	tracer trace.Tracer

	runCtx      context.Context
	runSpan     trace.Span
	fixtureCtx  context.Context
	fixtureSpan trace.Span
	testSpan    trace.Span
}

// NewTracingObserver creates an observer emitting spans through tracer.
func NewTracingObserver(tracer trace.Tracer) *TracingObserver {
	return &TracingObserver{tracer: tracer}
}

func (o *TracingObserver) RunStarted(fixtures int) {
	o.runCtx, o.runSpan = o.tracer.Start(context.Background(), "uitest.run",
		trace.WithAttributes(attribute.Int("uitest.fixtures", fixtures)))
}

func (o *TracingObserver) FixtureStarted(fixture string) {
	o.fixtureCtx, o.fixtureSpan = o.tracer.Start(o.parent(), "fixture "+fixture,
		trace.WithAttributes(attribute.String("uitest.fixture", fixture)))
}

func (o *TracingObserver) TestStarted(fixture, test string) {
	ctx := o.fixtureCtx
	if ctx == nil {
		ctx = o.parent()
	}
	_, o.testSpan = o.tracer.Start(ctx, test,
		trace.WithAttributes(
			attribute.String("uitest.fixture", fixture),
			attribute.String("uitest.test", test),
		))
}

func (o *TracingObserver) PhaseChanged(_ string, phase Phase) {
	if o.testSpan != nil {
		o.testSpan.AddEvent("phase", trace.WithAttributes(attribute.String("uitest.phase", phase.String())))
	}
}

func (o *TracingObserver) WaitFinished(_ string, c condition.Condition, waited time.Duration, err error) {
	if o.testSpan == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("uitest.condition", c.Describe()),
		attribute.Int64("uitest.waited_ms", waited.Milliseconds()),
	}
	if err != nil {
		attrs = append(attrs, attribute.String("uitest.error", err.Error()))
	}
	o.testSpan.AddEvent("wait", trace.WithAttributes(attrs...))
}

func (o *TracingObserver) TestFinished(r *report.TestReport) {
	if o.testSpan == nil {
		return
	}
	if r.Failed() {
		o.testSpan.SetStatus(codes.Error, report.FirstLine(r.Failure.Message))
	} else {
		o.testSpan.SetStatus(codes.Ok, "")
	}
	o.testSpan.End()
	o.testSpan = nil
}

func (o *TracingObserver) FixtureFinished(r *report.FixtureReport) {
	if o.fixtureSpan == nil {
		return
	}
	o.fixtureSpan.SetAttributes(
		attribute.Int("uitest.tests", len(r.Tests)),
		attribute.Int("uitest.failures", r.Failures()),
	)
	if r.Failures() > 0 {
		o.fixtureSpan.SetStatus(codes.Error, "test failures")
	}
	o.fixtureSpan.End()
	o.fixtureSpan, o.fixtureCtx = nil, nil
}

func (o *TracingObserver) RunFinished(s report.Summary) {
	if o.runSpan == nil {
		return
	}
	o.runSpan.SetAttributes(
		attribute.Int("uitest.total", s.Total),
		attribute.Int("uitest.failed", s.Failed),
		attribute.Float64("uitest.pass_rate", s.PassRate),
	)
	if s.Failed > 0 {
		o.runSpan.SetStatus(codes.Error, "test failures")
	}
	o.runSpan.End()
	o.runSpan = nil
}

func (o *TracingObserver) parent() context.Context {
	if o.runCtx != nil {
		return o.runCtx
	}
	return context.Background()
}
