// Package metrics exports run statistics in the Prometheus format.
//
// A Recorder is an orchestrator.Observer. It keeps its collectors in a
// private registry so several runs in one process (watch mode, the MCP
// server) never collide on the global one. Results are written as a
// node_exporter textfile after the run.
//
// Metrics, all namespaced with "uitest_":
//
//   - tests_total (counter): finished tests. Labels: fixture, result.
//   - test_duration_seconds (histogram): test duration. Labels: fixture.
//   - wait_duration_seconds (histogram): time spent in WaitFor.
//   - wait_timeouts_total (counter): waits that timed out.
//   - pass_rate (gauge): pass rate of the last finished run, in percent.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/giantswarm/uitest/internal/condition"
	"github.com/giantswarm/uitest/internal/orchestrator"
	"github.com/giantswarm/uitest/internal/report"
)

const namespace = "uitest"

// Recorder turns runner events into Prometheus metrics.
type Recorder struct {
	orchestrator.NopObserver

	registry *prometheus.Registry

	tests        *prometheus.CounterVec
	testDuration *prometheus.HistogramVec
	waitDuration prometheus.Histogram
	waitTimeouts prometheus.Counter
	passRate     prometheus.Gauge
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		tests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tests_total",
			Help:      "Finished UI tests by fixture and result",
		}, []string{"fixture", "result"}),
		testDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "test_duration_seconds",
			Help:      "UI test duration from setup to teardown",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"fixture"}),
		waitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "wait_duration_seconds",
			Help:      "Time spent waiting for conditions",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}),
		waitTimeouts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wait_timeouts_total",
			Help:      "Condition waits that ran out of time",
		}),
		passRate: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pass_rate",
			Help:      "Pass rate of the last finished run in percent",
		}),
	}
}

// Registry exposes the recorder's registry, e.g. for promhttp.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) WaitFinished(_ string, _ condition.Condition, waited time.Duration, err error) {
	r.waitDuration.Observe(waited.Seconds())
	var timeout *orchestrator.ConditionTimeoutError
	if errors.As(err, &timeout) {
		r.waitTimeouts.Inc()
	}
}

func (r *Recorder) TestFinished(t *report.TestReport) {
	result := "passed"
	if t.Failed() {
		result = "failed"
	}
	r.tests.WithLabelValues(t.Fixture, result).Inc()
	r.testDuration.WithLabelValues(t.Fixture).Observe(t.Duration.Seconds())
}

func (r *Recorder) RunFinished(s report.Summary) {
	r.passRate.Set(s.PassRate)
}

// WriteTextfile writes every metric to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
