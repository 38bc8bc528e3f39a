package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/uitest/internal/condition"
	"github.com/giantswarm/uitest/internal/orchestrator"
	"github.com/giantswarm/uitest/internal/report"
)

var _ orchestrator.Observer = (*Recorder)(nil)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	ready := condition.Func("ready", nil)

	r.WaitFinished("F.A", ready, 200*time.Millisecond, nil)
	r.WaitFinished("F.B", ready, 3*time.Second, &orchestrator.ConditionTimeoutError{Description: "ready", Timeout: 2 * time.Second})
	r.WaitFinished("F.B", ready, time.Second, errors.New("cancelled"))

	r.TestFinished(&report.TestReport{Name: "F.A", Fixture: "F", Duration: time.Second})
	r.TestFinished(&report.TestReport{Name: "F.B", Fixture: "F", Duration: 3 * time.Second, Failure: &report.Failure{Message: "timeout"}})
	r.RunFinished(report.Summary{Total: 2, Passed: 1, Failed: 1, PassRate: 50})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.tests.WithLabelValues("F", "passed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.tests.WithLabelValues("F", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.waitTimeouts))
	assert.Equal(t, 50.0, testutil.ToFloat64(r.passRate))
	assert.Equal(t, 1, testutil.CollectAndCount(r.testDuration))

	expected := `
# HELP uitest_wait_timeouts_total Condition waits that ran out of time
# TYPE uitest_wait_timeouts_total counter
uitest_wait_timeouts_total 1
`
	require.NoError(t, testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected), "uitest_wait_timeouts_total"))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.TestFinished(&report.TestReport{Name: "F.A", Fixture: "F", Duration: time.Second})

	path := filepath.Join(t.TempDir(), "uitest.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `uitest_tests_total{fixture="F",result="passed"} 1`)
}

func TestRecorder_IsolatedRegistries(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	a.RunFinished(report.Summary{PassRate: 100})

	assert.Equal(t, 100.0, testutil.ToFloat64(a.passRate))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.passRate))
}
