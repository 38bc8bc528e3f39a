package demo

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/uitest/internal/clock"
	"github.com/giantswarm/uitest/internal/fixture"
	"github.com/giantswarm/uitest/internal/orchestrator"
	"github.com/giantswarm/uitest/internal/registry"
	"github.com/giantswarm/uitest/internal/report"
)

// runDemo runs defs against the demo host on a mock clock and returns the
// fixture reports by test name.
func runDemo(t *testing.T, defs ...fixture.Definition) (map[string]*report.TestReport, *report.Aggregator) {
	t.Helper()

	reg := registry.New()
	Register(reg)
	host, err := registry.Get[*Host](reg, HostKey)
	require.NoError(t, err)

	catalog := fixture.NewCatalog()
	require.NoError(t, catalog.Register(defs...))

	clk := clock.NewMock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	reports := report.NewAggregator(report.Options{Clock: clk})
	runner, err := orchestrator.New(orchestrator.Options{
		Catalog:    catalog,
		Registry:   reg,
		Reports:    reports,
		Clock:      clk,
		HostUpdate: host.Update,
		Output:     &bytes.Buffer{},
	})
	require.NoError(t, err)

	for i := 0; runner.Tick(); i++ {
		clk.Advance(16 * time.Millisecond)
		require.Less(t, i, 100000)
	}
	require.NoError(t, runner.Err())

	byName := make(map[string]*report.TestReport)
	for _, fr := range reports.Fixtures() {
		for _, r := range fr.Tests {
			byName[r.ShortName()] = r
		}
	}
	return byName, reports
}

func failureOf(r *report.TestReport) string {
	if r.Failure == nil {
		return ""
	}
	return r.Failure.Message
}

func TestExampleFixture(t *testing.T) {
	results, reports := runDemo(t, Fixtures()...)
	require.Len(t, results, 3)

	assert.False(t, results["SecondScreenCanBeOpenedFromTheFirstOne"].Failed(), failureOf(results["SecondScreenCanBeOpenedFromTheFirstOne"]))
	assert.False(t, results["SuccessfulNetworkResponseIsDisplayedOnTheFirstScreen"].Failed(), failureOf(results["SuccessfulNetworkResponseIsDisplayedOnTheFirstScreen"]))

	failing := results["FailingBoolCondition"]
	require.True(t, failing.Failed())
	assert.Equal(t, "Operation timed out: BoolCondition(first screen disabled) (timeout 2s)", failing.Failure.Message)
	assert.Contains(t, failing.Failure.StackTrace, "failingBoolCondition")

	s := reports.Summary()
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Failed)
}

// realNetworkFixture presses the request button without mocking the client.
type realNetworkFixture struct {
	host    *Host
	reached bool
}

func (f *realNetworkFixture) Dependencies() []registry.Dependency {
	return []registry.Dependency{registry.Field(HostKey, &f.host)}
}

func (f *realNetworkFixture) Tests() []fixture.Case {
	return []fixture.Case{{Name: "RequestFails", Run: func(t fixture.T) {
		LoadScene(t, f.host, TestableGameScene)
		Press(t, f.host, "Button-NetworkRequest")
		AssertLabel(t, f.host, "FirstScreen/Text-Response", "")
	}}}
}

func TestUnhandledNetworkErrorFailsTheTest(t *testing.T) {
	results, _ := runDemo(t, fixture.Definition{
		Name: "RealNetwork",
		New:  func() fixture.Fixture { return &realNetworkFixture{} },
	})

	r := results["RequestFails"]
	require.NotNil(t, r)
	require.True(t, r.Failed())
	assert.Equal(t, "Network request failed: Server unavailable", r.Failure.Message)
	assert.Contains(t, r.Log.String(), "Button pressed: Canvas/FirstScreen/Button-NetworkRequest")
}
