package demo

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/uitest/internal/condition"
	"github.com/giantswarm/uitest/internal/fixture"
	"github.com/giantswarm/uitest/internal/registry"
)

// ExampleFixture exercises the demo game. FailingBoolCondition fails on
// purpose to show what a timeout looks like in the reports.
type ExampleFixture struct {
	host *Host
	mock *MockNetworkClient
}

func (f *ExampleFixture) Dependencies() []registry.Dependency {
	return []registry.Dependency{registry.Field(HostKey, &f.host)}
}

func (f *ExampleFixture) SetUp() []fixture.Func {
	return []fixture.Func{f.useMockNetwork}
}

func (f *ExampleFixture) TearDown() []fixture.Func {
	return []fixture.Func{f.unloadScene}
}

func (f *ExampleFixture) Tests() []fixture.Case {
	return []fixture.Case{
		{Name: "SecondScreenCanBeOpenedFromTheFirstOne", Run: f.secondScreenCanBeOpened},
		{Name: "SuccessfulNetworkResponseIsDisplayedOnTheFirstScreen", Run: f.successfulNetworkResponse},
		{Name: "FailingBoolCondition", Run: f.failingBoolCondition},
	}
}

// useMockNetwork swaps the backend client. Screens created afterwards get
// the mock injected.
func (f *ExampleFixture) useMockNetwork(t fixture.T) {
	f.mock = &MockNetworkClient{}
	require.NoError(t, t.Registry().Replace(NetworkClientKey, NetworkClient(f.mock)))
}

func (f *ExampleFixture) unloadScene(fixture.T) {
	f.host.Unload()
}

func (f *ExampleFixture) secondScreenCanBeOpened(t fixture.T) {
	LoadScene(t, f.host, TestableGameScene)
	t.WaitFor(KindAppeared(f.host, KindFirstScreen))

	Press(t, f.host, "Button-OpenSecondScreen")
	t.WaitFor(KindAppeared(f.host, KindSecondScreen))
	AssertLabel(t, f.host, "SecondScreen/Text", "Second screen")

	Press(t, f.host, "Button-Close")
	t.WaitFor(KindDisappeared(f.host, KindSecondScreen))
}

func (f *ExampleFixture) successfulNetworkResponse(t fixture.T) {
	LoadScene(t, f.host, TestableGameScene)
	t.WaitFor(KindAppeared(f.host, KindFirstScreen))

	f.mock.Response = "Success!"
	Press(t, f.host, "Button-NetworkRequest")

	AssertLabel(t, f.host, "FirstScreen/Text-Response", "Success!")
	assert.Equal(t, "i_need_data", f.mock.Request)
}

func (f *ExampleFixture) failingBoolCondition(t fixture.T) {
	LoadScene(t, f.host, TestableGameScene)
	t.WaitFor(ObjectAppeared(f.host, "FirstScreen"))

	screen, ok := f.host.FindKind(KindFirstScreen).Component.(*FirstScreen)
	require.True(t, ok, "FirstScreen component missing")

	// Nothing disables the screen, so this wait times out.
	t.WaitFor(condition.Func("first screen disabled", func() bool { return !screen.Enabled }))
}
