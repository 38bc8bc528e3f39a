package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/giantswarm/uitest/internal/registry"
)

func hostWith(t *testing.T, roots ...*Object) *Host {
	t.Helper()
	h := NewHost(registry.New(), 1)
	h.RegisterScene("Test", func(*Host) (*Scene, error) {
		s := NewScene("Test")
		s.Add(roots...)
		return s, nil
	})
	if err := h.LoadScene("Test"); err != nil {
		t.Fatal(err)
	}
	h.Update()
	return h
}

func TestObjectConditions(t *testing.T) {
	screen := NewObject("SecondScreen", KindSecondScreen)
	h := hostWith(t, screen)

	appeared := ObjectAppeared(h, "SecondScreen")
	disappeared := ObjectDisappeared(h, "SecondScreen")
	kindAppeared := KindAppeared(h, KindSecondScreen)
	kindDisappeared := KindDisappeared(h, KindSecondScreen)

	assert.True(t, appeared.Satisfied())
	assert.False(t, disappeared.Satisfied())
	assert.True(t, kindAppeared.Satisfied())
	assert.False(t, kindDisappeared.Satisfied())

	screen.Active = false
	assert.False(t, appeared.Satisfied())
	assert.True(t, disappeared.Satisfied())
	assert.False(t, kindAppeared.Satisfied())
	assert.True(t, kindDisappeared.Satisfied())

	assert.Equal(t, "ObjectAppeared(SecondScreen)", appeared.Describe())
	assert.Equal(t, "ObjectDisappeared(SecondScreen)", disappeared.Describe())
	assert.Equal(t, "ObjectAppeared<SecondScreen>", kindAppeared.Describe())
	assert.Equal(t, "ObjectDisappeared<SecondScreen>", kindDisappeared.Describe())
}

func TestLabelTextAppeared(t *testing.T) {
	label := NewObject("Text", KindText)
	label.Text = "Loading"
	panel := NewObject("Panel", KindPanel)
	screen := NewObject("Screen", KindPanel).Add(label, panel)
	h := hostWith(t, screen)

	c := LabelTextAppeared(h, "Screen/Text", "Done")
	assert.False(t, c.Satisfied())
	assert.Equal(t, "Label Screen/Text\n text expected: Done,\n actual: Loading", c.Describe())

	label.Text = "Done"
	assert.True(t, c.Satisfied())
	assert.Equal(t, `Label Screen/Text shows "Done"`, c.Describe())

	screen.Active = false
	assert.Equal(t, "Label object Screen/Text is inactive", c.Describe())

	assert.Equal(t, "Label object Screen/Missing does not exist", LabelTextAppeared(h, "Screen/Missing", "x").Describe())
	assert.Equal(t, "Label object Screen/Panel has no text attached", LabelTextAppeared(h, "Screen/Panel", "x").Describe())
}

func TestButtonAccessible(t *testing.T) {
	button := NewObject("Button-Ok", KindButton)
	button.OnClick = func() {}

	c := ButtonAccessible(button)
	assert.True(t, c.Satisfied())
	assert.Equal(t, "Button Button-Ok is accessible", c.Describe())

	button.Active = false
	assert.False(t, c.Satisfied())
	assert.Equal(t, "Button Button-Ok is inactive", c.Describe())

	assert.Equal(t, "Object Text is not a button", ButtonAccessible(NewObject("Text", KindText)).Describe())
	assert.Equal(t, "Button not found", ButtonAccessible(nil).Describe())
}
