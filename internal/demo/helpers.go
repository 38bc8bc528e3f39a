package demo

import (
	"github.com/giantswarm/uitest/internal/fixture"
	"github.com/giantswarm/uitest/pkg/logging"
)

// LoadScene starts loading name and waits until it is active.
func LoadScene(t fixture.T, h *Host, name string) {
	if err := h.LoadScene(name); err != nil {
		t.Fatal(err)
	}
	t.WaitFor(SceneLoaded(h, name))
}

// Press waits for the button at path to appear and become accessible, then
// clicks it and lets one frame pass.
func Press(t fixture.T, h *Host, path string) {
	t.WaitFor(ObjectAppeared(h, path))
	button := h.Find(path)
	t.WaitFor(ButtonAccessible(button))

	logging.Info("Host", "Button pressed: %s", button)
	if err := h.Click(button); err != nil {
		t.Fatal(err)
	}
	t.Yield()
}

// AssertLabel waits until the text object at path shows text.
func AssertLabel(t fixture.T, h *Host, path, text string) {
	t.WaitFor(LabelTextAppeared(h, path, text))
}
