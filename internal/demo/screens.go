package demo

import (
	"github.com/giantswarm/uitest/internal/registry"
	"github.com/giantswarm/uitest/pkg/logging"
)

// TestableGameScene is the scene the example fixture drives.
const TestableGameScene = "TestableGameScene"

// FirstScreen is the component behind the first screen of the demo game.
type FirstScreen struct {
	// Enabled mirrors a component's enabled flag. Nothing in the demo
	// disables it.
	Enabled bool

	client NetworkClient
	root   *Object
	label  *Object
}

func (s *FirstScreen) Dependencies() []registry.Dependency {
	return []registry.Dependency{registry.Field(NetworkClientKey, &s.client)}
}

// OpenSecondScreen shows a new second screen next to the first one.
func (s *FirstScreen) OpenSecondScreen() {
	second := NewObject("SecondScreen", KindSecondScreen)
	text := NewObject("Text", KindText)
	text.Text = "Second screen"
	closeButton := NewObject("Button-Close", KindButton)
	closeButton.OnClick = second.Remove
	second.Add(text, closeButton)

	if p := s.root.Parent(); p != nil {
		p.Add(second)
	}
}

// SendNetworkRequest asks the backend for data and shows the answer.
// Failures are logged, not returned: the screen has nobody to return to.
func (s *FirstScreen) SendNetworkRequest() {
	response, err := s.client.SendServerRequest("i_need_data")
	if err != nil {
		logging.Error("FirstScreen", err, "Network request failed")
		return
	}
	s.label.Text = response
}

// buildTestableGameScene assembles a canvas holding the first screen.
func buildTestableGameScene(h *Host) (*Scene, error) {
	canvas := NewObject("Canvas", KindPanel)
	root := NewObject("FirstScreen", KindFirstScreen)
	label := NewObject("Text-Response", KindText)
	openButton := NewObject("Button-OpenSecondScreen", KindButton)
	requestButton := NewObject("Button-NetworkRequest", KindButton)
	root.Add(openButton, requestButton, label)
	canvas.Add(root)

	screen := &FirstScreen{Enabled: true, root: root, label: label}
	if err := h.Inject(screen); err != nil {
		return nil, err
	}
	openButton.OnClick = screen.OpenSecondScreen
	requestButton.OnClick = screen.SendNetworkRequest
	root.Component = screen

	scene := NewScene(TestableGameScene)
	scene.Add(canvas)
	return scene, nil
}
