package demo

import (
	"fmt"

	"github.com/giantswarm/uitest/internal/condition"
)

type sceneLoaded struct {
	host *Host
	name string
}

// SceneLoaded holds once name is the active scene.
func SceneLoaded(h *Host, name string) condition.Condition {
	return sceneLoaded{host: h, name: name}
}

func (c sceneLoaded) Satisfied() bool { return c.host.ActiveScene() == c.name }
func (c sceneLoaded) Describe() string {
	return fmt.Sprintf("SceneLoaded '%s' (active: '%s')", c.name, c.host.ActiveScene())
}

type objectAppeared struct {
	host *Host
	path string
}

// ObjectAppeared holds once the object at path exists and is active in the
// hierarchy.
func ObjectAppeared(h *Host, path string) condition.Condition {
	return objectAppeared{host: h, path: path}
}

func (c objectAppeared) Satisfied() bool {
	o := c.host.Find(c.path)
	return o != nil && o.ActiveInHierarchy()
}

func (c objectAppeared) Describe() string { return "ObjectAppeared(" + c.path + ")" }

type objectDisappeared struct{ objectAppeared }

// ObjectDisappeared holds while the object at path is missing or inactive.
func ObjectDisappeared(h *Host, path string) condition.Condition {
	return objectDisappeared{objectAppeared{host: h, path: path}}
}

func (c objectDisappeared) Satisfied() bool  { return !c.objectAppeared.Satisfied() }
func (c objectDisappeared) Describe() string { return "ObjectDisappeared(" + c.path + ")" }

type kindAppeared struct {
	host *Host
	kind string
}

// KindAppeared holds once an active object of kind exists.
func KindAppeared(h *Host, kind string) condition.Condition {
	return kindAppeared{host: h, kind: kind}
}

func (c kindAppeared) Satisfied() bool {
	o := c.host.FindKind(c.kind)
	return o != nil && o.ActiveInHierarchy()
}

func (c kindAppeared) Describe() string { return "ObjectAppeared<" + c.kind + ">" }

type kindDisappeared struct{ kindAppeared }

// KindDisappeared holds while no active object of kind exists.
func KindDisappeared(h *Host, kind string) condition.Condition {
	return kindDisappeared{kindAppeared{host: h, kind: kind}}
}

func (c kindDisappeared) Satisfied() bool  { return !c.kindAppeared.Satisfied() }
func (c kindDisappeared) Describe() string { return "ObjectDisappeared<" + c.kind + ">" }

type labelTextAppeared struct {
	host *Host
	path string
	text string
}

// LabelTextAppeared holds once the text object at path is active and shows
// text. While it does not hold, its description says what is wrong.
func LabelTextAppeared(h *Host, path, text string) condition.Condition {
	return labelTextAppeared{host: h, path: path, text: text}
}

func (c labelTextAppeared) Satisfied() bool { return c.problem() == "" }

func (c labelTextAppeared) Describe() string {
	if p := c.problem(); p != "" {
		return p
	}
	return fmt.Sprintf("Label %s shows %q", c.path, c.text)
}

func (c labelTextAppeared) problem() string {
	o := c.host.Find(c.path)
	switch {
	case o == nil:
		return "Label object " + c.path + " does not exist"
	case !o.ActiveInHierarchy():
		return "Label object " + c.path + " is inactive"
	case o.Kind != KindText:
		return "Label object " + c.path + " has no text attached"
	case o.Text != c.text:
		return fmt.Sprintf("Label %s\n text expected: %s,\n actual: %s", c.path, c.text, o.Text)
	}
	return ""
}

type buttonAccessible struct {
	button *Object
}

// ButtonAccessible holds once button can receive clicks.
func ButtonAccessible(button *Object) condition.Condition {
	return buttonAccessible{button: button}
}

func (c buttonAccessible) Satisfied() bool { return c.problem() == "" }

func (c buttonAccessible) Describe() string {
	if p := c.problem(); p != "" {
		return p
	}
	return "Button " + c.button.Name + " is accessible"
}

func (c buttonAccessible) problem() string {
	switch {
	case c.button == nil:
		return "Button not found"
	case c.button.Kind != KindButton || c.button.OnClick == nil:
		return "Object " + c.button.Path() + " is not a button"
	case !c.button.ActiveInHierarchy():
		return "Button " + c.button.Path() + " is inactive"
	}
	return ""
}
