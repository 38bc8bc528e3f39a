package demo

import "strings"

// Object kinds used by the demo scenes.
const (
	KindPanel        = "Panel"
	KindButton       = "Button"
	KindText         = "Text"
	KindFirstScreen  = "FirstScreen"
	KindSecondScreen = "SecondScreen"
)

// Object is a node of a scene graph.
type Object struct {
	Name   string
	Kind   string
	Active bool
	Text   string
	// OnClick makes the object pressable. Only buttons carry one.
	OnClick func()
	// Component is the behaviour attached to the object, if any.
	Component any

	parent   *Object
	children []*Object
}

// NewObject creates an active object.
func NewObject(name, kind string) *Object {
	return &Object{Name: name, Kind: kind, Active: true}
}

// Add attaches children to o and returns o.
func (o *Object) Add(children ...*Object) *Object {
	for _, c := range children {
		c.parent = o
		o.children = append(o.children, c)
	}
	return o
}

// Remove detaches o from its parent.
func (o *Object) Remove() {
	p := o.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == o {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	o.parent = nil
}

// Parent returns the object o is attached to, nil for a scene root.
func (o *Object) Parent() *Object {
	return o.parent
}

// ActiveInHierarchy reports whether o and all of its ancestors are active.
func (o *Object) ActiveInHierarchy() bool {
	for n := o; n != nil; n = n.parent {
		if !n.Active {
			return false
		}
	}
	return true
}

// Path returns the slash-separated names from the scene root down to o.
func (o *Object) Path() string {
	var names []string
	for n := o; n != nil; n = n.parent {
		names = append(names, n.Name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, "/")
}

func (o *Object) String() string {
	if o == nil {
		return "<nil>"
	}
	return o.Path()
}

// Scene is a named tree of objects.
type Scene struct {
	Name  string
	roots []*Object
}

// NewScene creates an empty scene.
func NewScene(name string) *Scene {
	return &Scene{Name: name}
}

// Add adds root objects.
func (s *Scene) Add(roots ...*Object) {
	s.roots = append(s.roots, roots...)
}

// Find looks up an object by path. A single name matches the first object
// with that name anywhere in the scene; "a/b" matches a child b of any a.
func (s *Scene) Find(path string) *Object {
	first, rest, nested := strings.Cut(path, "/")
	var found *Object
	s.walk(func(o *Object) bool {
		if o.Name != first {
			return true
		}
		if !nested {
			found = o
			return false
		}
		if c := descend(o, rest); c != nil {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindKind returns the first object of kind.
func (s *Scene) FindKind(kind string) *Object {
	var found *Object
	s.walk(func(o *Object) bool {
		if o.Kind == kind {
			found = o
			return false
		}
		return true
	})
	return found
}

// walk visits objects depth first until visit returns false.
func (s *Scene) walk(visit func(*Object) bool) {
	var rec func(objects []*Object) bool
	rec = func(objects []*Object) bool {
		for _, o := range objects {
			if !visit(o) || !rec(o.children) {
				return false
			}
		}
		return true
	}
	rec(s.roots)
}

func descend(o *Object, path string) *Object {
	for _, name := range strings.Split(path, "/") {
		var next *Object
		for _, c := range o.children {
			if c.Name == name {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		o = next
	}
	return o
}
