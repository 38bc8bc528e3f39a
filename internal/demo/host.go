package demo

import (
	"fmt"
	"sync"

	"github.com/giantswarm/uitest/internal/registry"
	"github.com/giantswarm/uitest/pkg/logging"
)

// DefaultLoadFrames is how many frames a scene load takes.
const DefaultLoadFrames = 2

// SceneBuilder creates a fresh instance of a scene.
type SceneBuilder func(h *Host) (*Scene, error)

// Host is a small in-memory UI host. Scene loads are deferred and complete
// on a later Update, the way a game engine finishes them between frames.
type Host struct {
	registry   *registry.Registry
	loadFrames int

	mu       sync.Mutex
	builders map[string]SceneBuilder
	active   *Scene
	pending  string
	waited   int
	frame    int
}

// NewHost creates a host that injects scene components from reg.
func NewHost(reg *registry.Registry, loadFrames int) *Host {
	if loadFrames < 1 {
		loadFrames = 1
	}
	return &Host{
		registry:   reg,
		loadFrames: loadFrames,
		builders:   make(map[string]SceneBuilder),
	}
}

// RegisterScene makes a scene loadable by name.
func (h *Host) RegisterScene(name string, build SceneBuilder) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.builders[name] = build
}

// LoadScene schedules name to replace the active scene.
func (h *Host) LoadScene(name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.builders[name]; !ok {
		return fmt.Errorf("scene %q is not registered", name)
	}
	h.pending = name
	h.waited = 0
	return nil
}

// Unload drops the active scene and any pending load.
func (h *Host) Unload() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.active = nil
	h.pending = ""
}

// Update runs one frame.
func (h *Host) Update() {
	h.mu.Lock()
	h.frame++
	name := h.pending
	if name == "" {
		h.mu.Unlock()
		return
	}
	h.waited++
	if h.waited < h.loadFrames {
		h.mu.Unlock()
		return
	}
	h.pending = ""
	build := h.builders[name]
	h.mu.Unlock()

	// Builders inject components and may log, so they run unlocked.
	scene, err := build(h)
	if err != nil {
		logging.Error("Host", err, "Failed to load scene %s", name)
		return
	}

	h.mu.Lock()
	h.active = scene
	h.mu.Unlock()
	logging.Debug("Host", "Scene %s loaded at frame %d", name, h.Frame())
}

// Frame returns the number of frames run so far.
func (h *Host) Frame() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frame
}

// ActiveScene returns the name of the loaded scene, or "".
func (h *Host) ActiveScene() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == nil {
		return ""
	}
	return h.active.Name
}

// Find looks up an object in the active scene.
func (h *Host) Find(path string) *Object {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == nil {
		return nil
	}
	return h.active.Find(path)
}

// FindKind looks up the first object of kind in the active scene.
func (h *Host) FindKind(kind string) *Object {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == nil {
		return nil
	}
	return h.active.FindKind(kind)
}

// Click delivers a pointer click to o.
func (h *Host) Click(o *Object) error {
	if o == nil || o.OnClick == nil {
		return fmt.Errorf("object %s cannot be clicked", o)
	}
	if !o.ActiveInHierarchy() {
		return fmt.Errorf("object %s is inactive", o)
	}
	o.OnClick()
	return nil
}

// Inject fills a scene component's dependencies from the host's registry.
func (h *Host) Inject(component any) error {
	return h.registry.Inject(component)
}
