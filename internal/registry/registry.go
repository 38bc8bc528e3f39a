package registry

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/giantswarm/uitest/pkg/logging"
)

// Key identifies a component in the registry.
type Key string

// Resolver resolves components by key. *Registry is a Resolver; factories
// receive one bound to the resolution in flight.
type Resolver interface {
	Resolve(key Key) (any, error)
}

// Factory constructs the default instance for a key. Components the factory
// needs are resolved through res, never through the registry directly.
type Factory func(res Resolver) (any, error)

type entryState int

const (
	stateConstructing entryState = iota + 1
	stateResolved
)

type entry struct {
	state    entryState
	instance any
}

// dependent records that owner holds the instance of some key in dep.
type dependent struct {
	owner Key
	dep   Dependency
}

// Registry lazily constructs singleton components, injects their declared
// dependencies and lets tests swap implementations at runtime.
type Registry struct {
	mu         sync.Mutex
	factories  map[Key]Factory
	entries    map[Key]*entry
	order      []Key
	dependents map[Key][]dependent
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		factories:  make(map[Key]Factory),
		entries:    make(map[Key]*entry),
		dependents: make(map[Key][]dependent),
	}
}

// Register binds the default factory for key, replacing any previous one.
// Instances already resolved are left untouched.
func (r *Registry) Register(key Key, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[key] = factory
}

// Provide binds a typed constructor for key.
func Provide[T any](r *Registry, key Key, ctor func(Resolver) (T, error)) {
	r.Register(key, func(res Resolver) (any, error) {
		v, err := ctor(res)
		if err != nil {
			return nil, err
		}
		return v, nil
	})
}

// Resolve returns the singleton for key, constructing it and its dependency
// graph on first use.
func (r *Registry) Resolve(key Key) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolve(key, nil)
}

// Get resolves key and asserts the instance to T.
func Get[T any](r Resolver, key Key) (T, error) {
	var zero T
	v, err := r.Resolve(key)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, &AssignmentError{
			Owner: "Get",
			Key:   key,
			Want:  reflect.TypeFor[T]().String(),
			Got:   fmt.Sprintf("%T", v),
		}
	}
	return typed, nil
}

func (r *Registry) resolve(key Key, path []Key) (any, error) {
	path = append(path, key)

	if e, ok := r.entries[key]; ok {
		if e.state == stateConstructing {
			return nil, &CyclicDependencyError{Key: key, Path: slices.Clone(path)}
		}
		return e.instance, nil
	}

	factory, ok := r.factories[key]
	if !ok {
		return nil, &ConstructionError{Key: key, Err: ErrNoFactory}
	}

	r.entries[key] = &entry{state: stateConstructing}
	res := &pathResolver{registry: r, path: path}
	res.live.Store(true)
	instance, err := construct(key, factory, res)
	res.live.Store(false)
	if err != nil {
		delete(r.entries, key)
		return nil, err
	}

	deps := dependenciesOf(instance)
	if err := r.fill(string(key), deps, path); err != nil {
		delete(r.entries, key)
		return nil, err
	}

	r.entries[key] = &entry{state: stateResolved, instance: instance}
	r.order = append(r.order, key)
	for _, dep := range deps {
		r.dependents[dep.Key] = append(r.dependents[dep.Key], dependent{owner: key, dep: dep})
	}

	logging.Debug("Registry", "Resolved %s (%T)", key, instance)
	return instance, nil
}

// fill resolves every dependency, then assigns them all.
func (r *Registry) fill(owner string, deps []Dependency, path []Key) error {
	values := make([]any, len(deps))
	for i, dep := range deps {
		v, err := r.resolve(dep.Key, path)
		if err != nil {
			return err
		}
		if err := dep.check(owner, v); err != nil {
			return err
		}
		values[i] = v
	}
	for i, dep := range deps {
		dep.assign(values[i])
	}
	return nil
}

// pathResolver resolves on behalf of a running factory. The registry lock is
// already held and the path carries the keys under construction, so a factory
// asking for its own key gets a CyclicDependencyError.
type pathResolver struct {
	registry *Registry
	path     []Key
	live     atomic.Bool
}

func (p *pathResolver) Resolve(key Key) (any, error) {
	if !p.live.Load() {
		return p.registry.Resolve(key)
	}
	return p.registry.resolve(key, slices.Clone(p.path))
}

func construct(key Key, factory Factory, res Resolver) (instance any, err error) {
	defer func() {
		if p := recover(); p != nil {
			cause, ok := p.(error)
			if !ok {
				cause = fmt.Errorf("panic: %v", p)
			}
			instance, err = nil, &ConstructionError{Key: key, Err: cause}
		}
	}()

	instance, err = factory(res)
	if err != nil {
		var ce *ConstructionError
		if errors.As(err, &ce) && ce.Key == key {
			return nil, ce
		}
		return nil, &ConstructionError{Key: key, Err: err}
	}
	if instance == nil {
		return nil, &ConstructionError{Key: key, Err: ErrNilInstance}
	}
	return instance, nil
}

// Inject resolves and assigns the declared dependencies of target, an object
// the registry does not own. Targets without dependencies are left alone.
func (r *Registry) Inject(target any) error {
	deps := dependenciesOf(target)
	if len(deps) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fill(fmt.Sprintf("%T", target), deps, nil)
}

// Replace makes instance the value for key and re-points every resolved
// component that depends on key at it. Every assignment is checked before any
// is applied. The replacement's own dependencies are not injected.
func (r *Registry) Replace(key Key, instance any) error {
	if instance == nil {
		return fmt.Errorf("replacing %s: instance must not be nil", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[key]; ok && e.state == stateConstructing {
		return fmt.Errorf("replacing %s: component is under construction", key)
	}

	subscribers := r.dependents[key]
	for _, sub := range subscribers {
		if err := sub.dep.check(string(sub.owner), instance); err != nil {
			return err
		}
	}

	// The previous instance no longer holds its dependencies.
	r.dropDependentsOwnedBy(key)

	if _, ok := r.entries[key]; !ok {
		r.order = append(r.order, key)
	}
	r.entries[key] = &entry{state: stateResolved, instance: instance}
	for _, sub := range subscribers {
		sub.dep.assign(instance)
	}

	logging.Debug("Registry", "Replaced %s with %T, patched %d dependents", key, instance, len(subscribers))
	return nil
}

func (r *Registry) dropDependentsOwnedBy(owner Key) {
	for key, subs := range r.dependents {
		kept := slices.DeleteFunc(slices.Clone(subs), func(d dependent) bool { return d.owner == owner })
		if len(kept) == 0 {
			delete(r.dependents, key)
		} else {
			r.dependents[key] = kept
		}
	}
}

// Reset closes every resolved io.Closer in reverse resolution order and
// forgets all instances. Registered factories are kept.
func (r *Registry) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for i := len(r.order) - 1; i >= 0; i-- {
		key := r.order[i]
		e, ok := r.entries[key]
		if !ok {
			continue
		}
		if closer, ok := e.instance.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing %s: %w", key, err))
			}
		}
	}

	r.entries = make(map[Key]*entry)
	r.dependents = make(map[Key][]dependent)
	r.order = nil
	return errors.Join(errs...)
}

// Resolved reports whether key currently has an instance.
func (r *Registry) Resolved(key Key) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[key]
	return ok && e.state == stateResolved
}

// Keys returns the resolved keys in resolution order.
func (r *Registry) Keys() []Key {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.order)
}
