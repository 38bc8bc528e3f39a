package fixture

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// ErrCatalogSealed is returned when fixtures are registered after discovery.
var ErrCatalogSealed = errors.New("fixture catalog already discovered")

// TestDescriptor identifies one discovered test.
type TestDescriptor struct {
	Fixture string
	Name    string
	index   int
}

// FullName returns "Fixture.Test".
func (d TestDescriptor) FullName() string {
	return d.Fixture + "." + d.Name
}

// Descriptor is a discovered fixture together with the tests selected by a
// filter.
type Descriptor struct {
	Name       string
	Definition Definition
	Tests      []TestDescriptor
}

// Catalog is the table of registered fixtures.
type Catalog struct {
	mu    sync.Mutex
	defs  []Definition
	names map[string]struct{}

	once    sync.Once
	all     []Descriptor
	scanErr error
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{names: make(map[string]struct{})}
}

// Register adds fixture definitions in order. Names must be unique.
func (c *Catalog) Register(defs ...Definition) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.all != nil || c.scanErr != nil {
		return ErrCatalogSealed
	}

	for _, def := range defs {
		if def.New == nil {
			return fmt.Errorf("fixture %q has no constructor", def.Name)
		}
		if def.Name == "" {
			def.Name = typeName(def.New())
		}
		if _, exists := c.names[def.Name]; exists {
			return fmt.Errorf("fixture %q registered twice", def.Name)
		}
		c.names[def.Name] = struct{}{}
		c.defs = append(c.defs, def)
	}
	return nil
}

// MustRegister is Register for static registration tables.
func (c *Catalog) MustRegister(defs ...Definition) {
	if err := c.Register(defs...); err != nil {
		panic(err)
	}
}

// Discover returns every fixture in registration order, each carrying the
// tests whose full name contains filter, ignoring case. An empty filter
// selects everything. Fixtures without a selected test are still returned.
func (c *Catalog) Discover(filter string) ([]Descriptor, error) {
	c.once.Do(c.scan)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scanErr != nil {
		return nil, c.scanErr
	}

	out := make([]Descriptor, 0, len(c.all))
	for _, d := range c.all {
		selected := Descriptor{Name: d.Name, Definition: d.Definition}
		for _, td := range d.Tests {
			if Matches(filter, td.FullName()) {
				selected.Tests = append(selected.Tests, td)
			}
		}
		out = append(out, selected)
	}
	return out, nil
}

func (c *Catalog) scan() {
	c.mu.Lock()
	defer c.mu.Unlock()

	all := make([]Descriptor, 0, len(c.defs))
	for _, def := range c.defs {
		d := Descriptor{Name: def.Name, Definition: def}
		seen := make(map[string]struct{})
		for i, tc := range def.New().Tests() {
			if tc.Name == "" || tc.Run == nil {
				c.scanErr = fmt.Errorf("fixture %s: test %d needs a name and a body", def.Name, i)
				return
			}
			if _, dup := seen[tc.Name]; dup {
				c.scanErr = fmt.Errorf("fixture %s: test %s declared twice", def.Name, tc.Name)
				return
			}
			seen[tc.Name] = struct{}{}
			d.Tests = append(d.Tests, TestDescriptor{Fixture: def.Name, Name: tc.Name, index: i})
		}
		all = append(all, d)
	}
	c.all = all
}

// Matches reports whether fullName is selected by filter.
func Matches(filter, fullName string) bool {
	return filter == "" || strings.Contains(strings.ToLower(fullName), strings.ToLower(filter))
}

// Lookup returns the case td refers to on a fresh instance.
func Lookup(instance Fixture, td TestDescriptor) (Case, error) {
	cases := instance.Tests()
	if td.index < len(cases) && cases[td.index].Name == td.Name {
		return cases[td.index], nil
	}
	for _, tc := range cases {
		if tc.Name == td.Name {
			return tc, nil
		}
	}
	return Case{}, fmt.Errorf("fixture %s has no test %s", td.Fixture, td.Name)
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return fmt.Sprintf("%T", v)
	}
	return t.Name()
}
