package registry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeter interface {
	Greet() string
}

type englishGreeter struct{}

func (englishGreeter) Greet() string { return "hello" }

type mockGreeter struct{ reply string }

func (m *mockGreeter) Greet() string { return m.reply }

type screen struct {
	greeter greeter
}

func (s *screen) Dependencies() []Dependency {
	return []Dependency{Field(Key("greeter"), &s.greeter)}
}

type node struct {
	name string
	next *node
	key  Key
}

func (n *node) Dependencies() []Dependency {
	return []Dependency{Field(n.key, &n.next)}
}

type closer struct {
	name   string
	err    error
	closed *[]string
}

func (c *closer) Close() error {
	*c.closed = append(*c.closed, c.name)
	return c.err
}

func TestResolve(t *testing.T) {
	t.Run("ConstructsOnceAndCaches", func(t *testing.T) {
		r := New()
		calls := 0
		r.Register("greeter", func(Resolver) (any, error) {
			calls++
			return englishGreeter{}, nil
		})

		first, err := r.Resolve("greeter")
		require.NoError(t, err)
		second, err := r.Resolve("greeter")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, calls)
		assert.True(t, r.Resolved("greeter"))
	})

	t.Run("InjectsDeclaredDependencies", func(t *testing.T) {
		r := New()
		r.Register("greeter", func(Resolver) (any, error) { return englishGreeter{}, nil })
		Provide(r, "screen", func(Resolver) (*screen, error) { return &screen{}, nil })

		s, err := Get[*screen](r, "screen")
		require.NoError(t, err)
		require.NotNil(t, s.greeter)
		assert.Equal(t, "hello", s.greeter.Greet())
		assert.Equal(t, []Key{"greeter", "screen"}, r.Keys())
	})

	t.Run("FactoryResolvesSibling", func(t *testing.T) {
		r := New()
		r.Register("greeter", func(Resolver) (any, error) { return englishGreeter{}, nil })
		Provide(r, "wrapped", func(res Resolver) (greeter, error) {
			return Get[greeter](res, "greeter")
		})

		wrapped, err := Get[greeter](r, "wrapped")
		require.NoError(t, err)
		assert.Equal(t, "hello", wrapped.Greet())
		assert.Equal(t, []Key{"greeter", "wrapped"}, r.Keys())
	})

	t.Run("MissingFactory", func(t *testing.T) {
		r := New()

		_, err := r.Resolve("nothing")

		var ce *ConstructionError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, Key("nothing"), ce.Key)
		assert.ErrorIs(t, err, ErrNoFactory)
	})

	t.Run("FactoryErrorIsUnwrapped", func(t *testing.T) {
		r := New()
		cause := errors.New("disk on fire")
		r.Register("broken", func(Resolver) (any, error) { return nil, cause })

		_, err := r.Resolve("broken")

		var ce *ConstructionError
		require.ErrorAs(t, err, &ce)
		assert.Same(t, cause, ce.Err)
		assert.Same(t, cause, errors.Unwrap(err))
	})

	t.Run("FactoryPanicBecomesConstructionError", func(t *testing.T) {
		r := New()
		r.Register("panicky", func(Resolver) (any, error) { panic("constructor exploded") })

		_, err := r.Resolve("panicky")

		var ce *ConstructionError
		require.ErrorAs(t, err, &ce)
		assert.Contains(t, ce.Err.Error(), "constructor exploded")
		assert.False(t, r.Resolved("panicky"))
	})

	t.Run("NilInstance", func(t *testing.T) {
		r := New()
		r.Register("nil", func(Resolver) (any, error) { return nil, nil })

		_, err := r.Resolve("nil")
		assert.ErrorIs(t, err, ErrNilInstance)
	})

	t.Run("TypeMismatchOnInjection", func(t *testing.T) {
		r := New()
		r.Register("greeter", func(Resolver) (any, error) { return 42, nil })
		Provide(r, "screen", func(Resolver) (*screen, error) { return &screen{}, nil })

		_, err := r.Resolve("screen")

		var ae *AssignmentError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, Key("greeter"), ae.Key)
		assert.Equal(t, "int", ae.Got)
		assert.False(t, r.Resolved("screen"))
	})

	t.Run("GetWrongType", func(t *testing.T) {
		r := New()
		r.Register("greeter", func(Resolver) (any, error) { return englishGreeter{}, nil })

		_, err := Get[*screen](r, "greeter")

		var ae *AssignmentError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, "*registry.screen", ae.Want)
	})
}

func TestCyclicDependencies(t *testing.T) {
	t.Run("TwoNodeCycle", func(t *testing.T) {
		r := New()
		r.Register("A", func(Resolver) (any, error) { return &node{name: "A", key: "B"}, nil })
		r.Register("B", func(Resolver) (any, error) { return &node{name: "B", key: "A"}, nil })

		_, err := r.Resolve("A")

		var cyclic *CyclicDependencyError
		require.ErrorAs(t, err, &cyclic)
		assert.Equal(t, Key("A"), cyclic.Key)
		assert.Equal(t, []Key{"A", "B", "A"}, cyclic.Path)
		assert.True(t, IsCyclic(err))
		assert.Contains(t, err.Error(), "A -> B -> A")
	})

	t.Run("SelfDependency", func(t *testing.T) {
		r := New()
		r.Register("A", func(Resolver) (any, error) { return &node{name: "A", key: "A"}, nil })

		_, err := r.Resolve("A")

		var cyclic *CyclicDependencyError
		require.ErrorAs(t, err, &cyclic)
		assert.Equal(t, Key("A"), cyclic.Key)
	})

	t.Run("NamesFirstRevisitedKey", func(t *testing.T) {
		r := New()
		r.Register("A", func(Resolver) (any, error) { return &node{name: "A", key: "B"}, nil })
		r.Register("B", func(Resolver) (any, error) { return &node{name: "B", key: "C"}, nil })
		r.Register("C", func(Resolver) (any, error) { return &node{name: "C", key: "B"}, nil })

		_, err := r.Resolve("A")

		var cyclic *CyclicDependencyError
		require.ErrorAs(t, err, &cyclic)
		assert.Equal(t, Key("B"), cyclic.Key)
		assert.Equal(t, []Key{"A", "B", "C", "B"}, cyclic.Path)
	})

	t.Run("FactoryResolvingItself", func(t *testing.T) {
		r := New()
		r.Register("A", func(res Resolver) (any, error) { return res.Resolve("A") })

		done := make(chan error, 1)
		go func() {
			_, err := r.Resolve("A")
			done <- err
		}()

		select {
		case err := <-done:
			var cyclic *CyclicDependencyError
			require.ErrorAs(t, err, &cyclic)
			assert.Equal(t, []Key{"A", "A"}, cyclic.Path)
			assert.False(t, r.Resolved("A"))
		case <-time.After(2 * time.Second):
			t.Fatal("Resolve did not return")
		}
	})

	t.Run("FactoryCycleThroughSibling", func(t *testing.T) {
		r := New()
		r.Register("A", func(res Resolver) (any, error) { return Get[greeter](res, "B") })
		r.Register("B", func(res Resolver) (any, error) { return res.Resolve("A") })

		_, err := r.Resolve("A")

		var cyclic *CyclicDependencyError
		require.ErrorAs(t, err, &cyclic)
		assert.Equal(t, []Key{"A", "B", "A"}, cyclic.Path)
	})

	t.Run("FailedResolutionLeavesNoMarkers", func(t *testing.T) {
		r := New()
		r.Register("A", func(Resolver) (any, error) { return &node{name: "A", key: "B"}, nil })

		_, err := r.Resolve("A")
		require.ErrorIs(t, err, ErrNoFactory)

		r.Register("B", func(Resolver) (any, error) { return englishGreeter{}, nil })
		_, err = r.Resolve("A")

		// The retry must report the real problem, not a stale cycle.
		var ae *AssignmentError
		assert.ErrorAs(t, err, &ae)
		assert.False(t, IsCyclic(err))
	})
}

func TestInject(t *testing.T) {
	r := New()
	r.Register("greeter", func(Resolver) (any, error) { return englishGreeter{}, nil })

	s := &screen{}
	require.NoError(t, r.Inject(s))
	assert.Equal(t, "hello", s.greeter.Greet())

	// Targets without a dependency table are ignored.
	assert.NoError(t, r.Inject(struct{}{}))
}

func TestReplace(t *testing.T) {
	t.Run("BackPatchesResolvedDependents", func(t *testing.T) {
		r := New()
		r.Register("greeter", func(Resolver) (any, error) { return englishGreeter{}, nil })
		Provide(r, "screen", func(Resolver) (*screen, error) { return &screen{}, nil })

		s, err := Get[*screen](r, "screen")
		require.NoError(t, err)

		mock := &mockGreeter{reply: "mocked"}
		require.NoError(t, r.Replace("greeter", mock))

		assert.Equal(t, "mocked", s.greeter.Greet())
		resolved, err := r.Resolve("greeter")
		require.NoError(t, err)
		assert.Same(t, mock, resolved)
	})

	t.Run("BeforeFirstResolution", func(t *testing.T) {
		r := New()
		Provide(r, "screen", func(Resolver) (*screen, error) { return &screen{}, nil })

		require.NoError(t, r.Replace("greeter", &mockGreeter{reply: "early"}))

		s, err := Get[*screen](r, "screen")
		require.NoError(t, err)
		assert.Equal(t, "early", s.greeter.Greet())
	})

	t.Run("RejectsIncompatibleInstanceAtomically", func(t *testing.T) {
		r := New()
		r.Register("greeter", func(Resolver) (any, error) { return englishGreeter{}, nil })
		Provide(r, "screen", func(Resolver) (*screen, error) { return &screen{}, nil })

		s, err := Get[*screen](r, "screen")
		require.NoError(t, err)

		err = r.Replace("greeter", "not a greeter")

		var ae *AssignmentError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, "hello", s.greeter.Greet())
		current, err := r.Resolve("greeter")
		require.NoError(t, err)
		assert.Equal(t, englishGreeter{}, current)
	})

	t.Run("RejectsNil", func(t *testing.T) {
		r := New()
		assert.Error(t, r.Replace("greeter", nil))
	})
}

func TestReset(t *testing.T) {
	r := New()
	var closed []string
	r.Register("first", func(Resolver) (any, error) { return &closer{name: "first", closed: &closed}, nil })
	r.Register("second", func(Resolver) (any, error) {
		return &closer{name: "second", closed: &closed, err: errors.New("stuck")}, nil
	})

	_, err := r.Resolve("first")
	require.NoError(t, err)
	_, err = r.Resolve("second")
	require.NoError(t, err)

	err = r.Reset()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "closing second: stuck")
	assert.Equal(t, []string{"second", "first"}, closed)
	assert.Empty(t, r.Keys())
	assert.False(t, r.Resolved("first"))

	// Factories survive a reset.
	again, err := r.Resolve("first")
	require.NoError(t, err)
	assert.NotNil(t, again)
}
