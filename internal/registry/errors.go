package registry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoFactory is wrapped by a ConstructionError when a key has no
	// registered factory.
	ErrNoFactory = errors.New("no factory registered")
	// ErrNilInstance is wrapped by a ConstructionError when a factory returns
	// nil without an error.
	ErrNilInstance = errors.New("factory returned a nil instance")
)

// CyclicDependencyError indicates that resolving Key required Key itself.
type CyclicDependencyError struct {
	// Key is the first key revisited while it was still under construction.
	Key Key
	// Path lists the keys being resolved, ending with the revisited key.
	Path []Key
}

func (e *CyclicDependencyError) Error() string {
	parts := make([]string, len(e.Path))
	for i, k := range e.Path {
		parts[i] = string(k)
	}
	return fmt.Sprintf("cyclic dependency detected for %s (%s)", e.Key, strings.Join(parts, " -> "))
}

// ConstructionError indicates that the factory for Key failed. Err is the
// factory's own cause, never a wrapper of it.
type ConstructionError struct {
	Key Key
	Err error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("constructing %s: %v", e.Key, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// AssignmentError indicates that an instance cannot be assigned to a declared
// dependency because its type does not match.
type AssignmentError struct {
	// Owner is the component or fixture declaring the dependency.
	Owner string
	Key   Key
	Want  string
	Got   string
}

func (e *AssignmentError) Error() string {
	return fmt.Sprintf("cannot assign %s to dependency %s of %s: expected %s", e.Got, e.Key, e.Owner, e.Want)
}

// IsCyclic reports whether err is, or wraps, a CyclicDependencyError.
func IsCyclic(err error) bool {
	var cyclic *CyclicDependencyError
	return errors.As(err, &cyclic)
}
