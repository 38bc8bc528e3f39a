package registry

import (
	"fmt"
	"reflect"
)

// Dependency is one injectable field declared by a component or fixture.
type Dependency struct {
	Key      Key
	typeName string
	accepts  func(any) bool
	assign   func(any)
}

// Field declares that dst is filled with the component registered under key.
// The resolved instance must be assignable to T.
func Field[T any](key Key, dst *T) Dependency {
	return Dependency{
		Key:      key,
		typeName: reflect.TypeFor[T]().String(),
		accepts: func(v any) bool {
			_, ok := v.(T)
			return ok
		},
		assign: func(v any) {
			*dst = v.(T)
		},
	}
}

// Injectable is implemented by anything with injectable fields. The returned
// table must point at the receiver's own fields.
type Injectable interface {
	Dependencies() []Dependency
}

func dependenciesOf(target any) []Dependency {
	if in, ok := target.(Injectable); ok {
		return in.Dependencies()
	}
	return nil
}

func (d Dependency) check(owner string, instance any) error {
	if d.accepts == nil || d.assign == nil {
		return fmt.Errorf("dependency %s of %s was not declared with registry.Field", d.Key, owner)
	}
	if !d.accepts(instance) {
		return &AssignmentError{
			Owner: owner,
			Key:   d.Key,
			Want:  d.typeName,
			Got:   fmt.Sprintf("%T", instance),
		}
	}
	return nil
}
