// Package condition defines the predicates a test waits on.
//
// The orchestrator only ever calls Satisfied and Describe; concrete
// conditions over UI state live with the host that owns that state.
package condition

import (
	"strings"
)

// Condition is a predicate polled by the scheduler until it holds or a
// timeout elapses.
type Condition interface {
	// Satisfied reports whether the awaited state has been reached.
	Satisfied() bool
	// Describe renders the condition for timeout messages. It is called when
	// the timeout fires, so it may report the latest observed state.
	Describe() string
}

type funcCondition struct {
	desc string
	fn   func() bool
}

// Func adapts a boolean getter. A nil fn is never satisfied.
func Func(desc string, fn func() bool) Condition {
	return &funcCondition{desc: desc, fn: fn}
}

func (c *funcCondition) Satisfied() bool {
	return c.fn != nil && c.fn()
}

func (c *funcCondition) Describe() string {
	if c.desc == "" {
		return "BoolCondition"
	}
	return "BoolCondition(" + c.desc + ")"
}

type notCondition struct {
	inner Condition
}

// Not inverts c.
func Not(c Condition) Condition {
	return &notCondition{inner: c}
}

func (c *notCondition) Satisfied() bool { return !c.inner.Satisfied() }

func (c *notCondition) Describe() string { return "Not(" + c.inner.Describe() + ")" }

type allCondition []Condition

// All holds when every condition holds. With no conditions it always holds.
func All(cs ...Condition) Condition {
	return allCondition(cs)
}

func (cs allCondition) Satisfied() bool {
	for _, c := range cs {
		if !c.Satisfied() {
			return false
		}
	}
	return true
}

func (cs allCondition) Describe() string {
	return "All(" + describeAll(cs) + ")"
}

type anyCondition []Condition

// Any holds when at least one condition holds. With no conditions it never
// holds.
func Any(cs ...Condition) Condition {
	return anyCondition(cs)
}

func (cs anyCondition) Satisfied() bool {
	for _, c := range cs {
		if c.Satisfied() {
			return true
		}
	}
	return false
}

func (cs anyCondition) Describe() string {
	return "Any(" + describeAll(cs) + ")"
}

func describeAll(cs []Condition) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.Describe()
	}
	return strings.Join(parts, ", ")
}
