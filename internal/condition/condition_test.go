package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunc(t *testing.T) {
	ready := false
	c := Func("ready", func() bool { return ready })

	assert.False(t, c.Satisfied())
	ready = true
	assert.True(t, c.Satisfied())
	assert.Equal(t, "BoolCondition(ready)", c.Describe())

	assert.False(t, Func("", nil).Satisfied())
	assert.Equal(t, "BoolCondition", Func("", nil).Describe())
}

func TestCombinators(t *testing.T) {
	yes := Func("yes", func() bool { return true })
	no := Func("no", func() bool { return false })

	tests := []struct {
		name      string
		cond      Condition
		satisfied bool
		describe  string
	}{
		{"not", Not(no), true, "Not(BoolCondition(no))"},
		{"all true", All(yes, yes), true, "All(BoolCondition(yes), BoolCondition(yes))"},
		{"all mixed", All(yes, no), false, "All(BoolCondition(yes), BoolCondition(no))"},
		{"all empty", All(), true, "All()"},
		{"any mixed", Any(no, yes), true, "Any(BoolCondition(no), BoolCondition(yes))"},
		{"any false", Any(no), false, "Any(BoolCondition(no))"},
		{"any empty", Any(), false, "Any()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.satisfied, tt.cond.Satisfied())
			assert.Equal(t, tt.describe, tt.cond.Describe())
		})
	}
}

func TestAllShortCircuits(t *testing.T) {
	calls := 0
	counted := Func("counted", func() bool { calls++; return true })

	All(Func("no", func() bool { return false }), counted).Satisfied()

	assert.Zero(t, calls)
}
