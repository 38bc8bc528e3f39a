package orchestrator

import (
	"slices"
	"strings"
)

// DefaultHostNoise lists error messages the host emits on its own that must
// not fail a test.
var DefaultHostNoise = []string{
	"The profiler has run out of samples",
	"Multiple plugins with the same name",
	"String too long for TextMeshGenerator",
}

// NoiseFilter matches host-internal diagnostics by message prefix.
type NoiseFilter struct {
	prefixes []string
}

// NewNoiseFilter builds a filter from DefaultHostNoise plus extra prefixes.
func NewNoiseFilter(extra ...string) NoiseFilter {
	prefixes := slices.Clone(DefaultHostNoise)
	for _, p := range extra {
		if p != "" && !slices.Contains(prefixes, p) {
			prefixes = append(prefixes, p)
		}
	}
	return NoiseFilter{prefixes: prefixes}
}

// Matches reports whether message is host noise.
func (f NoiseFilter) Matches(message string) bool {
	for _, p := range f.prefixes {
		if strings.HasPrefix(message, p) {
			return true
		}
	}
	return false
}

// Prefixes returns the configured prefixes.
func (f NoiseFilter) Prefixes() []string {
	return slices.Clone(f.prefixes)
}
