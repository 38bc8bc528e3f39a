package orchestrator

import "testing"

func TestNoiseFilter(t *testing.T) {
	f := NewNoiseFilter("Shader warmup", "", "Shader warmup")

	tests := []struct {
		message  string
		expected bool
	}{
		{"The profiler has run out of samples for frame 12", true},
		{"Multiple plugins with the same name 'libfoo' were found", true},
		{"String too long for TextMeshGenerator. Cutting off characters.", true},
		{"Shader warmup took 40ms", true},
		{"Server unavailable", false},
		{"error: The profiler has run out of samples", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := f.Matches(tt.message); got != tt.expected {
			t.Errorf("Matches(%q) = %v, expected %v", tt.message, got, tt.expected)
		}
	}

	if got := len(f.Prefixes()); got != len(DefaultHostNoise)+1 {
		t.Errorf("expected %d prefixes, got %d", len(DefaultHostNoise)+1, got)
	}
}
