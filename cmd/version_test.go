package cmd

import (
	"bytes"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		expected string
	}{
		{
			name:     "release",
			version:  "0.4.0",
			expected: "uitest version 0.4.0\n",
		},
		{
			name:     "pre-release",
			version:  "1.0.0-rc.1",
			expected: "uitest version 1.0.0-rc.1\n",
		},
		{
			name:     "unset",
			version:  "",
			expected: "uitest version \n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := rootCmd.Version
			defer func() { rootCmd.Version = original }()
			SetVersion(tt.version)

			versionCmd := newVersionCmd()
			var out bytes.Buffer
			versionCmd.SetOut(&out)
			versionCmd.SetArgs([]string{})

			if err := versionCmd.Execute(); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if out.String() != tt.expected {
				t.Errorf("Expected output %q, got %q", tt.expected, out.String())
			}
		})
	}
}

func TestVersionCommandRejectsArguments(t *testing.T) {
	versionCmd := newVersionCmd()
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.SetErr(&out)
	versionCmd.SetArgs([]string{"latest"})

	if err := versionCmd.Execute(); err == nil {
		t.Error("Expected an error for an unexpected argument")
	}
}
