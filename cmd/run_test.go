package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/giantswarm/uitest/internal/app"
)

func TestRunCommandFlags(t *testing.T) {
	runCmd := newRunCmd()

	for _, name := range []string{"config", "filter", "output", "verbose", "debug", "silent", "progress", "watch"} {
		if runCmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected flag --%s to be defined", name)
		}
	}

	if runCmd.RunE == nil {
		t.Error("Expected RunE function to be set")
	}
}

func TestRunCommandExecution(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name        string
		filter      string
		expectErr   error
		expectInOut string
	}{
		{
			name:        "passing test",
			filter:      "SecondScreen",
			expectInOut: "ALL UI TESTS PASSED",
		},
		{
			name:        "nothing selected",
			filter:      "does-not-exist",
			expectErr:   app.ErrTestsFailed,
			expectInOut: "NO UI TESTS EXECUTED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runCmd := newRunCmd()
			var buf bytes.Buffer
			runCmd.SetOut(&buf)
			runCmd.SetErr(&buf)
			runCmd.SetArgs([]string{
				"--config", filepath.Join(dir, "missing.yaml"),
				"--output", filepath.Join(t.TempDir(), "report"),
				"--filter", tt.filter,
				"--silent",
			})

			err := runCmd.Execute()
			if tt.expectErr == nil && err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tt.expectErr != nil && !errors.Is(err, tt.expectErr) {
				t.Fatalf("Expected error %v, got %v", tt.expectErr, err)
			}
			if !strings.Contains(buf.String(), tt.expectInOut) {
				t.Errorf("Expected output to contain %q. Got: %q", tt.expectInOut, buf.String())
			}
		})
	}
}

func TestRunCommandRejectsVerboseWithSilent(t *testing.T) {
	runCmd := newRunCmd()
	var buf bytes.Buffer
	runCmd.SetOut(&buf)
	runCmd.SetErr(&buf)
	runCmd.SetArgs([]string{"--verbose", "--silent"})

	if err := runCmd.Execute(); err == nil {
		t.Error("Expected an error for --verbose together with --silent")
	}
}

func TestListCommand(t *testing.T) {
	listCmd := newListCmd()
	var buf bytes.Buffer
	listCmd.SetOut(&buf)
	listCmd.SetArgs([]string{"--output", "console", "--filter", "screen"})

	if err := listCmd.Execute(); err != nil {
		t.Fatalf("Error executing list: %v", err)
	}

	expected := "UITestExample.SecondScreenCanBeOpenedFromTheFirstOne\n" +
		"UITestExample.SuccessfulNetworkResponseIsDisplayedOnTheFirstScreen\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestListCommandRejectsUnknownFormat(t *testing.T) {
	listCmd := newListCmd()
	var buf bytes.Buffer
	listCmd.SetOut(&buf)
	listCmd.SetErr(&buf)
	listCmd.SetArgs([]string{"--output", "xml"})

	if err := listCmd.Execute(); err == nil {
		t.Error("Expected an error for an unknown format")
	}
}
