package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LevelException, "EXCEPTION"},
		{LogLevel(999), "UNKNOWN"},
	}

	for _, test := range tests {
		result := test.level.String()
		if result != test.expected {
			t.Errorf("LogLevel(%d).String() = %s, expected %s", test.level, result, test.expected)
		}
	}
}

func TestLogLevel_SlogLevel(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{LevelException, slog.LevelError + 4},
		{LogLevel(999), slog.LevelInfo}, // Default for unknown
	}

	for _, test := range tests {
		result := test.level.SlogLevel()
		if result != test.expected {
			t.Errorf("LogLevel(%d).SlogLevel() = %v, expected %v", test.level, result, test.expected)
		}
	}
}

func TestLogLevel_IsFailure(t *testing.T) {
	if LevelWarn.IsFailure() {
		t.Error("warnings must not count as failures")
	}
	if !LevelError.IsFailure() || !LevelException.IsFailure() {
		t.Error("error and exception levels must count as failures")
	}
}

func TestInitForCLI(t *testing.T) {
	var buf bytes.Buffer

	InitForCLI(LevelInfo, &buf)

	if defaultLogger == nil {
		t.Error("Expected defaultLogger to be set after InitForCLI")
	}

	Info("test-subsystem", "test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Error("Expected log message to appear in CLI output")
	}

	if !strings.Contains(output, "test-subsystem") {
		t.Error("Expected subsystem to appear in CLI output")
	}
}

func TestCLILevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	InitForCLI(LevelInfo, &buf)

	Debug("test", "debug message")
	Info("test", "info message")

	output := buf.String()
	if strings.Contains(output, "debug message") {
		t.Error("Debug message should be filtered out at INFO level")
	}

	if !strings.Contains(output, "info message") {
		t.Error("Info message should appear at INFO level")
	}
}

func TestFilteredEntriesStillReachStream(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelError, &buf)

	var got []LogEntry
	unsubscribe := DefaultStream().Subscribe(func(e LogEntry) { got = append(got, e) })
	defer unsubscribe()

	Debug("test", "quiet %d", 1)
	Warn("test", "loud")

	if len(got) != 2 {
		t.Fatalf("expected 2 entries on the stream, got %d", len(got))
	}
	if got[0].Message != "quiet 1" || got[0].StackTrace != "" {
		t.Errorf("unexpected debug entry: %+v", got[0])
	}
	if got[1].StackTrace == "" {
		t.Error("warnings should carry a stack trace")
	}
	if !strings.Contains(got[1].StackTrace, "TestFilteredEntriesStillReachStream") {
		t.Errorf("stack trace should start at the caller, got:\n%s", got[1].StackTrace)
	}
	if buf.Len() != 0 {
		t.Errorf("console output should be filtered, got %q", buf.String())
	}
}

func TestLogEntry_Text(t *testing.T) {
	tests := []struct {
		name     string
		entry    LogEntry
		expected string
	}{
		{"message only", LogEntry{Message: "boom"}, "boom"},
		{"error only", LogEntry{Err: errors.New("cause")}, "cause"},
		{"both", LogEntry{Message: "boom", Err: errors.New("cause")}, "boom: cause"},
	}

	for _, test := range tests {
		if got := test.entry.Text(); got != test.expected {
			t.Errorf("%s: Text() = %q, expected %q", test.name, got, test.expected)
		}
	}
}
