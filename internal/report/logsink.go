package report

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/giantswarm/uitest/pkg/logging"
)

// LogSink captures the diagnostic log of one test. Lines are kept in memory
// and mirrored to a file when one could be opened.
type LogSink struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	buf    bytes.Buffer
	err    error
	closed bool
}

func openLogSink(path string) *LogSink {
	s := &LogSink{path: path}
	if path == "" {
		return s
	}
	f, err := os.Create(path)
	if err != nil {
		s.err = fmt.Errorf("opening test log: %w", err)
		return s
	}
	s.file = f
	return s
}

// Write appends one entry as "HH:mm:ss.fff LEVEL     : message". Entries above
// informational severity are followed by their stack trace.
func (s *LogSink) Write(e logging.LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	line := fmt.Sprintf("%s %-10s: %s\n", e.Timestamp.Format("15:04:05.000"), e.Level, e.Text())
	if e.Level >= logging.LevelWarn && e.StackTrace != "" {
		line += e.StackTrace + "\n"
	}

	s.buf.WriteString(line)
	if s.file != nil && s.err == nil {
		if _, err := s.file.WriteString(line); err != nil {
			s.err = fmt.Errorf("writing test log: %w", err)
		}
	}
}

// Close closes the backing file. The in-memory copy stays readable.
func (s *LogSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.file == nil {
		return s.err
	}
	if err := s.file.Close(); err != nil && s.err == nil {
		s.err = fmt.Errorf("closing test log: %w", err)
	}
	return s.err
}

// String returns everything written so far.
func (s *LogSink) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

// Path returns the backing file path, empty for memory-only sinks.
func (s *LogSink) Path() string {
	return s.path
}

// Err returns the first file error, if any.
func (s *LogSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
