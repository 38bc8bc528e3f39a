// Package logging provides the structured logging system for uitest with
// unified log handling and a subscribable entry stream.
//
// This package implements a logging system built on Go's standard slog package,
// providing consistent console output with level filtering, plus a Stream that
// delivers every entry to in-process subscribers regardless of the console
// filter.
//
// # Log Levels
//
//   - **Debug**: Detailed information for debugging and development
//   - **Info**: General informational messages about test progress
//   - **Warn**: Warning messages that indicate potential issues
//   - **Error**: Error messages for failures
//   - **Exception**: Unexpected failures raised by the code under test
//
// Entries at Warn and above carry the stack of the logging call site.
//
// # Usage Examples
//
//	logging.InitForCLI(logging.LevelInfo, os.Stdout)
//
//	logging.Info("Orchestrator", "TEST STARTED: %s", name)
//	logging.Error("Demo", err, "Request failed")
//
// # Streams
//
// The orchestrator subscribes to a stream while a test runs so that every
// entry lands in the test's log, and error-level entries fail the test:
//
//	unsubscribe := logging.DefaultStream().Subscribe(func(e logging.LogEntry) {
//	    sink.Write(e)
//	})
//	defer unsubscribe()
//
// Handlers run synchronously on the publishing goroutine. They may publish or
// unsubscribe from inside the callback.
package logging
