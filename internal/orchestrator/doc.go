// Package orchestrator runs UI test fixtures on a cooperative, tick-driven
// scheduler.
//
// A Runner discovers fixtures from a fixture.Catalog and executes their
// tests strictly one at a time. Every test gets a fresh fixture instance
// whose dependencies are injected from the component registry. The test
// then walks through four phases:
//
//  1. Setup: every setup operation in order. The first one that aborts
//     skips the rest.
//  2. Body: the test operation itself.
//  3. Teardown: every teardown operation, even after a failure, followed by
//     Close when the fixture implements io.Closer.
//  4. Done: the report is finalized and handed to the aggregator.
//
// # Scheduling
//
// Operations never block the host. Each operation runs as a coroutine and
// suspends at T.Yield and T.WaitFor; the scheduler resumes it on a later
// tick. Call Tick from the host's frame loop, or let Run drive it from a
// ticker.
//
// A wait checks its condition immediately and then every PollTicks ticks
// until it holds or the timeout, measured on the runner's clock, has elapsed.
// A timeout fails the test with the condition's description and aborts the
// operation:
//
//	Operation timed out: LabelTextAppeared(status, "Connected") (timeout 2s)
//
// # Failure capture
//
// While a test runs, the runner subscribes to the diagnostic stream. Every
// entry is written to the test's log, and any error-level entry that is not
// recognized host noise fails the test. Failures recorded through T, panics
// in operations or conditions and timeouts are handled the same way. Only
// the first failure of a test is kept; later ones are still logged.
//
// # Cancellation
//
// Cancel, or a done context passed to Run, fails the in-flight test with
// ErrRunCancelled, still runs its teardown and renders the summary. Tests
// that had not started are not reported.
//
// # Observers
//
// Observer receives progress events. TracingObserver turns them into
// OpenTelemetry spans; other packages add console progress and metrics.
package orchestrator
