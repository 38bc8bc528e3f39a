// Package app provides application bootstrap and run wiring for uitest.
//
// # Architecture Overview
//
//  1. **Configuration (`config.go`)**: command line settings, overrides and
//     the fixture suite to run
//  2. **Bootstrap (`bootstrap.go`)**: logging setup, configuration loading and
//     validation, and the Run entry point
//  3. **Services (`services.go`)**: per-run construction of the registry,
//     catalog, report aggregator, observers and runner
//  4. **Progress (`progress.go`)**: terminal spinner naming the running test
//  5. **Tracing (`tracing.go`)**: OpenTelemetry provider exporting spans to a
//     file
//
// # Run Lifecycle
//
// NewApplication loads the YAML configuration once. Every call to Run then
// builds fresh Services, so watch mode and the MCP server can run the suite
// repeatedly without leaking components between runs:
//
//	cfg := app.NewConfig(false, true, "uitest.yaml")
//	cfg.Filter = "UITestExample"
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("bootstrap failed: %w", err)
//	}
//	summary, err := application.Run(ctx)
//
// After the runner finishes, Services.Close writes the optional outputs:
// report.json (jsonReport), the Prometheus textfile (metricsFile) and the
// trace file (traceFile). Output failures are logged and never change the
// run's verdict.
//
// # Exit Semantics
//
// Run returns ErrTestsFailed when any test failed or none ran, and the
// runner's error when the run was aborted or cancelled. The summary is
// returned in every case.
package app
