// Package config provides configuration management for uitest.
//
// Configuration is read from a single YAML file, uitest.yaml in the working
// directory by default. A custom file can be given with the --config flag.
// A missing file is not an error: the defaults from GetDefaultConfig are
// used, and command line flags override whatever the file sets.
//
// # File Format
//
//	filter: Screens
//	outputDir: 'test-report/{{ env "CI_JOB_ID" | default "local" }}'
//	waitTimeout: 2s
//	pollTicks: 10
//	tickInterval: 16ms
//	hostNoise:
//	  - "Shader warmup"
//	jsonReport: true
//	metricsFile: test-report/uitest.prom
//	traceFile: test-report/traces.json
//	color: true
//
// # Output Directory Templates
//
// outputDir is rendered with text/template and the sprig function map, so
// CI pipelines can separate the reports of concurrent jobs without a
// wrapper script.
//
// # Errors
//
// Read, parse and validation failures are returned as *ConfigurationError,
// which carries the offending file, the kind of failure and suggestions for
// fixing it. DetailedError renders all of it for the console.
package config
