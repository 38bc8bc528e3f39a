package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/giantswarm/uitest/internal/fixture"
	"github.com/giantswarm/uitest/internal/metrics"
	"github.com/giantswarm/uitest/internal/orchestrator"
	"github.com/giantswarm/uitest/internal/registry"
	"github.com/giantswarm/uitest/internal/report"
	"github.com/giantswarm/uitest/pkg/logging"
)

// Services holds everything one run needs.
//
// Field descriptions:
//   - Registry: component registry the fixtures are injected from
//   - Catalog: the suite's fixtures
//   - Reports: aggregator collecting the results
//   - Runner: the scheduler executing the tests
//   - Metrics: Prometheus recorder observing the run
type Services struct {
	Registry *registry.Registry
	Catalog  *fixture.Catalog
	Reports  *report.Aggregator
	Runner   *orchestrator.Runner
	Metrics  *metrics.Recorder

	jsonReport  bool
	metricsFile string
	tracing     *tracing
}

// InitializeServices wires a run from cfg. Every call starts from an empty
// registry so no component survives from an earlier run.
//
// Initialization Sequence:
//  1. **Registry**: fresh registry with the suite's host components bound
//  2. **Catalog**: the suite's fixtures
//  3. **Aggregator**: output directory rendered from the configuration
//  4. **Observers**: metrics, optional tracing, optional progress spinner
//  5. **Runner**: the scheduler driving the host's frame update
func InitializeServices(ctx context.Context, cfg *Config) (*Services, error) {
	if cfg.UITestConfig == nil {
		return nil, errors.New("configuration not loaded")
	}
	uiCfg := cfg.UITestConfig

	reg := registry.New()
	hostUpdate, err := cfg.Suite.Register(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to register host components: %w", err)
	}

	catalog := fixture.NewCatalog()
	if err := catalog.Register(cfg.Suite.Fixtures...); err != nil {
		return nil, fmt.Errorf("failed to register fixtures: %w", err)
	}

	outputDir, err := uiCfg.RenderOutputDir()
	if err != nil {
		return nil, fmt.Errorf("failed to render output directory: %w", err)
	}
	reports := report.NewAggregator(report.Options{
		OutputDir: outputDir,
		Color:     uiCfg.Color,
	})

	recorder := metrics.NewRecorder()
	observers := orchestrator.Observers{recorder}

	var tr *tracing
	if uiCfg.TraceFile != "" {
		tr, err = setupTracing(ctx, uiCfg.TraceFile)
		if err != nil {
			return nil, fmt.Errorf("failed to set up tracing: %w", err)
		}
		observers = append(observers, orchestrator.NewTracingObserver(tr.tracer))
	}
	if cfg.Progress {
		observers = append(observers, newProgressObserver(cfg.Output))
	}

	runner, err := orchestrator.New(orchestrator.Options{
		Catalog:      catalog,
		Registry:     reg,
		Reports:      reports,
		Filter:       uiCfg.Filter,
		WaitTimeout:  uiCfg.WaitTimeout,
		PollTicks:    uiCfg.PollTicks,
		TickInterval: uiCfg.TickInterval,
		HostNoise:    uiCfg.HostNoise,
		HostUpdate:   hostUpdate,
		Observer:     observers,
		Output:       cfg.Output,
	})
	if err != nil {
		if tr != nil {
			_ = tr.shutdown(ctx)
		}
		return nil, err
	}

	logging.Debug("Services", "Run %s writes to %q", reports.RunID(), outputDir)

	return &Services{
		Registry:    reg,
		Catalog:     catalog,
		Reports:     reports,
		Runner:      runner,
		Metrics:     recorder,
		jsonReport:  uiCfg.JSONReport,
		metricsFile: uiCfg.MetricsFile,
		tracing:     tr,
	}, nil
}

// Close writes the optional outputs of a finished run, flushes the trace
// exporter and disposes the run's components. Every step is attempted; the
// failures are joined.
func (s *Services) Close(ctx context.Context) error {
	var errs []error

	if s.jsonReport {
		path, err := s.Reports.WriteJSON()
		if err != nil {
			errs = append(errs, err)
		} else {
			logging.Info("Services", "JSON report written to %s", path)
		}
	}
	if s.metricsFile != "" {
		if err := s.Metrics.WriteTextfile(s.metricsFile); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics: %w", err))
		}
	}
	if s.tracing != nil {
		if err := s.tracing.shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to flush traces: %w", err))
		}
	}
	if err := s.Registry.Reset(); err != nil {
		errs = append(errs, fmt.Errorf("failed to dispose components: %w", err))
	}
	return errors.Join(errs...)
}
