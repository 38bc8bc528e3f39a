package app

import (
	"context"
	"errors"
	"os"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName = "uitest"
	tracerName  = "github.com/giantswarm/uitest"
)

type tracing struct {
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
	file     *os.File
}

// setupTracing exports the run's spans as JSON to path. The provider is kept
// local to the run; the global one is left alone.
func setupTracing(ctx context.Context, path string) (*tracing, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(f))
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	return &tracing{
		tracer:   tp.Tracer(tracerName),
		provider: tp,
		file:     f,
	}, nil
}

func (t *tracing) shutdown(ctx context.Context) error {
	return errors.Join(t.provider.Shutdown(ctx), t.file.Close())
}
