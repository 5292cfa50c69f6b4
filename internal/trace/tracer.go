// Package trace instruments layout operations with OpenTelemetry spans. Every
// tree mutation the shell applies becomes one span carrying the operation
// name, the resulting pane/editor counts, and whether the request was
// rejected. Export is opt-in: without OTEL_EXPORTER_OTLP_ENDPOINT the tracer
// is a no-op and the shell pays nothing.
package trace

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Tracer records layout operations. The zero value and a nil pointer are
// valid no-op tracers.
type Tracer struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
	enabled  bool
}

// New creates a Tracer exporting to OTLP over HTTP if
// OTEL_EXPORTER_OTLP_ENDPOINT is set, and a disabled one otherwise.
func New(ctx context.Context) (*Tracer, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return &Tracer{}, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(), // For local dev; make configurable
	)
	if err != nil {
		return nil, err
	}

	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "edshell"
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	return &Tracer{
		provider: provider,
		tracer:   provider.Tracer("edshell/layout"),
		enabled:  true,
	}, nil
}

// RecordOp records one completed layout mutation. Pane and editor counts
// describe the state the operation produced; opErr marks rejected requests.
func (t *Tracer) RecordOp(ctx context.Context, op string, panes, editors int, opErr error) {
	if t == nil || !t.enabled {
		return
	}
	_, span := t.tracer.Start(ctx, op)
	span.SetAttributes(
		attribute.Int("layout.panes", panes),
		attribute.Int("layout.editors", editors),
	)
	if opErr != nil {
		span.SetStatus(codes.Error, opErr.Error())
	}
	span.End()
}

// Shutdown flushes pending spans. Safe on a disabled tracer.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
