// Package telemetry configures OpenTelemetry tracing for the gateway.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// tracerName identifies this instrumentation scope.
const tracerName = "github.com/gqlgate/gqlgate"

// ShutdownFunc flushes and stops the trace provider. Call it on exit.
type ShutdownFunc func(context.Context) error

// Init sets up the global trace provider. When enabled is false it installs
// a no-op provider and the returned shutdown does nothing. When enabled,
// spans are batched to a stdout exporter.
func Init(ctx context.Context, enabled bool, version string) (ShutdownFunc, error) {
	if !enabled {
		otel.SetTracerProvider(noop.NewTracerProvider())
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String("gqlgate"),
			semconv.ServiceVersionKey.String(version),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

// Tracer returns the gateway's tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartExecuteSpan opens the span covering one query execution.
func StartExecuteSpan(ctx context.Context, method string) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "query.execute",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attribute.String("gqlgate.http_method", method)),
	)
}
