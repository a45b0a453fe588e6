package tracer

import (
	"context"

	"adorder-be/internal/pkg/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

const serviceName = "adorder-backend"

// InitTracer installs an OTLP HTTP trace exporter as the global provider.
// When tracing is disabled, or the exporter cannot be built, it returns a
// no-op shutdown function and otelfiber spans go nowhere.
func InitTracer(enabled bool, endpoint string, log logger.ILogger) func(context.Context) error {
	noop := func(context.Context) error { return nil }
	if !enabled {
		log.Info("TRACER", "OpenTelemetry tracing is disabled", nil)
		return noop
	}

	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		log.Warn("TRACER", "Failed to create OTLP exporter, tracing disabled", map[string]interface{}{"error": err.Error()})
		return noop
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		)),
	)

	otel.SetTracerProvider(tp)
	log.Info("TRACER", "OpenTelemetry tracer initialized", map[string]interface{}{"endpoint": endpoint})

	return tp.Shutdown
}
