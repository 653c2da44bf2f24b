// Package telemetry configura trazas (OpenTelemetry + Jaeger) y métricas Prometheus.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/jhoicas/taller-inventario/pkg/logger"
)

// ShutdownFunc vacía y cierra el exportador de trazas.
type ShutdownFunc func(ctx context.Context) error

// InitTracerProvider registra un TracerProvider global que exporta a Jaeger.
// Sin endpoint no se registra nada y las trazas quedan en el proveedor no-op de otel.
func InitTracerProvider(serviceName, jaegerEndpoint string, log *logger.Logger) (ShutdownFunc, error) {
	if jaegerEndpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(jaegerEndpoint)))
	if err != nil {
		return nil, fmt.Errorf("exportador jaeger: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	if log != nil {
		log.Info().Str("service", serviceName).Str("endpoint", jaegerEndpoint).Msg("trazas habilitadas")
	}
	return tp.Shutdown, nil
}
