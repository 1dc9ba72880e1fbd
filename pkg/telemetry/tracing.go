package telemetry

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// DefaultEndpoint — OTLP/HTTP коллектор по умолчанию.
const DefaultEndpoint = "localhost:4318"

// Config — параметры экспорта трейсов витрины.
type Config struct {
	ServiceName string
	Endpoint    string
	SampleRatio float64
	// Namespace кэша попадает в ресурс, чтобы различать инстансы витрины.
	CacheNamespace string
}

// Shutdown — завершение провайдера трейсинга.
type Shutdown func(context.Context) error

// SetupTracing настраивает OTLP/HTTP экспорт, семплинг и глобальные пропагаторы.
func SetupTracing(ctx context.Context, cfg Config) (Shutdown, error) {
	endpoint := normalizeEndpoint(cfg.Endpoint)

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(Sampler(cfg.SampleRatio)),
		sdktrace.WithResource(Resource(cfg)),
	)

	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{},
		),
	)

	return traceProvider.Shutdown, nil
}

// Sampler — родительский семплер с долей [0..1] для корневых спанов.
func Sampler(ratio float64) sdktrace.Sampler {
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(clampRatio(ratio)))
}

// Resource — атрибуты сервиса для всех спанов.
func Resource(cfg Config) *resource.Resource {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "wildink-storefront"
	}
	attrs := []attribute.KeyValue{
		semconv.ServiceName(name),
		attribute.String("telemetry.sdk", "opentelemetry"),
	}
	if cfg.CacheNamespace != "" {
		attrs = append(attrs, attribute.String("wildink.cache.namespace", cfg.CacheNamespace))
	}
	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}

// -----------------функции-помощники-----------------

func clampRatio(r float64) float64 {
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}

// otlptracehttp ждёт host:port без схемы
func normalizeEndpoint(endpoint string) string {
	e := strings.TrimSpace(endpoint)
	e = strings.TrimPrefix(e, "http://")
	e = strings.TrimPrefix(e, "https://")
	e = strings.TrimSuffix(e, "/")
	if e == "" {
		return DefaultEndpoint
	}
	return e
}
