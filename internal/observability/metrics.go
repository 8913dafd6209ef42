package observability

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"

	"lazverb/internal/config"
	contextutils "lazverb/internal/utils"
)

// InitMetrics builds an SDK MeterProvider exporting over OTLP grpc or http
func InitMetrics(cfg *config.OpenTelemetryConfig) (*metric.MeterProvider, error) {
	ctx := context.Background()

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to create otel resource: %w", err)
	}

	var exporter metric.Exporter
	switch cfg.Protocol {
	case "grpc":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.Endpoint), otlpmetricgrpc.WithHeaders(cfg.Headers)}
		if cfg.Insecure {
			opts = append(opts, otlpmetricgrpc.WithInsecure())
		}
		exp, err := otlpmetricgrpc.New(ctx, opts...)
		if err != nil {
			return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to create otlp grpc metric exporter: %w", err)
		}
		exporter = exp
	case "http":
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint), otlpmetrichttp.WithHeaders(cfg.Headers)}
		if cfg.Insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		exp, err := otlpmetrichttp.New(ctx, opts...)
		if err != nil {
			return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to create otlp http metric exporter: %w", err)
		}
		exporter = exp
	default:
		return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "unsupported otel protocol: %s", cfg.Protocol)
	}

	return metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(exporter)),
		metric.WithResource(res),
	), nil
}

// ConjugationMetrics holds the instruments recorded by the conjugation and dictionary services
type ConjugationMetrics struct {
	requests otelmetric.Int64Counter
	forms    otelmetric.Int64Counter
	duration otelmetric.Float64Histogram
	reloads  otelmetric.Int64Counter
}

var (
	metricsOnce   sync.Once
	globalMetrics *ConjugationMetrics
)

// GetConjugationMetrics returns the process-wide instruments, created from the global meter provider
// on first use
func GetConjugationMetrics() *ConjugationMetrics {
	metricsOnce.Do(func() {
		globalMetrics = NewConjugationMetrics(otel.GetMeterProvider().Meter(tracerName))
	})
	return globalMetrics
}

// NewConjugationMetrics creates the instruments on meter. Instrument errors fall back to no-op
// instruments from the same meter.
func NewConjugationMetrics(meter otelmetric.Meter) *ConjugationMetrics {
	m := &ConjugationMetrics{}
	m.requests, _ = meter.Int64Counter("lazverb.conjugations",
		otelmetric.WithDescription("Conjugation requests by outcome"))
	m.forms, _ = meter.Int64Counter("lazverb.conjugation.forms",
		otelmetric.WithDescription("Surface forms produced"))
	m.duration, _ = meter.Float64Histogram("lazverb.conjugation.duration",
		otelmetric.WithDescription("Conjugation latency"), otelmetric.WithUnit("ms"))
	m.reloads, _ = meter.Int64Counter("lazverb.dictionary.reloads",
		otelmetric.WithDescription("Dictionary reloads by outcome"))
	return m
}

// RecordConjugation records one request. outcome is "ok", "empty" or an error code.
func (m *ConjugationMetrics) RecordConjugation(ctx context.Context, category, outcome string, forms int, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("category", category),
		attribute.String("outcome", outcome),
	)
	m.requests.Add(ctx, 1, attrs)
	if m.forms != nil {
		m.forms.Add(ctx, int64(forms), otelmetric.WithAttributes(attribute.String("category", category)))
	}
	if m.duration != nil {
		m.duration.Record(ctx, float64(elapsed)/float64(time.Millisecond), attrs)
	}
}

// RecordReload records one dictionary reload attempt
func (m *ConjugationMetrics) RecordReload(ctx context.Context, ok bool) {
	if m == nil || m.reloads == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	m.reloads.Add(ctx, 1, otelmetric.WithAttributes(attribute.String("outcome", outcome)))
}
