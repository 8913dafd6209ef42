package observability

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	autosdk "go.opentelemetry.io/auto/sdk"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"lazverb/internal/config"
)

func testOtelConfig() *config.OpenTelemetryConfig {
	return &config.OpenTelemetryConfig{
		ServiceName:    "test-service",
		ServiceVersion: "1.0.0",
		Protocol:       "grpc",
		Endpoint:       "localhost:4317",
		Insecure:       true,
		SamplingRate:   1.0,
	}
}

func restoreGlobalProviders(t *testing.T) {
	t.Helper()
	tp, mp := otel.GetTracerProvider(), otel.GetMeterProvider()
	t.Cleanup(func() {
		otel.SetTracerProvider(tp)
		otel.SetMeterProvider(mp)
	})
}

func TestSetupObservability_AllEnabled(t *testing.T) {
	restoreGlobalProviders(t)
	cfg := testOtelConfig()
	cfg.EnableTracing, cfg.EnableMetrics, cfg.EnableLogging = true, true, true

	telemetry, err := SetupObservability(cfg, "lazverb-test", "debug")
	require.NoError(t, err)
	require.NotNil(t, telemetry.TracerProvider)
	require.NotNil(t, telemetry.MeterProvider)
	require.NotNil(t, telemetry.Logger)
	assert.Equal(t, "lazverb-test", cfg.ServiceName)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = telemetry.Shutdown(ctx)
}

func TestSetupObservability_NoneEnabled(t *testing.T) {
	telemetry, err := SetupObservability(testOtelConfig(), "", "info")
	require.NoError(t, err)
	assert.Nil(t, telemetry.TracerProvider)
	assert.Nil(t, telemetry.MeterProvider)
	require.NotNil(t, telemetry.Logger)
	assert.NoError(t, telemetry.Shutdown(context.Background()))
}

func TestSetupObservability_UseAutoSDK(t *testing.T) {
	restoreGlobalProviders(t)
	cfg := testOtelConfig()
	cfg.EnableTracing = true
	cfg.UseAutoSDK = true

	telemetry, err := SetupObservability(cfg, "test-service", "info")
	require.NoError(t, err)
	_, isStandardSDK := telemetry.TracerProvider.(*sdktrace.TracerProvider)
	assert.False(t, isStandardSDK)
	assert.Equal(t, reflect.TypeOf(autosdk.TracerProvider()), reflect.TypeOf(telemetry.TracerProvider))
}

func TestSetupObservability_StandardSDK(t *testing.T) {
	restoreGlobalProviders(t)
	cfg := testOtelConfig()
	cfg.EnableTracing = true

	telemetry, err := SetupObservability(cfg, "test-service", "info")
	require.NoError(t, err)
	_, isStandardSDK := telemetry.TracerProvider.(*sdktrace.TracerProvider)
	assert.True(t, isStandardSDK)
}

func TestSetupObservability_InvalidProtocol(t *testing.T) {
	restoreGlobalProviders(t)
	cfg := testOtelConfig()
	cfg.EnableMetrics = true
	cfg.Protocol = "carrier-pigeon"

	_, err := SetupObservability(cfg, "test-service", "info")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported otel protocol")
}

func TestInitStandardTracing(t *testing.T) {
	for _, protocol := range []string{"grpc", "http"} {
		t.Run(protocol, func(t *testing.T) {
			cfg := testOtelConfig()
			cfg.Protocol = protocol
			tp, err := InitStandardTracing(cfg)
			require.NoError(t, err)
			_, ok := tp.(*sdktrace.TracerProvider)
			assert.True(t, ok)
		})
	}

	cfg := testOtelConfig()
	cfg.Protocol = "invalid"
	tp, err := InitStandardTracing(cfg)
	require.Error(t, err)
	assert.Nil(t, tp)
	assert.Contains(t, err.Error(), "unsupported otel protocol")
}

func TestInitMetrics(t *testing.T) {
	for _, protocol := range []string{"grpc", "http"} {
		cfg := testOtelConfig()
		cfg.Protocol = protocol
		mp, err := InitMetrics(cfg)
		require.NoError(t, err, protocol)
		require.NotNil(t, mp)
	}
}

func TestTraceFunctionWithErrorHandling(t *testing.T) {
	recorder := setupRecordingTracer(t)
	InitGlobalTracer()
	t.Cleanup(func() { globalTracer = nil })

	sentinel := errors.New("dictionary unreadable")
	err := TraceFunctionWithErrorHandling(context.Background(), "dictionary", "reload", func(ctx context.Context) error {
		return sentinel
	}, AttributeInfinitive("oç̌aru"))
	require.ErrorIs(t, err, sentinel)

	require.NoError(t, TraceFunctionWithErrorHandling(context.Background(), "dictionary", "load", func(context.Context) error {
		return nil
	}))

	assert.Panics(t, func() {
		_ = TraceFunctionWithErrorHandling(context.Background(), "dictionary", "panic", func(context.Context) error {
			panic("boom")
		})
	})

	spans := recorder.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, "dictionary.reload", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "oç̌aru", spanAttributes(spans[0])["verb.infinitive"])
	assert.NotEqual(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "panic", spanAttributes(spans[2])["error.type"])
}

func TestFinishSpanRecordsError(t *testing.T) {
	recorder := setupRecordingTracer(t)
	InitGlobalTracer()
	t.Cleanup(func() { globalTracer = nil })

	_, span := TraceConjugationFunction(context.Background(), "conjugate", AttributeCategory("present"))
	err := errors.New("failed")
	FinishSpan(span, &err)
	FinishSpan(nil, &err)

	require.Len(t, recorder.Ended(), 1)
	assert.Equal(t, "conjugation.conjugate", recorder.Ended()[0].Name())
	assert.Equal(t, codes.Error, recorder.Ended()[0].Status().Code)
	assert.Equal(t, "present", spanAttributes(recorder.Ended()[0])["conjugation.category"])
}

func TestConjugationMetrics(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	m := NewConjugationMetrics(provider.Meter("test"))

	ctx := context.Background()
	m.RecordConjugation(ctx, "present", "ok", 6, 3*time.Millisecond)
	m.RecordConjugation(ctx, "present", "empty", 0, time.Millisecond)
	m.RecordReload(ctx, true)
	m.RecordReload(ctx, false)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	sums := map[string]int64{}
	for _, md := range rm.ScopeMetrics[0].Metrics {
		if sum, ok := md.Data.(metricdata.Sum[int64]); ok {
			for _, dp := range sum.DataPoints {
				sums[md.Name] += dp.Value
			}
		}
	}
	assert.Equal(t, int64(2), sums["lazverb.conjugations"])
	assert.Equal(t, int64(6), sums["lazverb.conjugation.forms"])
	assert.Equal(t, int64(2), sums["lazverb.dictionary.reloads"])

	var nilMetrics *ConjugationMetrics
	assert.NotPanics(t, func() { nilMetrics.RecordConjugation(ctx, "present", "ok", 1, 0) })
}
