package observability

import (
	"context"
	"errors"
	"os"

	autosdk "go.opentelemetry.io/auto/sdk"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"lazverb/internal/config"
)

// Telemetry bundles the providers a process installs at startup
type Telemetry struct {
	TracerProvider trace.TracerProvider
	MeterProvider  *metric.MeterProvider
	Logger         *Logger
}

// SetupObservability installs tracing and metrics providers globally according to cfg and returns
// them with a logger at logLevel. Disabled signals leave their provider nil; the logger is never nil.
func SetupObservability(cfg *config.OpenTelemetryConfig, serviceName, logLevel string) (*Telemetry, error) {
	if serviceName != "" {
		cfg.ServiceName = serviceName
	}
	if err := os.Setenv("OTEL_SERVICE_NAME", cfg.ServiceName); err != nil {
		return nil, err
	}
	if err := os.Setenv("OTEL_SERVICE_VERSION", cfg.ServiceVersion); err != nil {
		return nil, err
	}

	t := &Telemetry{Logger: NewLoggerWithLevel(cfg, ParseLevel(logLevel))}
	ctx := context.Background()

	if cfg.EnableTracing {
		if cfg.UseAutoSDK {
			t.TracerProvider = autosdk.TracerProvider()
		} else {
			tp, err := InitStandardTracing(cfg)
			if err != nil {
				return nil, err
			}
			t.TracerProvider = tp
		}
		otel.SetTracerProvider(t.TracerProvider)
		InitPropagation()
		InitGlobalTracer()
		t.Logger.Info(ctx, "Tracing enabled", map[string]interface{}{
			"service_name": cfg.ServiceName,
			"auto_sdk":     cfg.UseAutoSDK,
		})
	}

	if cfg.EnableMetrics {
		mp, err := InitMetrics(cfg)
		if err != nil {
			return nil, err
		}
		otel.SetMeterProvider(mp)
		t.MeterProvider = mp
	}

	return t, nil
}

// Shutdown flushes and stops every provider that was started
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if tp, ok := t.TracerProvider.(*sdktrace.TracerProvider); ok {
		errs = append(errs, tp.Shutdown(ctx))
	}
	if t.MeterProvider != nil {
		errs = append(errs, t.MeterProvider.Shutdown(ctx))
	}
	if t.Logger != nil {
		errs = append(errs, t.Logger.Sync(ctx))
	}
	return errors.Join(errs...)
}
