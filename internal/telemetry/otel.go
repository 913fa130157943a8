// Package telemetry wires OpenTelemetry tracing to Langfuse.
package telemetry

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/blaisecz/health-trends/internal/config"
	"github.com/blaisecz/health-trends/internal/logger"
)

// InitTracer installs the global tracer provider and W3C trace-context
// propagator. Spans are exported to Langfuse over OTLP/HTTP; without Langfuse
// credentials only the propagator is installed and the returned shutdown is
// a no-op.
func InitTracer(ctx context.Context, cfg *config.Config, serviceName string) (func(context.Context) error, error) {
	log := logger.GetLogger().WithComponent("telemetry")
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if cfg.LangfuseBaseURL == "" || cfg.LangfusePublicKey == "" || cfg.LangfuseSecretKey == "" {
		log.Info("tracing disabled")
		return func(context.Context) error { return nil }, nil
	}

	endpoint := strings.TrimSuffix(cfg.LangfuseBaseURL, "/") + "/api/public/otel/v1/traces"
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(endpoint),
		otlptracehttp.WithHeaders(map[string]string{
			"Authorization": "Basic " + basicAuth(cfg.LangfusePublicKey, cfg.LangfuseSecretKey),
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("deployment.environment", cfg.LangfuseEnv),
			attribute.String("langfuse.environment", cfg.LangfuseEnv),
			attribute.String("health.provider_mode", cfg.ProviderMode),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	ratio := SampleRatio(cfg.TraceSampleRatio)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	)
	otel.SetTracerProvider(tp)

	log.WithFields(logger.Fields{"endpoint": endpoint, "service": serviceName, "sample_ratio": ratio}).Info("tracing enabled")
	return tp.Shutdown, nil
}

// SampleRatio clamps a configured ratio to [0, 1]; out-of-range values mean
// "sample everything".
func SampleRatio(r float64) float64 {
	if r < 0 || r > 1 {
		return 1
	}
	return r
}

func basicAuth(user, pass string) string {
	return base64.StdEncoding.EncodeToString([]byte(user + ":" + pass))
}
