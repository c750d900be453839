// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// TelemetryConfig describes where spans go and how many are kept.
type TelemetryConfig struct {
	ServiceName    string
	Environment    string
	ZipkinEndpoint string
	SampleRatio    float64
}

func newTracerProvider(cfg TelemetryConfig, exporter sdktrace.SpanExporter) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("environment", cfg.Environment),
		)),
	)
}

// SetupTelemetry installs a Zipkin-exporting tracer provider and the B3 plus
// W3C propagators as the process globals. The returned function flushes and
// stops the provider.
func SetupTelemetry(cfg TelemetryConfig) (func(context.Context) error, error) {
	exporter, err := zipkin.New(cfg.ZipkinEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create zipkin exporter: %w", err)
	}

	tracerProvider := newTracerProvider(cfg, exporter)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		b3.New(),
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logrus.WithFields(logrus.Fields{
		"service":      cfg.ServiceName,
		"environment":  cfg.Environment,
		"endpoint":     cfg.ZipkinEndpoint,
		"sample_ratio": cfg.SampleRatio,
	}).Info("telemetry enabled")

	return func(ctx context.Context) error {
		if err := tracerProvider.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to stop tracer provider: %w", err)
		}
		logrus.Info("telemetry stopped")
		return nil
	}, nil
}
