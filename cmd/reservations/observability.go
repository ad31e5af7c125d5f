package main

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/book-reservations-go/reservationstore/oteladapters"
	"github.com/AntonStoeckl/book-reservations-go/shell/config"
)

const instrumentationName = "book-reservations-cli"

// observability bundles the OpenTelemetry adapters, all nil if no OTLP endpoint is configured.
type observability struct {
	providers        *config.ObservabilityProviders
	metricsCollector *oteladapters.MetricsCollector
	tracingCollector *oteladapters.TracingCollector
	contextualLogger *oteladapters.SlogBridgeLogger
}

func setUpObservability(ctx context.Context) (observability, error) {
	endpoint, ok := config.OTLPEndpoint()
	if !ok {
		return observability{}, nil
	}

	providers, err := config.NewObservabilityProviders(ctx, endpoint)
	if err != nil {
		return observability{}, err
	}

	return observability{
		providers:        providers,
		metricsCollector: oteladapters.NewMetricsCollector(otel.Meter(instrumentationName)),
		tracingCollector: oteladapters.NewTracingCollector(otel.Tracer(instrumentationName)),
		contextualLogger: oteladapters.NewSlogBridgeLogger(instrumentationName),
	}, nil
}

func (o observability) enabled() bool {
	return o.providers != nil
}

func (o observability) shutdown(ctx context.Context, logger *slog.Logger) {
	if !o.enabled() {
		return
	}

	if err := o.providers.Shutdown(context.WithoutCancel(ctx)); err != nil {
		logger.Warn("shutting down observability providers failed", "error", err.Error())
	}
}
