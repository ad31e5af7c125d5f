// Package oteladapters provides OpenTelemetry implementations of the reservationstore observability interfaces.
//
// The same adapters serve the postgres engine and the observable command and query wrappers in shell/observable,
// so one MeterProvider, TracerProvider and LoggerProvider cover the whole request path:
//
//	meter := otel.GetMeterProvider().Meter("book-reservations")
//	tracer := otel.GetTracerProvider().Tracer("book-reservations")
//
//	engine, err := postgresengine.NewEngineFromPGXPool(pool,
//		postgresengine.WithMetrics(oteladapters.NewMetricsCollector(meter)),
//		postgresengine.WithTracing(oteladapters.NewTracingCollector(tracer)),
//		postgresengine.WithContextualLogger(oteladapters.NewSlogBridgeLogger("book-reservations")),
//	)
package oteladapters
