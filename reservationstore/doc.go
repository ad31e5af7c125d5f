// Package reservationstore provides the storage-side abstractions shared by the
// reservation store engines (postgresengine, memoryengine).
//
// This package defines:
//   - dependency-free observability interfaces (Logger, ContextualLogger, MetricsCollector,
//     ContextualMetricsCollector, TracingCollector, SpanContext) which the engines call
//     when configured and which oteladapters implements with OpenTelemetry
//   - StorableEvent, the scalar DTO used to write domain events to the reservation journal
//   - common sentinel errors, e.g. ErrConcurrencyConflict for optimistic version checks
//
// Common usage pattern:
//
//	engine, err := postgresengine.NewEngineFromPGXPool(pool, postgresengine.WithLogger(logger))
//	if err != nil {
//		// handle error
//	}
//
//	err = engine.InTransaction(ctx, func(ctx context.Context, repos shell.Repositories) error {
//		// read and write through repos, everything is rolled back if an error is returned
//	})
package reservationstore
