package postgresengine

import (
	"github.com/AntonStoeckl/book-reservations-go/reservationstore"
)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine) error

// WithLogger sets the logger for the Engine.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: Completed transactions and appended events (production-safe)
// Warn level: Non-critical issues like rollback failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger reservationstore.Logger) Option {
	return func(e *Engine) error {
		e.observer.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Engine.
// The collector will receive statement durations, operation counts, database errors, and concurrency conflicts.
func WithMetrics(collector reservationstore.MetricsCollector) Option {
	return func(e *Engine) error {
		e.observer.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Engine.
// One span is created per transaction and per statement.
func WithTracing(collector reservationstore.TracingCollector) Option {
	return func(e *Engine) error {
		e.observer.tracingCollector = collector
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Engine.
// When set, it is preferred over the basic logger so that log records carry trace correlation.
func WithContextualLogger(logger reservationstore.ContextualLogger) Option {
	return func(e *Engine) error {
		e.observer.contextualLogger = logger
		return nil
	}
}
