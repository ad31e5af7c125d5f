package lifecycle

import (
	"time"

	"github.com/AntonStoeckl/book-reservations-go/core"
	"github.com/AntonStoeckl/book-reservations-go/shell"
	"github.com/AntonStoeckl/book-reservations-go/shell/observable"
)

// Option defines a functional option for configuring the Service.
type Option func(*Service) error

// WithFeePolicy sets the fee policy for new reservations, late fees and amounts due.
func WithFeePolicy(policy core.FeePolicy) Option {
	return func(s *Service) error {
		if err := policy.Validate(); err != nil {
			return err
		}

		s.feePolicy = policy

		return nil
	}
}

// WithClock sets the source of the current time, which decides what is overdue and when events occurred.
func WithClock(now func() time.Time) Option {
	return func(s *Service) error {
		s.now = now
		return nil
	}
}

// WithRetryOptions sets a custom retry configuration for the command handlers.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(s *Service) error {
		s.retryOptions = opts
		return nil
	}
}

// WithMetrics sets the metrics collector for all commands and queries.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(s *Service) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for all commands and queries.
func WithTracing(collector shell.TracingCollector) Option {
	return func(s *Service) error {
		s.tracingCollector = collector
		return nil
	}
}

// WithContextualLogger sets the contextual logger for all commands and queries.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(s *Service) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithLogger sets the basic logger for all commands and queries.
func WithLogger(logger shell.Logger) Option {
	return func(s *Service) error {
		s.logger = logger
		return nil
	}
}

func commandOptions[C shell.Command](s *Service) []observable.CommandOption[C] {
	return []observable.CommandOption[C]{
		observable.WithCommandMetrics[C](s.metricsCollector),
		observable.WithCommandTracing[C](s.tracingCollector),
		observable.WithCommandContextualLogging[C](s.contextualLogger),
		observable.WithCommandLogging[C](s.logger),
	}
}

func queryOptions[Q shell.Query, R any](s *Service) []observable.QueryOption[Q, R] {
	return []observable.QueryOption[Q, R]{
		observable.WithQueryMetrics[Q, R](s.metricsCollector),
		observable.WithQueryTracing[Q, R](s.tracingCollector),
		observable.WithQueryContextualLogging[Q, R](s.contextualLogger),
		observable.WithQueryLogging[Q, R](s.logger),
	}
}
