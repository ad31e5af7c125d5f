package postgresengine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/book-reservations-go/reservationstore"
)

const (
	metricOperationDuration    = "reservationstore_operation_duration_seconds"
	metricOperationsTotal      = "reservationstore_operations_total"
	metricDatabaseErrors       = "reservationstore_database_errors_total"
	metricConcurrencyConflicts = "reservationstore_concurrency_conflicts_total"
	metricEventsAppended       = "reservationstore_events_appended"

	spanNamePrefix = "reservationstore."

	statusSuccess = "success"
	statusError   = "error"

	labelOperation    = "operation"
	labelStatus       = "status"
	labelErrorType    = "error_type"
	labelConflictType = "conflict_type"

	errorTypeBuildQuery   = "build_query"
	errorTypeDatabase     = "database"
	errorTypeScan         = "row_scan"
	errorTypeMapping      = "row_mapping"
	errorTypeRowsAffected = "rows_affected"
	errorTypeTransaction  = "transaction"
	errorTypeFunction     = "function"
)

// observer bundles the optional observability collaborators of the Engine.
// All methods are safe to call when nothing is configured.
type observer struct {
	logger           reservationstore.Logger
	contextualLogger reservationstore.ContextualLogger
	metricsCollector reservationstore.MetricsCollector
	tracingCollector reservationstore.TracingCollector
}

// observation tracks one store operation from start to finish.
type observation struct {
	observer  *observer
	ctx       context.Context
	operation string
	span      reservationstore.SpanContext
	start     time.Time
}

func (o *observer) start(ctx context.Context, operation string) (context.Context, *observation) {
	var span reservationstore.SpanContext

	if o.tracingCollector != nil {
		ctx, span = o.tracingCollector.StartSpan(ctx, spanNamePrefix+operation, map[string]string{labelOperation: operation})
	}

	return ctx, &observation{
		observer:  o,
		ctx:       ctx,
		operation: operation,
		span:      span,
		start:     time.Now(),
	}
}

// succeed records a successful operation.
func (ob *observation) succeed() {
	duration := time.Since(ob.start)
	labels := map[string]string{labelOperation: ob.operation, labelStatus: statusSuccess}

	ob.observer.recordDuration(ob.ctx, metricOperationDuration, duration, labels)
	ob.observer.incrementCounter(ob.ctx, metricOperationsTotal, labels)
	ob.finishSpan(statusSuccess, duration, nil)
}

// fail records a failed operation with its error classification and returns err unchanged.
func (ob *observation) fail(errorType string, err error) error {
	duration := time.Since(ob.start)
	labels := map[string]string{labelOperation: ob.operation, labelStatus: statusError}

	ob.observer.recordDuration(ob.ctx, metricOperationDuration, duration, labels)
	ob.observer.incrementCounter(ob.ctx, metricOperationsTotal, labels)
	ob.observer.incrementCounter(ob.ctx, metricDatabaseErrors, map[string]string{
		labelOperation: ob.operation,
		labelStatus:    statusError,
		labelErrorType: errorType,
	})
	ob.finishSpan(statusError, duration, err)
	ob.observer.logError(ob.ctx, "reservationstore operation failed: "+ob.operation, err, labelErrorType, errorType)

	return err
}

// rollBack records a transaction that was rolled back because its work failed and returns err unchanged.
// The failure itself was already observed by the statement or business rule that caused it.
func (ob *observation) rollBack(err error) error {
	duration := time.Since(ob.start)
	labels := map[string]string{labelOperation: ob.operation, labelStatus: statusRolledBack}

	ob.observer.recordDuration(ob.ctx, metricOperationDuration, duration, labels)
	ob.observer.incrementCounter(ob.ctx, metricOperationsTotal, labels)
	ob.finishSpan(statusRolledBack, duration, err)

	return err
}

// recordConcurrencyConflict records an optimistic concurrency conflict of a guarded update.
func (o *observer) recordConcurrencyConflict(ctx context.Context, operation string) {
	o.incrementCounter(ctx, metricConcurrencyConflicts, map[string]string{
		labelOperation:    operation,
		labelConflictType: "version",
	})
	o.logInfo(ctx, "concurrency conflict detected", labelOperation, operation)
}

func (ob *observation) finishSpan(status string, duration time.Duration, err error) {
	if ob.observer.tracingCollector == nil || ob.span == nil {
		return
	}

	attrs := map[string]string{
		"duration_ms": fmt.Sprintf("%.2f", toMilliseconds(duration)),
	}

	if err != nil {
		attrs["error"] = err.Error()
	}

	ob.observer.tracingCollector.FinishSpan(ob.span, status, attrs)
}

// logSQL logs a statement with its execution time at debug level.
func (o *observer) logSQL(ctx context.Context, operation, sqlQuery string, duration time.Duration) {
	args := []any{"duration_ms", toMilliseconds(duration), "query", sqlQuery}

	switch {
	case o.contextualLogger != nil:
		o.contextualLogger.DebugContext(ctx, "executed sql for: "+operation, args...)
	case o.logger != nil:
		o.logger.Debug("executed sql for: "+operation, args...)
	}
}

func (o *observer) logInfo(ctx context.Context, msg string, args ...any) {
	switch {
	case o.contextualLogger != nil:
		o.contextualLogger.InfoContext(ctx, msg, args...)
	case o.logger != nil:
		o.logger.Info(msg, args...)
	}
}

func (o *observer) logWarn(ctx context.Context, msg string, err error, args ...any) {
	allArgs := append([]any{"error", err.Error()}, args...)

	switch {
	case o.contextualLogger != nil:
		o.contextualLogger.WarnContext(ctx, msg, allArgs...)
	case o.logger != nil:
		o.logger.Warn(msg, allArgs...)
	}
}

func (o *observer) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := append([]any{"error", err.Error()}, args...)

	switch {
	case o.contextualLogger != nil:
		o.contextualLogger.ErrorContext(ctx, msg, allArgs...)
	case o.logger != nil:
		o.logger.Error(msg, allArgs...)
	}
}

// recordDuration records duration metrics with context if the collector supports it.
func (o *observer) recordDuration(ctx context.Context, metric string, duration time.Duration, labels map[string]string) {
	if o.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := o.metricsCollector.(reservationstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	o.metricsCollector.RecordDuration(metric, duration, labels)
}

// incrementCounter increments a counter with context if the collector supports it.
func (o *observer) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if o.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := o.metricsCollector.(reservationstore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	o.metricsCollector.IncrementCounter(metric, labels)
}

// recordValue records a value metric with context if the collector supports it.
func (o *observer) recordValue(ctx context.Context, metric string, value float64, labels map[string]string) {
	if o.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := o.metricsCollector.(reservationstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metric, value, labels)
		return
	}

	o.metricsCollector.RecordValue(metric, value, labels)
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
