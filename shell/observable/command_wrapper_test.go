package observable_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/book-reservations-go/core"
	"github.com/AntonStoeckl/book-reservations-go/reservationstore"
	"github.com/AntonStoeckl/book-reservations-go/shell"
	"github.com/AntonStoeckl/book-reservations-go/shell/observable"
	"github.com/AntonStoeckl/book-reservations-go/testutil/spies"
)

func Test_CommandWrapper_Handle_Success_RecordsMetricsSpansAndLogs(t *testing.T) {
	// arrange
	expectedResult := shell.HandlerResult{
		Reservation:   core.Reservation{ID: 42, Status: core.StatusActive},
		RetryAttempts: 1,
	}

	handler := newMockHandler(expectedResult, nil)
	metricsCollector := spies.NewMetricsCollectorSpy(true)
	tracingCollector := spies.NewTracingCollectorSpy(true)
	contextualLogger := spies.NewContextualLoggerSpy(true)

	wrapper, err := observable.NewCommandWrapper[mockCommand](
		handler,
		observable.WithCommandMetrics[mockCommand](metricsCollector),
		observable.WithCommandTracing[mockCommand](tracingCollector),
		observable.WithCommandContextualLogging[mockCommand](contextualLogger),
	)
	assert.NoError(t, err, "Should create wrapper")

	// act
	result, err := wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.NoError(t, err, "Should handle command successfully")
	assert.Equal(t, core.ReservationID(42), result.Reservation.ID, "Should return handler result")
	assert.Len(t, handler.calls, 1, "Should call handler once")

	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).
		WithLabel("command_type", "TestCommand").
		WithStatus("success").
		Assert(), "Should record success metric")
	assert.True(t, metricsCollector.HasDurationRecordForMetric(shell.CommandHandlerDurationMetric).
		WithLabel("command_type", "TestCommand").
		WithStatus("success").
		Assert(), "Should record duration metric")
	assert.Zero(t, metricsCollector.CountCounterRecordsForMetric(shell.CommandHandlerRetriesMetric),
		"Should not record retries for a first-attempt success")

	assert.True(t, tracingCollector.HasSpanRecord(shell.SpanNameCommandHandle, shell.StatusSuccess), "Should finish span")

	assert.True(t, contextualLogger.HasInfoLog(shell.LogMsgCommandStarted), "Should log command start")
	assert.True(t, contextualLogger.HasInfoLog(shell.LogMsgCommandCompleted), "Should log command completion")
}

func Test_CommandWrapper_Handle_WithRetries_RecordsRetryMetrics(t *testing.T) {
	// arrange
	resultWithRetries := shell.HandlerResult{
		RetryAttempts:    3,
		TotalRetryDelay:  15 * time.Millisecond,
		LastErrorType:    "concurrency_conflict",
		RetriesExhausted: true,
	}

	handler := newMockHandler(resultWithRetries, reservationstore.ErrConcurrencyConflict)
	metricsCollector := spies.NewMetricsCollectorSpy(true)

	wrapper, err := observable.NewCommandWrapper[mockCommand](
		handler,
		observable.WithCommandMetrics[mockCommand](metricsCollector),
	)
	assert.NoError(t, err, "Should create wrapper")

	// act
	_, err = wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.ErrorIs(t, err, reservationstore.ErrConcurrencyConflict)
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerRetriesMetric).
		WithLabel("command_type", "TestCommand").
		WithLabel("attempt_number", "2").
		WithLabel("error_type", "concurrency_conflict").
		Assert(), "Should record retry metric")
	assert.True(t, metricsCollector.HasDurationRecordForMetric(shell.CommandHandlerRetryDelayMetric).
		WithLabel("command_type", "TestCommand").
		Assert(), "Should record retry delay")
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerMaxRetriesReachedMetric).
		Assert(), "Should record exhausted retries")
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerConcurrencyConflictMetric).
		WithStatus(shell.StatusConcurrencyConflict).
		Assert(), "Should record concurrency conflict")
}

func Test_CommandWrapper_Handle_ClassifiesErrors(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedStatus string
		expectedMetric string
		expectWarn     bool
	}{
		{
			name:           "business rule rejection",
			err:            core.BookUnavailable(7),
			expectedStatus: shell.StatusRejected,
			expectedMetric: shell.CommandHandlerRejectedMetric,
			expectWarn:     true,
		},
		{
			name:           "context canceled",
			err:            context.Canceled,
			expectedStatus: shell.StatusCanceled,
			expectedMetric: shell.CommandHandlerCanceledMetric,
		},
		{
			name:           "deadline exceeded",
			err:            context.DeadlineExceeded,
			expectedStatus: shell.StatusTimeout,
			expectedMetric: shell.CommandHandlerTimeoutMetric,
		},
		{
			name:           "infrastructure error",
			err:            errors.New("database unreachable"),
			expectedStatus: shell.StatusError,
			expectedMetric: shell.CommandHandlerCallsMetric,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			handler := newMockHandler(shell.HandlerResult{RetryAttempts: 1}, tc.err)
			metricsCollector := spies.NewMetricsCollectorSpy(true)
			contextualLogger := spies.NewContextualLoggerSpy(true)

			wrapper, err := observable.NewCommandWrapper[mockCommand](
				handler,
				observable.WithCommandMetrics[mockCommand](metricsCollector),
				observable.WithCommandContextualLogging[mockCommand](contextualLogger),
			)
			assert.NoError(t, err, "Should create wrapper")

			// act
			_, err = wrapper.Handle(context.Background(), mockCommand{})

			// assert
			assert.ErrorIs(t, err, tc.err)
			assert.True(t, metricsCollector.HasCounterRecordForMetric(tc.expectedMetric).
				WithStatus(tc.expectedStatus).
				Assert(), "Should record %s metric", tc.expectedStatus)

			if tc.expectWarn {
				assert.True(t, contextualLogger.HasWarnLog(shell.LogMsgCommandRejected))
			} else {
				assert.True(t, contextualLogger.HasErrorLog(shell.LogMsgCommandFailed))
			}
		})
	}
}

func Test_CommandWrapper_Handle_FallsBackToBasicLogger(t *testing.T) {
	// arrange
	handler := newMockHandler(shell.HandlerResult{RetryAttempts: 1}, nil)
	logger := spies.NewLoggerSpy(true)

	wrapper, err := observable.NewCommandWrapper[mockCommand](
		handler,
		observable.WithCommandLogging[mockCommand](logger),
	)
	assert.NoError(t, err, "Should create wrapper")

	// act
	_, err = wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.NoError(t, err)
	assert.True(t, logger.HasInfoLog(shell.LogMsgCommandCompleted))
}

func Test_CommandWrapper_Handle_WithoutObservability_WorksCorrectly(t *testing.T) {
	// arrange
	handler := newMockHandler(shell.HandlerResult{RetryAttempts: 1}, nil)

	wrapper, err := observable.NewCommandWrapper[mockCommand](handler)
	assert.NoError(t, err, "Should create wrapper")

	// act
	_, err = wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.NoError(t, err, "Should handle command without any observability configured")
	assert.Len(t, handler.calls, 1)
}

// mockCommand implements shell.Command for testing.
type mockCommand struct{}

func (c mockCommand) CommandType() string {
	return "TestCommand"
}

// mockCoreHandler implements shell.CoreCommandHandler for testing.
type mockCoreHandler struct {
	result shell.HandlerResult
	err    error
	calls  []mockCommand
}

func (h *mockCoreHandler) Handle(_ context.Context, command mockCommand) (shell.HandlerResult, error) {
	h.calls = append(h.calls, command)
	return h.result, h.err
}

func newMockHandler(result shell.HandlerResult, err error) *mockCoreHandler {
	return &mockCoreHandler{
		result: result,
		err:    err,
		calls:  make([]mockCommand, 0),
	}
}
