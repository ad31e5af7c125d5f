package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/book-reservations-go/reservationstore/oteladapters"
)

func Test_TracingCollector_StartAndFinishSpan(t *testing.T) {
	// arrange
	exporter, collector := givenTracingCollector()

	// act
	_, spanCtx := collector.StartSpan(
		context.Background(),
		"reservationstore.save_reservation",
		map[string]string{"operation": "save_reservation"},
	)
	spanCtx.AddAttribute("reservation_id", "17")
	collector.FinishSpan(spanCtx, "success", map[string]string{"duration_ms": "3.00"})

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	span := spans[0]
	assert.Equal(t, "reservationstore.save_reservation", span.Name)
	assert.Equal(t, codes.Ok, span.Status.Code)
	assertSpanHasAttribute(t, span, "operation", "save_reservation")
	assertSpanHasAttribute(t, span, "reservation_id", "17")
	assertSpanHasAttribute(t, span, "duration_ms", "3.00")
}

func Test_TracingCollector_StatusMapping(t *testing.T) {
	testCases := []struct {
		status              string
		expectedCode        codes.Code
		expectedDescription string
	}{
		{status: "success", expectedCode: codes.Ok},
		{status: "error", expectedCode: codes.Error, expectedDescription: "Operation failed"},
		{status: "canceled", expectedCode: codes.Error, expectedDescription: "Operation cancelled"},
		{status: "timeout", expectedCode: codes.Error, expectedDescription: "Operation timed out"},
		{status: "concurrency_conflict", expectedCode: codes.Error, expectedDescription: "Concurrency conflict"},
		{status: "rejected", expectedCode: codes.Unset},
		{status: "rolled_back", expectedCode: codes.Unset},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			// arrange
			exporter, collector := givenTracingCollector()

			// act
			_, spanCtx := collector.StartSpan(context.Background(), "command.CreateReservation", nil)
			collector.FinishSpan(spanCtx, tc.status, nil)

			// assert
			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tc.expectedCode, spans[0].Status.Code)
			assert.Equal(t, tc.expectedDescription, spans[0].Status.Description)

			if tc.expectedCode == codes.Unset {
				assertSpanHasAttribute(t, spans[0], "status", tc.status)
			}
		})
	}
}

func Test_TracingCollector_PropagatesParentSpan(t *testing.T) {
	// arrange
	exporter, collector := givenTracingCollector()

	// act
	ctx, parent := collector.StartSpan(context.Background(), "command.ReturnBook", nil)
	_, child := collector.StartSpan(ctx, "reservationstore.transaction", nil)
	collector.FinishSpan(child, "success", nil)
	collector.FinishSpan(parent, "success", nil)

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	childSpan, parentSpan := spans[0], spans[1]
	assert.Equal(t, parentSpan.SpanContext.TraceID(), childSpan.SpanContext.TraceID())
	assert.Equal(t, parentSpan.SpanContext.SpanID(), childSpan.Parent.SpanID())
}

func Test_TracingCollector_IgnoresForeignSpanContexts(t *testing.T) {
	// arrange
	exporter, collector := givenTracingCollector()

	// act & assert
	assert.NotPanics(t, func() {
		collector.FinishSpan(foreignSpanContext{}, "success", nil)
	})
	assert.Empty(t, exporter.GetSpans())
}

func Test_TracingCollector_SpanIsVisibleInContext(t *testing.T) {
	// arrange
	_, collector := givenTracingCollector()

	// act
	ctx, spanCtx := collector.StartSpan(context.Background(), "query.ReservationByID", nil)
	defer collector.FinishSpan(spanCtx, "success", nil)

	// assert
	assert.True(t, trace.SpanContextFromContext(ctx).IsValid())
}

type foreignSpanContext struct{}

func (foreignSpanContext) SetStatus(string)            {}
func (foreignSpanContext) AddAttribute(string, string) {}

func givenTracingCollector() (*tracetest.InMemoryExporter, *oteladapters.TracingCollector) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	return exporter, oteladapters.NewTracingCollector(provider.Tracer("test"))
}

func assertSpanHasAttribute(t *testing.T, span tracetest.SpanStub, key, expected string) {
	t.Helper()

	for _, attr := range span.Attributes {
		if attr.Key == attribute.Key(key) {
			assert.Equal(t, expected, attr.Value.AsString())
			return
		}
	}

	assert.Failf(t, "attribute not found", "span %s has no attribute %s", span.Name, key)
}
