package oteladapters_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/book-reservations-go/reservationstore/oteladapters"
)

func Test_MetricsCollector_RecordDuration(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()
	labels := map[string]string{"operation": "save_reservation", "status": "success"}

	// act
	collector.RecordDuration("reservationstore_operation_duration_seconds", 150*time.Millisecond, labels)

	// assert
	histogram := findHistogram(t, collect(t, reader), "reservationstore_operation_duration_seconds")
	require.Len(t, histogram.DataPoints, 1)

	dataPoint := histogram.DataPoints[0]
	assert.Equal(t, uint64(1), dataPoint.Count)
	assert.InDelta(t, 0.15, dataPoint.Sum, 0.001)
	assertAttributes(t, dataPoint.Attributes, labels)
}

func Test_MetricsCollector_IncrementCounter(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()
	labels := map[string]string{"operation": "append_events", "status": "success"}

	// act
	collector.IncrementCounter("reservationstore_operations_total", labels)
	collector.IncrementCounter("reservationstore_operations_total", labels)
	collector.IncrementCounterContext(context.Background(), "reservationstore_operations_total", labels)

	// assert
	counter := findCounter(t, collect(t, reader), "reservationstore_operations_total")
	require.Len(t, counter.DataPoints, 1)
	assert.Equal(t, int64(3), counter.DataPoints[0].Value)
	assertAttributes(t, counter.DataPoints[0].Attributes, labels)
}

func Test_MetricsCollector_RecordValue(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()
	labels := map[string]string{"operation": "append_events"}

	// act
	collector.RecordValue("reservationstore_events_appended", 1, labels)
	collector.RecordValueContext(context.Background(), "reservationstore_events_appended", 2, labels)

	// assert
	gauge := findGauge(t, collect(t, reader), "reservationstore_events_appended")
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, 2.0, gauge.DataPoints[0].Value)
}

func Test_MetricsCollector_SeparatesDataPointsByLabels(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()

	// act
	collector.IncrementCounter("reservationstore_operations_total", map[string]string{"status": "success"})
	collector.IncrementCounter("reservationstore_operations_total", map[string]string{"status": "error"})

	// assert
	counter := findCounter(t, collect(t, reader), "reservationstore_operations_total")
	assert.Len(t, counter.DataPoints, 2)
}

func Test_MetricsCollector_IsSafeForConcurrentUse(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()
	wg := sync.WaitGroup{}

	// act
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			collector.IncrementCounter("commands_total", map[string]string{"command_type": "CreateReservation"})
			collector.RecordDuration("command_duration_seconds", time.Millisecond, nil)
		}()
	}
	wg.Wait()

	// assert
	counter := findCounter(t, collect(t, reader), "commands_total")
	require.Len(t, counter.DataPoints, 1)
	assert.Equal(t, int64(20), counter.DataPoints[0].Value)
}

func givenMetricsCollector() (*sdkmetric.ManualReader, *oteladapters.MetricsCollector) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return reader, oteladapters.NewMetricsCollector(provider.Meter("test"))
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics))

	return resourceMetrics
}

func findMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Metrics {
	t.Helper()

	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if m.Name == name {
				return m
			}
		}
	}

	require.Failf(t, "metric not found", "metric %s was not collected", name)

	return metricdata.Metrics{}
}

func findHistogram(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Histogram[float64] {
	t.Helper()

	histogram, ok := findMetric(t, resourceMetrics, name).Data.(metricdata.Histogram[float64])
	require.True(t, ok, "metric %s is not a float64 histogram", name)

	return histogram
}

func findCounter(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Sum[int64] {
	t.Helper()

	counter, ok := findMetric(t, resourceMetrics, name).Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", name)

	return counter
}

func findGauge(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Gauge[float64] {
	t.Helper()

	gauge, ok := findMetric(t, resourceMetrics, name).Data.(metricdata.Gauge[float64])
	require.True(t, ok, "metric %s is not a float64 gauge", name)

	return gauge
}

func assertAttributes(t *testing.T, actual attribute.Set, expected map[string]string) {
	t.Helper()

	assert.Equal(t, len(expected), actual.Len())

	for key, value := range expected {
		got, ok := actual.Value(attribute.Key(key))
		assert.True(t, ok, "attribute %s missing", key)
		assert.Equal(t, value, got.AsString())
	}
}
