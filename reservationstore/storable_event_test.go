package reservationstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_BuildStorableEvent_ErrorCases(t *testing.T) {
	validPayloadJSON := []byte(`{"key": "value"}`)
	validMetadataJSON := []byte(`{"meta": "data"}`)

	tests := []struct {
		name         string
		payloadJSON  []byte
		metadataJSON []byte
		expectedErr  error
	}{
		{
			name:         "invalid payload JSON",
			payloadJSON:  []byte(`{"invalid": json}`),
			metadataJSON: validMetadataJSON,
			expectedErr:  ErrInvalidPayloadJSON,
		},
		{
			name:         "invalid metadata JSON",
			payloadJSON:  validPayloadJSON,
			metadataJSON: []byte(`{"invalid": json}`),
			expectedErr:  ErrInvalidMetadataJSON,
		},
		{
			name:         "empty payload JSON",
			payloadJSON:  []byte(``),
			metadataJSON: validMetadataJSON,
			expectedErr:  ErrInvalidPayloadJSON,
		},
		{
			name:         "nil metadata JSON",
			payloadJSON:  validPayloadJSON,
			metadataJSON: nil,
			expectedErr:  ErrInvalidMetadataJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildStorableEvent(1, "TestEvent", time.Now(), tt.payloadJSON, tt.metadataJSON)

			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func Test_BuildStorableEventWithEmptyMetadata(t *testing.T) {
	occurredAt := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	event, err := BuildStorableEventWithEmptyMetadata(42, "TestEvent", occurredAt, []byte(`{"key": "value"}`))

	assert.NoError(t, err)
	assert.Equal(t, int64(42), event.ReservationID)
	assert.Equal(t, "TestEvent", event.EventType)
	assert.Equal(t, occurredAt, event.OccurredAt)
	assert.Equal(t, []byte("{}"), event.MetadataJSON)
	assert.Equal(t, uint(0), event.SequenceNumber)
	assert.Equal(t, uint(7), event.WithSequenceNumber(7).SequenceNumber)
}
