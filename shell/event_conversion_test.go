package shell_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/book-reservations-go/core"
	"github.com/AntonStoeckl/book-reservations-go/reservationstore"
	"github.com/AntonStoeckl/book-reservations-go/shell"
)

func Test_StorableEventFrom_And_Back_BookReturned(t *testing.T) {
	// arrange
	reservation := givenOverdueReservation(t)
	occurredAt := time.Date(2024, 1, 25, 9, 0, 0, 0, time.UTC)
	event := core.BuildBookReturned(reservation, occurredAt)
	messageID := uuid.New()
	metadata := shell.BuildEventMetadata(messageID, messageID, messageID)

	// act
	storable, err := shell.StorableEventFrom(event, metadata)
	require.NoError(t, err)

	domainEvent, err := shell.DomainEventFrom(storable)
	require.NoError(t, err)

	readMetadata, err := shell.EventMetadataFrom(storable)
	require.NoError(t, err)

	// assert
	assert.Equal(t, reservation.ID, storable.ReservationID)
	assert.Equal(t, core.BookReturnedEventType, storable.EventType)

	returned, ok := domainEvent.(core.BookReturned)
	require.True(t, ok, "Expected BookReturned event")
	assert.Equal(t, "2024-01-25", returned.ActualReturnDate)
	assert.Equal(t, 3, returned.DaysLate)
	assert.True(t, returned.WasLate())
	assert.Equal(t, "OVERDUE", returned.Status)
	assert.True(t, decimal.RequireFromString(returned.LateFee).Equal(decimal.RequireFromString("7.20")))
	assert.True(t, occurredAt.Equal(returned.OccurredAt))
	assert.Equal(t, messageID.String(), readMetadata.CorrelationID)
}

func Test_DomainEventFrom_UnknownEventType(t *testing.T) {
	storable, err := reservationstore.BuildStorableEventWithEmptyMetadata(1, "BookLost", time.Now(), []byte(`{}`))
	require.NoError(t, err)

	_, err = shell.DomainEventFrom(storable)

	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventFailed)
	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventUnknownEventType)
}

func Test_DomainEventsFrom_KeepsOrder(t *testing.T) {
	// arrange
	reservation := givenOverdueReservation(t)
	created, err := shell.StorableEventFrom(core.BuildReservationCreated(reservation, time.Now()), shell.NewEventMetadata())
	require.NoError(t, err)
	returned, err := shell.StorableEventFrom(core.BuildBookReturned(reservation, time.Now()), shell.NewEventMetadata())
	require.NoError(t, err)

	// act
	events, err := shell.DomainEventsFrom(reservationstore.StorableEvents{created, returned})

	// assert
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, core.ReservationCreatedEventType, events[0].IsEventType())
	assert.Equal(t, core.BookReturnedEventType, events[1].IsEventType())
}

func givenOverdueReservation(t *testing.T) core.Reservation {
	t.Helper()

	policy := core.DefaultFeePolicy()
	reservation, err := core.NewReservation(1, 258027, 7, core.NewDate(2024, 1, 15), decimal.RequireFromString("15.99"), policy)
	require.NoError(t, err)
	reservation.ID = 11

	returned, err := reservation.Return(core.NewDate(2024, 1, 25), policy)
	require.NoError(t, err)

	return returned
}
