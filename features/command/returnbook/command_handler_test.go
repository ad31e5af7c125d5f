package returnbook_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/book-reservations-go/core"
	"github.com/AntonStoeckl/book-reservations-go/features/command/createreservation"
	"github.com/AntonStoeckl/book-reservations-go/features/command/returnbook"
	"github.com/AntonStoeckl/book-reservations-go/reservationstore"
	"github.com/AntonStoeckl/book-reservations-go/reservationstore/memoryengine"
	"github.com/AntonStoeckl/book-reservations-go/shell"
	"github.com/AntonStoeckl/book-reservations-go/testutil/faults"
)

var fakeClock = time.Date(2024, 1, 25, 9, 0, 0, 0, time.UTC)

func Test_CommandHandler_Handle_LateReturn(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := givenEngine(t)
	reservation := givenCreatedReservation(t, engine)
	handler := returnbook.NewCommandHandler(engine)

	// act
	result, err := handler.Handle(ctx, returnbook.BuildCommand(reservation.ID, core.NewDate(2024, 1, 25), fakeClock))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 1, result.RetryAttempts)

	returned := result.Reservation
	assert.Equal(t, core.StatusOverdue, returned.Status)
	assert.Equal(t, "7.2", returned.LateFee.String())
	assert.Equal(t, 2, returned.Version)

	assertAvailableQuantity(t, engine, 2)
	assertJournalEventTypes(t, engine, reservation.ID, core.ReservationCreatedEventType, core.BookReturnedEventType)

	event := lastBookReturned(t, engine, reservation.ID)
	assert.Equal(t, 3, event.DaysLate)
	assert.Equal(t, "7.2", event.LateFee)
	assert.Equal(t, "OVERDUE", event.Status)
}

func Test_CommandHandler_Handle_OnTimeReturn(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := givenEngine(t)
	reservation := givenCreatedReservation(t, engine)
	handler := returnbook.NewCommandHandler(engine)

	// act
	result, err := handler.Handle(ctx, returnbook.BuildCommand(reservation.ID, core.NewDate(2024, 1, 22), fakeClock))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, core.StatusReturned, result.Reservation.Status)
	assert.True(t, result.Reservation.LateFee.IsZero())
	assertAvailableQuantity(t, engine, 2)

	persisted, err := engine.Repositories().Reservations.FindByID(ctx, reservation.ID)
	assert.NoError(t, err)
	assert.Equal(t, result.Reservation, persisted)
}

func Test_CommandHandler_Handle_Errors(t *testing.T) {
	t.Run("unknown reservation", func(t *testing.T) {
		// arrange
		engine := givenEngine(t)
		handler := returnbook.NewCommandHandler(engine)

		// act
		_, err := handler.Handle(context.Background(), returnbook.BuildCommand(404, core.NewDate(2024, 1, 22), fakeClock))

		// assert
		assert.ErrorIs(t, err, core.ErrNotFound)
		assertAvailableQuantity(t, engine, 2)
	})

	t.Run("already returned", func(t *testing.T) {
		// arrange
		ctx := context.Background()
		engine := givenEngine(t)
		reservation := givenCreatedReservation(t, engine)
		handler := returnbook.NewCommandHandler(engine)
		first, err := handler.Handle(ctx, returnbook.BuildCommand(reservation.ID, core.NewDate(2024, 1, 20), fakeClock))
		require.NoError(t, err, "error in arranging test data")

		// act
		result, err := handler.Handle(ctx, returnbook.BuildCommand(reservation.ID, core.NewDate(2024, 1, 30), fakeClock))

		// assert
		assert.ErrorIs(t, err, core.ErrInvalidState)
		assert.Equal(t, 1, result.RetryAttempts, "business errors must fail fast")
		assertAvailableQuantity(t, engine, 2)

		persisted, err := engine.Repositories().Reservations.FindByID(ctx, reservation.ID)
		assert.NoError(t, err)
		assert.Equal(t, first.Reservation, persisted, "a closed reservation must not change")
	})
}

func Test_CommandHandler_Handle_RetriesOnConcurrencyConflict(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := givenEngine(t)
	reservation := givenCreatedReservation(t, engine)
	conflict := errors.Join(reservationstore.ErrWritingFailed, reservationstore.ErrConcurrencyConflict)
	uow := faults.Wrap(engine, faults.FailSaves(conflict))
	handler := returnbook.NewCommandHandler(uow, returnbook.WithRetryOptions(shell.WithBaseDelay(time.Millisecond)))

	// act
	result, err := handler.Handle(ctx, returnbook.BuildCommand(reservation.ID, core.NewDate(2024, 1, 25), fakeClock))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 2, result.RetryAttempts)
	assert.Greater(t, result.TotalRetryDelay, time.Duration(0))
	assert.False(t, result.RetriesExhausted)
	assert.Equal(t, 2, uow.SaveCalls())
	assertAvailableQuantity(t, engine, 2)
	assertJournalEventTypes(t, engine, reservation.ID, core.ReservationCreatedEventType, core.BookReturnedEventType)
}

func Test_CommandHandler_Handle_ReportsExhaustedRetries(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := givenEngine(t)
	reservation := givenCreatedReservation(t, engine)
	uow := faults.Wrap(engine, faults.FailSaves(
		reservationstore.ErrConcurrencyConflict,
		reservationstore.ErrConcurrencyConflict,
	))
	handler := returnbook.NewCommandHandler(uow, returnbook.WithRetryOptions(
		shell.WithMaxAttempts(2),
		shell.WithBaseDelay(time.Millisecond),
	))

	// act
	result, err := handler.Handle(ctx, returnbook.BuildCommand(reservation.ID, core.NewDate(2024, 1, 25), fakeClock))

	// assert
	assert.ErrorIs(t, err, reservationstore.ErrConcurrencyConflict)
	assert.Equal(t, 2, result.RetryAttempts)
	assert.True(t, result.RetriesExhausted)
	assert.Equal(t, "concurrency_conflict", result.LastErrorType)
	assertAvailableQuantity(t, engine, 1)
}

func Test_CommandHandler_Handle_ConcurrentReturns_OnlyOneSucceeds(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := givenEngine(t)
	reservation := givenCreatedReservation(t, engine)
	handler := returnbook.NewCommandHandler(engine)

	wg := sync.WaitGroup{}
	errs := make(chan error, 10)

	// act
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := handler.Handle(ctx, returnbook.BuildCommand(reservation.ID, core.NewDate(2024, 1, 22), fakeClock))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	// assert
	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}

		assert.ErrorIs(t, err, core.ErrInvalidState)
	}

	assert.Equal(t, 1, succeeded)
	assertAvailableQuantity(t, engine, 2)
}

func givenEngine(t *testing.T) *memoryengine.Engine {
	t.Helper()

	engine, err := memoryengine.NewEngine(memoryengine.WithClock(func() time.Time { return fakeClock }))
	require.NoError(t, err, "error in arranging test data")

	ctx := context.Background()
	require.NoError(t, engine.SeedUser(ctx, core.User{ID: 5, Name: "Jane Doe"}), "error in arranging test data")
	require.NoError(t, engine.SeedBook(ctx, core.Book{
		ExternalID:        3,
		Title:             "Dune",
		Price:             decimal.RequireFromString("15.99"),
		AvailableQuantity: 2,
	}), "error in arranging test data")

	return engine
}

func givenCreatedReservation(t *testing.T, engine *memoryengine.Engine) core.Reservation {
	t.Helper()

	handler := createreservation.NewCommandHandler(engine)
	result, err := handler.Handle(
		context.Background(),
		createreservation.BuildCommand(5, 3, 7, core.NewDate(2024, 1, 15), fakeClock.AddDate(0, 0, -10)),
	)
	require.NoError(t, err, "error in arranging test data")

	return result.Reservation
}

func assertAvailableQuantity(t *testing.T, uow shell.UnitOfWork, expected int) {
	t.Helper()

	book, err := uow.Repositories().Books.GetBookByExternalID(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, expected, book.AvailableQuantity, "available quantity")
}

func assertJournalEventTypes(t *testing.T, uow shell.UnitOfWork, reservationID core.ReservationID, expected ...string) {
	t.Helper()

	storableEvents, err := uow.Repositories().Journal.QueryByReservationID(context.Background(), reservationID)
	require.NoError(t, err)

	eventTypes := make([]string, 0, len(storableEvents))
	for _, storableEvent := range storableEvents {
		eventTypes = append(eventTypes, storableEvent.EventType)
	}

	assert.Equal(t, expected, eventTypes)
}

func lastBookReturned(t *testing.T, uow shell.UnitOfWork, reservationID core.ReservationID) core.BookReturned {
	t.Helper()

	storableEvents, err := uow.Repositories().Journal.QueryByReservationID(context.Background(), reservationID)
	require.NoError(t, err)
	require.NotEmpty(t, storableEvents)

	domainEvent, err := shell.DomainEventFrom(storableEvents[len(storableEvents)-1])
	require.NoError(t, err)

	event, ok := domainEvent.(core.BookReturned)
	require.True(t, ok, "expected a BookReturned event, got %T", domainEvent)

	return event
}
