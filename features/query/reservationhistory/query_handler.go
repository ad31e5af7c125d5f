package reservationhistory

import (
	"context"

	"github.com/AntonStoeckl/book-reservations-go/core"
	"github.com/AntonStoeckl/book-reservations-go/reservationstore"
)

// ReservationFinder defines the interface needed by the QueryHandler to check that a reservation exists.
type ReservationFinder interface {
	FindByID(ctx context.Context, id core.ReservationID) (core.Reservation, error)
}

// JournalReader defines the interface needed by the QueryHandler to read journal entries.
type JournalReader interface {
	QueryByReservationID(ctx context.Context, reservationID core.ReservationID) (reservationstore.StorableEvents, error)
}

// QueryHandler orchestrates the query processing workflow: Query -> Project.
// External wrappers handle all observability concerns.
type QueryHandler struct {
	reservations ReservationFinder
	journal      JournalReader
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(reservations ReservationFinder, journal JournalReader) QueryHandler {
	return QueryHandler{
		reservations: reservations,
		journal:      journal,
	}
}

// Handle returns the decoded history of the reservation.
// It fails with core.ErrNotFound for unknown reservations instead of returning an empty history.
func (h QueryHandler) Handle(ctx context.Context, query Query) (History, error) {
	if _, err := h.reservations.FindByID(ctx, query.ReservationID); err != nil {
		return History{}, err
	}

	// Query phase
	storableEvents, err := h.journal.QueryByReservationID(ctx, query.ReservationID)
	if err != nil {
		return History{}, err
	}

	// Projection phase - delegate to a pure function
	return ProjectHistory(query.ReservationID, storableEvents)
}
