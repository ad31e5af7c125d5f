package reservationbyid

import (
	"context"

	"github.com/AntonStoeckl/book-reservations-go/core"
)

// ReservationFinder defines the interface needed by the QueryHandler to load reservations.
type ReservationFinder interface {
	FindByID(ctx context.Context, id core.ReservationID) (core.Reservation, error)
}

// QueryHandler loads a single reservation. External wrappers handle all observability concerns.
type QueryHandler struct {
	reservations ReservationFinder
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(reservations ReservationFinder) QueryHandler {
	return QueryHandler{reservations: reservations}
}

// Handle returns the reservation, or an error matching core.ErrNotFound if it does not exist.
func (h QueryHandler) Handle(ctx context.Context, query Query) (core.Reservation, error) {
	return h.reservations.FindByID(ctx, query.ReservationID)
}
