package listreservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AntonStoeckl/book-reservations-go/core"
)

// ReservationFinder defines the interface needed by the QueryHandler to list reservations.
type ReservationFinder interface {
	FindAll(ctx context.Context) ([]core.Reservation, error)
	FindByUserID(ctx context.Context, userID core.UserID) ([]core.Reservation, error)
	FindByStatus(ctx context.Context, status core.Status) ([]core.Reservation, error)
	FindOverdue(ctx context.Context, currentDate time.Time) ([]core.Reservation, error)
}

// QueryHandler lists reservations by scope. External wrappers handle all observability concerns.
type QueryHandler struct {
	reservations ReservationFinder
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(reservations ReservationFinder) QueryHandler {
	return QueryHandler{reservations: reservations}
}

// Handle lists the reservations selected by the query's scope.
// An unknown scope fails with core.ErrInvalidArgument.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Reservations, error) {
	var (
		found []core.Reservation
		err   error
	)

	switch query.Scope {
	case ScopeAll:
		found, err = h.reservations.FindAll(ctx)
	case ScopeByUser:
		found, err = h.reservations.FindByUserID(ctx, query.UserID)
	case ScopeActive:
		found, err = h.reservations.FindByStatus(ctx, core.StatusActive)
	case ScopeOverdue:
		found, err = h.reservations.FindOverdue(ctx, query.AsOf)
	default:
		return Reservations{}, errors.Join(core.ErrInvalidArgument, fmt.Errorf("unknown scope %q", query.Scope))
	}

	if err != nil {
		return Reservations{}, err
	}

	return Reservations{
		Scope:        query.Scope,
		Reservations: found,
		Count:        len(found),
	}, nil
}
