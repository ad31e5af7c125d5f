package shell

import (
	"context"
	"time"

	"github.com/AntonStoeckl/book-reservations-go/core"
	"github.com/AntonStoeckl/book-reservations-go/reservationstore"
)

// UserLookup resolves users. It fails with core.ErrNotFound for unknown users.
type UserLookup interface {
	GetUser(ctx context.Context, userID core.UserID) (core.User, error)
}

// BookCatalog resolves books and adjusts their availability.
// All methods fail with core.ErrNotFound for unknown books.
type BookCatalog interface {
	GetBookByExternalID(ctx context.Context, bookExternalID core.BookExternalID) (core.Book, error)
	IncrementAvailability(ctx context.Context, bookExternalID core.BookExternalID) error

	// DecrementAvailability takes one copy out of the available stock.
	// It fails with core.ErrUnavailable if no copy is left, without going negative.
	DecrementAvailability(ctx context.Context, bookExternalID core.BookExternalID) error
}

// ReservationStore persists reservations.
type ReservationStore interface {
	// Save inserts a reservation with ID 0 and assigns ID, CreatedAt, and Version,
	// or updates an existing one if its Version still matches (reservationstore.ErrConcurrencyConflict otherwise).
	Save(ctx context.Context, reservation core.Reservation) (core.Reservation, error)
	FindByID(ctx context.Context, id core.ReservationID) (core.Reservation, error)
	FindAll(ctx context.Context) ([]core.Reservation, error)
	FindByUserID(ctx context.Context, userID core.UserID) ([]core.Reservation, error)
	FindByStatus(ctx context.Context, status core.Status) ([]core.Reservation, error)

	// FindOverdue returns ACTIVE reservations whose expected return date lies strictly before currentDate.
	FindOverdue(ctx context.Context, currentDate time.Time) ([]core.Reservation, error)
}

// EventJournal is the append-only audit trail of reservation domain events.
type EventJournal interface {
	Append(ctx context.Context, events ...reservationstore.StorableEvent) error
	QueryByReservationID(ctx context.Context, reservationID core.ReservationID) (reservationstore.StorableEvents, error)
}

// Repositories bundles the collaborators of one unit of work.
type Repositories struct {
	Users        UserLookup
	Books        BookCatalog
	Reservations ReservationStore
	Journal      EventJournal
}

// TransactionalFunc is the work executed inside UnitOfWork.InTransaction.
type TransactionalFunc func(ctx context.Context, repos Repositories) error

// UnitOfWork runs work against transaction-bound collaborators, all-or-nothing.
type UnitOfWork interface {
	// InTransaction commits everything fn did if it returns nil and rolls everything back otherwise.
	InTransaction(ctx context.Context, fn TransactionalFunc) error

	// Repositories returns collaborators that are not bound to a transaction, for read-only use.
	Repositories() Repositories
}

// Command represents the contract for all command types.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// CoreCommandHandler defines the contract for components that process commands with pure business logic.
// Implementations should focus purely on business logic without observability concerns.
// Handlers return HandlerResult containing the resulting reservation and execution metadata (retry info).
type CoreCommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

// Query represents the contract for all query types.
type Query interface {
	QueryType() string
}

// CoreQueryHandler defines the contract for components that process queries with pure business logic.
// The generic parameters Q and R ensure type safety between queries and their corresponding results.
type CoreQueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
