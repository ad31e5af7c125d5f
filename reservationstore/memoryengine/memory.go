package memoryengine

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/AntonStoeckl/book-reservations-go/core"
	"github.com/AntonStoeckl/book-reservations-go/reservationstore"
	"github.com/AntonStoeckl/book-reservations-go/shell"
)

type state struct {
	users              map[core.UserID]core.User
	books              map[core.BookExternalID]core.Book
	reservations       map[core.ReservationID]core.Reservation
	events             reservationstore.StorableEvents
	lastReservationID  core.ReservationID
	lastSequenceNumber uint
}

func newState() *state {
	return &state{
		users:        make(map[core.UserID]core.User),
		books:        make(map[core.BookExternalID]core.Book),
		reservations: make(map[core.ReservationID]core.Reservation),
		events:       make(reservationstore.StorableEvents, 0),
	}
}

func (s *state) clone() *state {
	return &state{
		users:              maps.Clone(s.users),
		books:              maps.Clone(s.books),
		reservations:       maps.Clone(s.reservations),
		events:             slices.Clone(s.events),
		lastReservationID:  s.lastReservationID,
		lastSequenceNumber: s.lastSequenceNumber,
	}
}

// Engine is the in-memory implementation of shell.UnitOfWork.
type Engine struct {
	mu     sync.RWMutex
	state  *state
	now    func() time.Time
	logger reservationstore.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine) error

// WithClock sets the clock used for CreatedAt timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) error {
		e.now = now
		return nil
	}
}

// WithLogger sets the logger that receives rolled back transactions at debug level.
func WithLogger(logger reservationstore.Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}

// NewEngine creates an empty Engine.
func NewEngine(options ...Option) (*Engine, error) {
	e := &Engine{
		state: newState(),
		now:   time.Now,
	}

	for _, option := range options {
		if err := option(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// InTransaction runs fn against a private copy of the state, which is committed only if fn returns nil.
// Transactions are serialized.
func (e *Engine) InTransaction(ctx context.Context, fn shell.TransactionalFunc) error {
	return e.commit(ctx, func(working *state) error {
		return fn(ctx, e.repositoriesFor(direct(working)))
	})
}

func (e *Engine) commit(ctx context.Context, f func(working *state) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	working := e.state.clone()

	if err := f(working); err != nil {
		if e.logger != nil {
			e.logger.Debug("transaction rolled back", "error", err.Error())
		}

		return err
	}

	e.state = working

	return nil
}

// Repositories returns repositories that read the committed state and run every write in its own transaction.
func (e *Engine) Repositories() shell.Repositories {
	return e.repositoriesFor(e.autoCommit)
}

// SeedUser inserts or replaces a user.
func (e *Engine) SeedUser(ctx context.Context, user core.User) error {
	return e.autoCommit(ctx, true, func(s *state) error {
		s.users[user.ID] = user
		return nil
	})
}

// SeedBook inserts or replaces a book.
func (e *Engine) SeedBook(ctx context.Context, book core.Book) error {
	return e.autoCommit(ctx, true, func(s *state) error {
		s.books[book.ExternalID] = book
		return nil
	})
}

// accessor runs f against some state; write tells whether f modifies it.
type accessor func(ctx context.Context, write bool, f func(s *state) error) error

// direct is the accessor of a transaction's working copy, which is already exclusively owned.
func direct(s *state) accessor {
	return func(ctx context.Context, _ bool, f func(s *state) error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		return f(s)
	}
}

func (e *Engine) autoCommit(ctx context.Context, write bool, f func(s *state) error) error {
	if write {
		return e.commit(ctx, f)
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	return f(e.state)
}

func (e *Engine) repositoriesFor(access accessor) shell.Repositories {
	return shell.Repositories{
		Users:        userLookup{access: access},
		Books:        bookCatalog{access: access},
		Reservations: reservationStore{access: access, now: e.now},
		Journal:      eventJournal{access: access},
	}
}

// Compile-time check to ensure Engine implements the shell.UnitOfWork interface.
var _ shell.UnitOfWork = (*Engine)(nil)
