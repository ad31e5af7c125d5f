package faults

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/book-reservations-go/core"
	"github.com/AntonStoeckl/book-reservations-go/reservationstore"
	"github.com/AntonStoeckl/book-reservations-go/shell"
)

// UnitOfWork delegates to a real shell.UnitOfWork and fails selected calls inside its transactions.
type UnitOfWork struct {
	delegate shell.UnitOfWork

	mu          sync.Mutex
	saveErrors  []error
	appendError error
	saveCalls   int
}

// Fault configures a UnitOfWork.
type Fault func(*UnitOfWork)

// FailSaves makes the next len(errs) calls of ReservationStore.Save fail with the given errors, in order.
func FailSaves(errs ...error) Fault {
	return func(u *UnitOfWork) {
		u.saveErrors = append(u.saveErrors, errs...)
	}
}

// FailAppends makes every call of EventJournal.Append fail with err.
func FailAppends(err error) Fault {
	return func(u *UnitOfWork) {
		u.appendError = err
	}
}

// Wrap creates a UnitOfWork that injects the given faults into delegate's transactions.
func Wrap(delegate shell.UnitOfWork, faults ...Fault) *UnitOfWork {
	u := &UnitOfWork{delegate: delegate}

	for _, fault := range faults {
		fault(u)
	}

	return u
}

// InTransaction runs fn in a transaction of the delegate, with faulty collaborators.
func (u *UnitOfWork) InTransaction(ctx context.Context, fn shell.TransactionalFunc) error {
	return u.delegate.InTransaction(ctx, func(ctx context.Context, repos shell.Repositories) error {
		repos.Reservations = faultyReservationStore{ReservationStore: repos.Reservations, owner: u}
		repos.Journal = faultyJournal{EventJournal: repos.Journal, owner: u}

		return fn(ctx, repos)
	})
}

// Repositories returns the delegate's read-only collaborators unchanged.
func (u *UnitOfWork) Repositories() shell.Repositories {
	return u.delegate.Repositories()
}

// SaveCalls returns how often Save was called inside transactions, including failed calls.
func (u *UnitOfWork) SaveCalls() int {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.saveCalls
}

func (u *UnitOfWork) nextSaveError() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.saveCalls++

	if len(u.saveErrors) == 0 {
		return nil
	}

	err := u.saveErrors[0]
	u.saveErrors = u.saveErrors[1:]

	return err
}

type faultyReservationStore struct {
	shell.ReservationStore
	owner *UnitOfWork
}

func (s faultyReservationStore) Save(ctx context.Context, reservation core.Reservation) (core.Reservation, error) {
	if err := s.owner.nextSaveError(); err != nil {
		return core.Reservation{}, err
	}

	return s.ReservationStore.Save(ctx, reservation)
}

type faultyJournal struct {
	shell.EventJournal
	owner *UnitOfWork
}

func (j faultyJournal) Append(ctx context.Context, events ...reservationstore.StorableEvent) error {
	if j.owner.appendError != nil {
		return j.owner.appendError
	}

	return j.EventJournal.Append(ctx, events...)
}

var _ shell.UnitOfWork = (*UnitOfWork)(nil)
