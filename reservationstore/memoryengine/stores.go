package memoryengine

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/AntonStoeckl/book-reservations-go/core"
	"github.com/AntonStoeckl/book-reservations-go/reservationstore"
)

type userLookup struct {
	access accessor
}

func (l userLookup) GetUser(ctx context.Context, userID core.UserID) (core.User, error) {
	var user core.User

	err := l.access(ctx, false, func(s *state) error {
		found, ok := s.users[userID]
		if !ok {
			return core.UserNotFound(userID)
		}

		user = found

		return nil
	})

	return user, err
}

type bookCatalog struct {
	access accessor
}

func (c bookCatalog) GetBookByExternalID(ctx context.Context, bookExternalID core.BookExternalID) (core.Book, error) {
	var book core.Book

	err := c.access(ctx, false, func(s *state) error {
		found, ok := s.books[bookExternalID]
		if !ok {
			return core.BookNotFound(bookExternalID)
		}

		book = found

		return nil
	})

	return book, err
}

func (c bookCatalog) IncrementAvailability(ctx context.Context, bookExternalID core.BookExternalID) error {
	return c.access(ctx, true, func(s *state) error {
		book, ok := s.books[bookExternalID]
		if !ok {
			return core.BookNotFound(bookExternalID)
		}

		book.AvailableQuantity++
		s.books[bookExternalID] = book

		return nil
	})
}

func (c bookCatalog) DecrementAvailability(ctx context.Context, bookExternalID core.BookExternalID) error {
	return c.access(ctx, true, func(s *state) error {
		book, ok := s.books[bookExternalID]
		if !ok {
			return core.BookNotFound(bookExternalID)
		}

		if !book.HasAvailableCopy() {
			return core.BookUnavailable(bookExternalID)
		}

		book.AvailableQuantity--
		s.books[bookExternalID] = book

		return nil
	})
}

type reservationStore struct {
	access accessor
	now    func() time.Time
}

func (r reservationStore) Save(ctx context.Context, reservation core.Reservation) (core.Reservation, error) {
	err := r.access(ctx, true, func(s *state) error {
		if reservation.ID == 0 {
			s.lastReservationID++
			reservation.ID = s.lastReservationID
			reservation.CreatedAt = r.now().UTC()
			reservation.Version = 1
			s.reservations[reservation.ID] = reservation

			return nil
		}

		stored, ok := s.reservations[reservation.ID]
		if !ok || stored.Version != reservation.Version {
			return reservationstore.ErrConcurrencyConflict
		}

		reservation.Version++
		s.reservations[reservation.ID] = reservation

		return nil
	})
	if err != nil {
		return core.Reservation{}, err
	}

	return reservation, nil
}

func (r reservationStore) FindByID(ctx context.Context, id core.ReservationID) (core.Reservation, error) {
	var reservation core.Reservation

	err := r.access(ctx, false, func(s *state) error {
		found, ok := s.reservations[id]
		if !ok {
			return core.ReservationNotFound(id)
		}

		reservation = found

		return nil
	})

	return reservation, err
}

func (r reservationStore) FindAll(ctx context.Context) ([]core.Reservation, error) {
	return r.filter(ctx, func(core.Reservation) bool { return true })
}

func (r reservationStore) FindByUserID(ctx context.Context, userID core.UserID) ([]core.Reservation, error) {
	return r.filter(ctx, func(reservation core.Reservation) bool {
		return reservation.UserID == userID
	})
}

func (r reservationStore) FindByStatus(ctx context.Context, status core.Status) ([]core.Reservation, error) {
	return r.filter(ctx, func(reservation core.Reservation) bool {
		return reservation.Status == status
	})
}

func (r reservationStore) FindOverdue(ctx context.Context, currentDate time.Time) ([]core.Reservation, error) {
	return r.filter(ctx, func(reservation core.Reservation) bool {
		return reservation.IsOverdueOn(currentDate)
	})
}

// filter returns the matching reservations ordered by ID.
func (r reservationStore) filter(ctx context.Context, matches func(core.Reservation) bool) ([]core.Reservation, error) {
	reservations := make([]core.Reservation, 0)

	err := r.access(ctx, false, func(s *state) error {
		for _, reservation := range s.reservations {
			if matches(reservation) {
				reservations = append(reservations, reservation)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(reservations, func(a, b core.Reservation) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return reservations, nil
}

type eventJournal struct {
	access accessor
}

func (j eventJournal) Append(ctx context.Context, events ...reservationstore.StorableEvent) error {
	if len(events) == 0 {
		return nil
	}

	return j.access(ctx, true, func(s *state) error {
		for _, event := range events {
			s.lastSequenceNumber++
			s.events = append(s.events, event.WithSequenceNumber(s.lastSequenceNumber))
		}

		return nil
	})
}

func (j eventJournal) QueryByReservationID(
	ctx context.Context,
	reservationID core.ReservationID,
) (reservationstore.StorableEvents, error) {

	events := make(reservationstore.StorableEvents, 0)

	err := j.access(ctx, false, func(s *state) error {
		for _, event := range s.events {
			if event.ReservationID == reservationID {
				events = append(events, event)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return events, nil
}
