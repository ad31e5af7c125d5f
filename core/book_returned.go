package core

import (
	"time"
)

// BookReturnedEventType is the event type identifier.
const BookReturnedEventType = "BookReturned"

// BookReturned represents when the reserved copy came back, on time or late.
type BookReturned struct {
	EventType          EventTypeString
	ReservationID      ReservationID
	UserID             UserID
	BookExternalID     BookExternalID
	ExpectedReturnDate string
	ActualReturnDate   string
	DaysLate           int
	LateFee            string
	TotalFee           string
	Status             string
	OccurredAt         OccurredAtTS
}

// BuildBookReturned creates a new BookReturned event from a reservation that was just returned.
func BuildBookReturned(r Reservation, occurredAt time.Time) BookReturned {
	event := BookReturned{
		EventType:          BookReturnedEventType,
		ReservationID:      r.ID,
		UserID:             r.UserID,
		BookExternalID:     r.BookExternalID,
		ExpectedReturnDate: FormatDate(r.ExpectedReturnDate),
		LateFee:            r.LateFee.String(),
		TotalFee:           r.TotalFee.String(),
		Status:             r.Status.String(),
		OccurredAt:         ToOccurredAt(occurredAt),
	}

	if r.ActualReturnDate != nil {
		event.ActualReturnDate = FormatDate(*r.ActualReturnDate)
		event.DaysLate = r.DaysLate(*r.ActualReturnDate)
	}

	return event
}

// IsEventType returns the event type identifier.
func (e BookReturned) IsEventType() string {
	return BookReturnedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// BelongsToReservation returns the reservation this event is about.
func (e BookReturned) BelongsToReservation() ReservationID {
	return e.ReservationID
}

// WasLate is true if the book came back after the expected return date.
func (e BookReturned) WasLate() bool {
	return e.DaysLate > 0
}
