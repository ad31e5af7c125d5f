package core

import (
	"time"
)

// ReservationCreatedEventType is the event type identifier.
const ReservationCreatedEventType = "ReservationCreated"

// ReservationCreated represents when a user reserved a copy of a book.
type ReservationCreated struct {
	EventType          EventTypeString
	ReservationID      ReservationID
	UserID             UserID
	BookExternalID     BookExternalID
	RentalDays         int
	StartDate          string
	ExpectedReturnDate string
	DailyRate          string
	OccurredAt         OccurredAtTS
}

// BuildReservationCreated creates a new ReservationCreated event from a persisted reservation.
func BuildReservationCreated(r Reservation, occurredAt time.Time) ReservationCreated {
	return ReservationCreated{
		EventType:          ReservationCreatedEventType,
		ReservationID:      r.ID,
		UserID:             r.UserID,
		BookExternalID:     r.BookExternalID,
		RentalDays:         r.RentalDays,
		StartDate:          FormatDate(r.StartDate),
		ExpectedReturnDate: FormatDate(r.ExpectedReturnDate),
		DailyRate:          r.DailyRate.String(),
		OccurredAt:         ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e ReservationCreated) IsEventType() string {
	return ReservationCreatedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReservationCreated) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// BelongsToReservation returns the reservation this event is about.
func (e ReservationCreated) BelongsToReservation() ReservationID {
	return e.ReservationID
}
