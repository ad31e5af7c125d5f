package reservationhistory

import (
	"time"

	"github.com/AntonStoeckl/book-reservations-go/core"
)

// Entry is one decoded journal entry.
type Entry struct {
	SequenceNumber uint
	EventType      string
	OccurredAt     time.Time
	Event          core.DomainEvent
	CorrelationID  string
}

// History represents the query result.
type History struct {
	ReservationID core.ReservationID
	Entries       []Entry
	Count         int
}
