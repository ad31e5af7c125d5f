package returnbook

import (
	"time"

	"github.com/AntonStoeckl/book-reservations-go/core"
)

const (
	commandType = "ReturnBook"
)

// Command represents the intent to return the copy of a reservation.
type Command struct {
	ReservationID core.ReservationID
	ReturnDate    core.Date
	OccurredAt    core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(reservationID core.ReservationID, returnDate time.Time, occurredAt time.Time) Command {
	return Command{
		ReservationID: reservationID,
		ReturnDate:    core.ToDate(returnDate),
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
