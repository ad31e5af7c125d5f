package createreservation

import (
	"time"

	"github.com/AntonStoeckl/book-reservations-go/core"
)

const (
	commandType = "CreateReservation"
)

// Command represents the intent to reserve a copy of a book for a user.
type Command struct {
	UserID         core.UserID
	BookExternalID core.BookExternalID
	RentalDays     int
	StartDate      core.Date
	OccurredAt     core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
// The start date is truncated to its calendar day.
func BuildCommand(
	userID core.UserID,
	bookExternalID core.BookExternalID,
	rentalDays int,
	startDate time.Time,
	occurredAt time.Time,
) Command {

	return Command{
		UserID:         userID,
		BookExternalID: bookExternalID,
		RentalDays:     rentalDays,
		StartDate:      core.ToDate(startDate),
		OccurredAt:     core.ToOccurredAt(occurredAt),
	}
}
