package createreservation

import (
	"github.com/AntonStoeckl/book-reservations-go/core"
)

// Decide implements the business rules for creating a reservation.
// It is a pure function: it takes the resolved book and the command and returns the reservation to persist.
//
// Business Rules:
//
//	GIVEN: An existing user and an existing book
//	WHEN: CreateReservation command is received
//	THEN: An ACTIVE reservation with DailyRate = book price, zero fees
//	      and ExpectedReturnDate = StartDate + RentalDays
//	ERROR: InvalidArgument if RentalDays is not positive
//	ERROR: Unavailable if the book has no available copy
func Decide(book core.Book, command Command, policy core.FeePolicy) core.DecisionResult {
	reservation, err := core.NewReservation(
		command.UserID,
		book.ExternalID,
		command.RentalDays,
		command.StartDate,
		book.Price,
		policy,
	)
	if err != nil {
		return core.ErrorDecision(err)
	}

	if !book.HasAvailableCopy() {
		return core.ErrorDecision(core.BookUnavailable(book.ExternalID))
	}

	return core.SuccessDecision(reservation)
}
