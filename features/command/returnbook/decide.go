package returnbook

import (
	"github.com/AntonStoeckl/book-reservations-go/core"
)

// Decide implements the business rules for returning a book.
// It is a pure function: it takes the current reservation and the command and returns the closed reservation.
//
// Business Rules:
//
//	GIVEN: An existing reservation
//	WHEN: ReturnBook command is received
//	THEN: RETURNED with unchanged fees, if ReturnDate is on or before ExpectedReturnDate
//	THEN: OVERDUE with LateFee = round(DailyRate * lateFeeRate * daysLate, 2) added to TotalFee, otherwise
//	ERROR: InvalidState "reservation is already returned" if the reservation is not ACTIVE
func Decide(reservation core.Reservation, command Command, policy core.FeePolicy) core.DecisionResult {
	returned, err := reservation.Return(command.ReturnDate, policy)
	if err != nil {
		return core.ErrorDecision(err)
	}

	return core.SuccessDecision(returned)
}
