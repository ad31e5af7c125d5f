package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	failureReasonAlreadyReturned   = "reservation is already returned"
	failureReasonNonPositiveRental = "rental days must be positive"
	failureReasonNegativeDailyRate = "daily rate must not be negative"
)

// Reservation is the record of one user borrowing one copy of one book for a number of days.
//
// UserID, BookExternalID, RentalDays, StartDate, ExpectedReturnDate, and DailyRate never change after creation.
// ActualReturnDate is nil until the book is returned and is never modified afterward.
type Reservation struct {
	ID                 ReservationID
	UserID             UserID
	BookExternalID     BookExternalID
	RentalDays         int
	StartDate          Date
	ExpectedReturnDate Date
	ActualReturnDate   *Date
	DailyRate          decimal.Decimal
	TotalFee           decimal.Decimal
	LateFee            decimal.Decimal
	Status             Status
	CreatedAt          time.Time
	Version            int
}

// ErrAlreadyReturned is joined into the InvalidState error when returning a closed reservation.
var ErrAlreadyReturned = errors.New(failureReasonAlreadyReturned)

// NewReservation builds an ACTIVE reservation with no fees accrued yet.
// DailyRate is the book price at this moment and is never recomputed.
func NewReservation(
	userID UserID,
	bookExternalID BookExternalID,
	rentalDays int,
	startDate time.Time,
	dailyRate decimal.Decimal,
	policy FeePolicy,
) (Reservation, error) {
	if rentalDays <= 0 {
		return Reservation{}, errors.Join(ErrInvalidArgument, fmt.Errorf("%s: got %d", failureReasonNonPositiveRental, rentalDays))
	}

	if dailyRate.IsNegative() {
		return Reservation{}, errors.Join(ErrInvalidArgument, errors.New(failureReasonNegativeDailyRate))
	}

	start := ToDate(startDate)

	return Reservation{
		UserID:             userID,
		BookExternalID:     bookExternalID,
		RentalDays:         rentalDays,
		StartDate:          start,
		ExpectedReturnDate: AddDays(start, rentalDays),
		DailyRate:          dailyRate,
		TotalFee:           policy.Zero(),
		LateFee:            policy.Zero(),
		Status:             StatusActive,
	}, nil
}

// DaysLate returns how many days after the expected return date returnDate is, or 0 if it is not late.
func (r Reservation) DaysLate(returnDate time.Time) int {
	days := DaysBetween(r.ExpectedReturnDate, ToDate(returnDate))
	if days < 0 {
		return 0
	}

	return days
}

// Return closes an ACTIVE reservation.
//
// Returning on or before the expected return date yields RETURNED and leaves the fees unchanged.
// Returning after it yields OVERDUE, sets LateFee, and adds it to TotalFee.
// Any non-ACTIVE reservation fails with ErrInvalidState.
func (r Reservation) Return(returnDate time.Time, policy FeePolicy) (Reservation, error) {
	if r.Status != StatusActive {
		return Reservation{}, errors.Join(ErrInvalidState, ErrAlreadyReturned)
	}

	returned := r
	actual := ToDate(returnDate)
	returned.ActualReturnDate = &actual

	daysLate := r.DaysLate(actual)
	if daysLate == 0 {
		returned.Status = StatusReturned
		return returned, nil
	}

	returned.LateFee = policy.LateFee(r.DailyRate, daysLate)
	returned.TotalFee = r.TotalFee.Add(returned.LateFee)
	returned.Status = StatusOverdue

	return returned, nil
}

// IsOverdueOn is true for ACTIVE reservations whose expected return date lies strictly before today.
func (r Reservation) IsOverdueOn(today time.Time) bool {
	return r.Status == StatusActive && r.ExpectedReturnDate.Before(ToDate(today))
}
