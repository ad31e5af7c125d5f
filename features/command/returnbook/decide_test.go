package returnbook_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/book-reservations-go/core"
	"github.com/AntonStoeckl/book-reservations-go/features/command/returnbook"
)

func Test_Decide_Returned_WhenReturnedOnOrBeforeTheExpectedReturnDate(t *testing.T) {
	for _, returnDate := range []core.Date{
		core.NewDate(2024, 1, 16),
		core.NewDate(2024, 1, 21),
		core.NewDate(2024, 1, 22),
	} {
		// arrange
		reservation := givenActiveReservation(t)
		command := returnbook.BuildCommand(reservation.ID, returnDate, time.Now())

		// act
		result := returnbook.Decide(reservation, command, core.DefaultFeePolicy())

		// assert
		require.True(t, result.IsSuccess(), core.FormatDate(returnDate))

		returned := result.Reservation
		assert.Equal(t, core.StatusReturned, returned.Status)
		assert.True(t, returned.LateFee.IsZero())
		assert.True(t, returned.TotalFee.Equal(reservation.TotalFee))
		require.NotNil(t, returned.ActualReturnDate)
		assert.Equal(t, returnDate, *returned.ActualReturnDate)
	}
}

func Test_Decide_Overdue_WhenReturnedAfterTheExpectedReturnDate(t *testing.T) {
	// arrange
	reservation := givenActiveReservation(t)
	command := returnbook.BuildCommand(reservation.ID, core.NewDate(2024, 1, 25), time.Now())

	// act
	result := returnbook.Decide(reservation, command, core.DefaultFeePolicy())

	// assert
	require.True(t, result.IsSuccess())

	returned := result.Reservation
	assert.Equal(t, core.StatusOverdue, returned.Status)
	assert.Equal(t, "7.2", returned.LateFee.String())
	assert.Equal(t, "7.2", returned.TotalFee.String())
	assert.Equal(t, core.NewDate(2024, 1, 22), returned.ExpectedReturnDate)
}

func Test_Decide_UsesTheConfiguredLateFeeRate(t *testing.T) {
	// arrange
	reservation := givenActiveReservation(t)
	command := returnbook.BuildCommand(reservation.ID, core.NewDate(2024, 1, 23), time.Now())
	policy, err := core.BuildFeePolicy(decimal.RequireFromString("0.5"), 2)
	require.NoError(t, err, "error in arranging test data")

	// act
	result := returnbook.Decide(reservation, command, policy)

	// assert
	require.True(t, result.IsSuccess())
	assert.Equal(t, "8", result.Reservation.LateFee.String())
}

func Test_Decide_Error_WhenTheReservationIsAlreadyClosed(t *testing.T) {
	for _, returnDate := range []core.Date{core.NewDate(2024, 1, 20), core.NewDate(2024, 1, 30)} {
		// arrange
		reservation := givenActiveReservation(t)
		closed, err := reservation.Return(returnDate, core.DefaultFeePolicy())
		require.NoError(t, err, "error in arranging test data")

		command := returnbook.BuildCommand(reservation.ID, core.NewDate(2024, 2, 1), time.Now())

		// act
		result := returnbook.Decide(closed, command, core.DefaultFeePolicy())

		// assert
		assert.False(t, result.IsSuccess())
		assert.ErrorIs(t, result.HasError(), core.ErrInvalidState)
		assert.ErrorIs(t, result.HasError(), core.ErrAlreadyReturned)
	}
}

func givenActiveReservation(t *testing.T) core.Reservation {
	t.Helper()

	reservation, err := core.NewReservation(
		5,
		3,
		7,
		core.NewDate(2024, 1, 15),
		decimal.RequireFromString("15.99"),
		core.DefaultFeePolicy(),
	)
	require.NoError(t, err, "error in arranging test data")

	reservation.ID = 17
	reservation.Version = 1

	return reservation
}
