package core_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/book-reservations-go/core"
)

func Test_FeePolicy_LateFee(t *testing.T) {
	policy := core.DefaultFeePolicy()

	testCases := []struct {
		name      string
		dailyRate string
		daysLate  int
		expected  string
	}{
		{name: "three days late at 15.99", dailyRate: "15.99", daysLate: 3, expected: "7.20"},
		{name: "one day late at 10.00", dailyRate: "10.00", daysLate: 1, expected: "1.50"},
		{name: "half cent rounds up", dailyRate: "0.10", daysLate: 1, expected: "0.02"},
		{name: "not late", dailyRate: "15.99", daysLate: 0, expected: "0.00"},
		{name: "negative days are not late", dailyRate: "15.99", daysLate: -2, expected: "0.00"},
		{name: "free book", dailyRate: "0", daysLate: 7, expected: "0.00"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			fee := policy.LateFee(decimal.RequireFromString(tc.dailyRate), tc.daysLate)

			// assert
			assert.Equal(t, tc.expected, fee.StringFixed(2))
		})
	}
}

func Test_FeePolicy_BaseFee(t *testing.T) {
	// arrange
	policy := core.DefaultFeePolicy()

	// act
	fee := policy.BaseFee(decimal.RequireFromString("15.99"), 7)

	// assert
	assert.Equal(t, "111.93", fee.StringFixed(2))
}

func Test_FeePolicy_SettlementAmount_AddsLateFeeToBaseFee(t *testing.T) {
	// arrange
	policy := core.DefaultFeePolicy()
	reservation := givenActiveReservation(t, "15.99", 7)

	returned, err := reservation.Return(core.NewDate(2024, 1, 25), policy)
	require.NoError(t, err)

	// act
	amount := policy.SettlementAmount(returned)

	// assert
	assert.Equal(t, "119.13", amount.StringFixed(2))
}

func Test_BuildFeePolicy_Validation(t *testing.T) {
	_, err := core.BuildFeePolicy(decimal.RequireFromString("-0.01"), 2)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
	assert.ErrorIs(t, err, core.ErrNegativeLateFeeRate)

	_, err = core.BuildFeePolicy(decimal.RequireFromString("0.20"), -1)
	assert.ErrorIs(t, err, core.ErrNegativeMoneyScale)

	policy, err := core.BuildFeePolicy(decimal.RequireFromString("0.20"), 2)
	assert.NoError(t, err)
	assert.Equal(t, "2.00", policy.LateFee(decimal.RequireFromString("10"), 1).StringFixed(2))
}
