package core

import (
	"errors"

	"github.com/shopspring/decimal"
)

const (
	defaultLateFeeRate = "0.15"
	defaultMoneyScale  = int32(2)
)

var (
	// ErrNegativeLateFeeRate is returned when a FeePolicy is configured with a negative rate.
	ErrNegativeLateFeeRate = errors.New("late fee rate must not be negative")

	// ErrNegativeMoneyScale is returned when a FeePolicy is configured with a negative rounding scale.
	ErrNegativeMoneyScale = errors.New("money scale must not be negative")
)

// FeePolicy holds the pricing constants for reservations.
//
//	lateFee = dailyRate * LateFeeRate * daysLate
//	baseFee = dailyRate * rentalDays
//
// Both are rounded to Scale decimal places, half-up.
type FeePolicy struct {
	LateFeeRate decimal.Decimal
	Scale       int32
}

// DefaultFeePolicy returns a 15% late fee rate per day, rounded to cents.
func DefaultFeePolicy() FeePolicy {
	return FeePolicy{
		LateFeeRate: decimal.RequireFromString(defaultLateFeeRate),
		Scale:       defaultMoneyScale,
	}
}

// BuildFeePolicy creates a validated FeePolicy.
func BuildFeePolicy(lateFeeRate decimal.Decimal, scale int32) (FeePolicy, error) {
	policy := FeePolicy{LateFeeRate: lateFeeRate, Scale: scale}

	if err := policy.Validate(); err != nil {
		return FeePolicy{}, err
	}

	return policy, nil
}

// Validate checks the policy constants.
func (p FeePolicy) Validate() error {
	if p.LateFeeRate.IsNegative() {
		return errors.Join(ErrInvalidArgument, ErrNegativeLateFeeRate)
	}

	if p.Scale < 0 {
		return errors.Join(ErrInvalidArgument, ErrNegativeMoneyScale)
	}

	return nil
}

// LateFee computes the fee for returning daysLate days after the expected return date.
// Zero or negative daysLate yields a zero fee.
func (p FeePolicy) LateFee(dailyRate decimal.Decimal, daysLate int) decimal.Decimal {
	if daysLate <= 0 {
		return p.Zero()
	}

	// decimal.Round rounds half away from zero, which is half-up for the non-negative amounts used here.
	return dailyRate.
		Mul(p.LateFeeRate).
		Mul(decimal.NewFromInt(int64(daysLate))).
		Round(p.Scale)
}

// BaseFee computes the rental charge for the agreed rental period.
func (p FeePolicy) BaseFee(dailyRate decimal.Decimal, rentalDays int) decimal.Decimal {
	return dailyRate.Mul(decimal.NewFromInt(int64(rentalDays))).Round(p.Scale)
}

// SettlementAmount is what the user owes for a reservation: base fee plus any late fee.
func (p FeePolicy) SettlementAmount(r Reservation) decimal.Decimal {
	return p.BaseFee(r.DailyRate, r.RentalDays).Add(r.LateFee).Round(p.Scale)
}

// Zero returns a zero amount with the policy's scale.
func (p FeePolicy) Zero() decimal.Decimal {
	return decimal.Zero.Round(p.Scale)
}
