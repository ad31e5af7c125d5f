package config

import (
	"errors"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/book-reservations-go/core"
)

// LateFeeRateEnv names the environment variable overriding the late-fee rate.
const LateFeeRateEnv = "RESERVATIONS_LATE_FEE_RATE"

// FeePolicyFromEnv returns the default fee policy with the late-fee rate from RESERVATIONS_LATE_FEE_RATE, if set.
func FeePolicyFromEnv() (core.FeePolicy, error) {
	policy := core.DefaultFeePolicy()

	value := strings.TrimSpace(os.Getenv(LateFeeRateEnv))
	if value == "" {
		return policy, nil
	}

	rate, err := decimal.NewFromString(value)
	if err != nil {
		return core.FeePolicy{}, errors.Join(core.ErrInvalidArgument, errors.New(LateFeeRateEnv), err)
	}

	return core.BuildFeePolicy(rate, policy.Scale)
}
