package core

// DecisionResult represents the outcome of a business decision in a Decide function.
//
// IMPORTANT: DecisionResult should only be constructed using the provided factory methods:
// SuccessDecision(reservation) or ErrorDecision(err).
type DecisionResult struct {
	Outcome     string      // "success" or "error"
	Reservation Reservation // the new reservation state, zero for error decisions
	Err         error
}

const (
	successOutcome = "success"
	errorOutcome   = "error"
)

// SuccessDecision creates a DecisionResult carrying the reservation state to persist.
func SuccessDecision(reservation Reservation) DecisionResult {
	return DecisionResult{
		Outcome:     successOutcome,
		Reservation: reservation,
	}
}

// ErrorDecision creates a DecisionResult indicating a business rule violation.
// Nothing is persisted for error decisions.
func ErrorDecision(err error) DecisionResult {
	return DecisionResult{
		Outcome: errorOutcome,
		Err:     err,
	}
}

// IsSuccess returns true if there is a reservation state to persist.
func (r DecisionResult) IsSuccess() bool {
	return r.Outcome == successOutcome
}

// HasError returns the error if there is one, otherwise nil.
func (r DecisionResult) HasError() error {
	if r.Outcome == errorOutcome {
		return r.Err
	}

	return nil
}
