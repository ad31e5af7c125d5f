package returnbook

import (
	"context"

	"github.com/AntonStoeckl/book-reservations-go/core"
	"github.com/AntonStoeckl/book-reservations-go/shell"
)

// CommandHandler orchestrates the Return Book workflow with retry: Load -> Decide -> Increment -> Save -> Append.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	unitOfWork   shell.UnitOfWork
	feePolicy    core.FeePolicy
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithFeePolicy sets the fee policy used to compute late fees.
func WithFeePolicy(policy core.FeePolicy) Option {
	return func(h *CommandHandler) {
		h.feePolicy = policy
	}
}

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with the default fee policy, unless configured otherwise.
func NewCommandHandler(unitOfWork shell.UnitOfWork, opts ...Option) CommandHandler {
	handler := CommandHandler{
		unitOfWork: unitOfWork,
		feePolicy:  core.DefaultFeePolicy(),
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the complete command processing workflow with retry logic.
//
// Resilience: a reservationstore.ErrConcurrencyConflict from Save rolls the unit of work back
// and retries it with exponential backoff. All other errors fail fast.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var returned core.Reservation

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		reservation, execErr := h.executeCommand(retryCtx, command)
		returned = reservation

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	return shell.NewSuccessResult(returned, retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.Reservation, error) {
	var returned core.Reservation

	err := h.unitOfWork.InTransaction(ctx, func(ctx context.Context, repos shell.Repositories) error {
		// Load phase
		reservation, err := repos.Reservations.FindByID(ctx, command.ReservationID)
		if err != nil {
			return err
		}

		// Business logic phase - delegate to pure core function
		result := Decide(reservation, command, h.feePolicy)
		if decisionErr := result.HasError(); decisionErr != nil {
			return decisionErr
		}

		// Write phase
		if err = repos.Books.IncrementAvailability(ctx, reservation.BookExternalID); err != nil {
			return err
		}

		saved, err := repos.Reservations.Save(ctx, result.Reservation)
		if err != nil {
			return err
		}

		storableEvent, err := shell.StorableEventFrom(
			core.BuildBookReturned(saved, command.OccurredAt),
			shell.NewEventMetadata(),
		)
		if err != nil {
			return err
		}

		if err = repos.Journal.Append(ctx, storableEvent); err != nil {
			return err
		}

		returned = saved

		return nil
	})

	return returned, err
}
