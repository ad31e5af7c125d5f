package createreservation

import (
	"context"

	"github.com/AntonStoeckl/book-reservations-go/core"
	"github.com/AntonStoeckl/book-reservations-go/shell"
)

// CommandHandler orchestrates the Create Reservation workflow: Lookup -> Decide -> Decrement -> Save -> Append.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	unitOfWork   shell.UnitOfWork
	feePolicy    core.FeePolicy
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithFeePolicy sets the fee policy used to build new reservations.
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

// Handle executes the command in one unit of work and returns the persisted reservation.
// Inserting a new reservation cannot conflict, but the workflow runs through the same retry policy
// as every other command, so HandlerResult always carries retry metadata.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var created core.Reservation

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		reservation, execErr := h.executeCommand(retryCtx, command)
		created = reservation

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	return shell.NewSuccessResult(created, retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.Reservation, error) {
	var created core.Reservation

	err := h.unitOfWork.InTransaction(ctx, func(ctx context.Context, repos shell.Repositories) error {
		// Lookup phase
		if _, err := repos.Users.GetUser(ctx, command.UserID); err != nil {
			return err
		}

		book, err := repos.Books.GetBookByExternalID(ctx, command.BookExternalID)
		if err != nil {
			return err
		}

		// Business logic phase - delegate to pure core function
		result := Decide(book, command, h.feePolicy)
		if decisionErr := result.HasError(); decisionErr != nil {
			return decisionErr
		}

		// Write phase
		if err = repos.Books.DecrementAvailability(ctx, command.BookExternalID); err != nil {
			return err
		}

		saved, err := repos.Reservations.Save(ctx, result.Reservation)
		if err != nil {
			return err
		}

		storableEvent, err := shell.StorableEventFrom(
			core.BuildReservationCreated(saved, command.OccurredAt),
			shell.NewEventMetadata(),
		)
		if err != nil {
			return err
		}

		if err = repos.Journal.Append(ctx, storableEvent); err != nil {
			return err
		}

		created = saved

		return nil
	})

	return created, err
}
