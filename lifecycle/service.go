package lifecycle

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/book-reservations-go/core"
	"github.com/AntonStoeckl/book-reservations-go/features/command/createreservation"
	"github.com/AntonStoeckl/book-reservations-go/features/command/returnbook"
	"github.com/AntonStoeckl/book-reservations-go/features/query/listreservations"
	"github.com/AntonStoeckl/book-reservations-go/features/query/reservationbyid"
	"github.com/AntonStoeckl/book-reservations-go/features/query/reservationhistory"
	"github.com/AntonStoeckl/book-reservations-go/shell"
	"github.com/AntonStoeckl/book-reservations-go/shell/observable"
)

// ErrNilUnitOfWork is returned when the Service is created without a unit of work.
var ErrNilUnitOfWork = errors.New("unit of work must not be nil")

// Service creates and returns reservations and answers the reservation queries.
type Service struct {
	unitOfWork   shell.UnitOfWork
	feePolicy    core.FeePolicy
	now          func() time.Time
	retryOptions []shell.RetryOption

	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger

	createReservation *observable.CommandWrapper[createreservation.Command]
	returnBook        *observable.CommandWrapper[returnbook.Command]
	reservationByID   *observable.QueryWrapper[reservationbyid.Query, core.Reservation]
	listReservations  *observable.QueryWrapper[listreservations.Query, listreservations.Reservations]
	history           *observable.QueryWrapper[reservationhistory.Query, reservationhistory.History]
}

// NewService creates a Service on top of the given unit of work.
// Without options it uses the default fee policy, the system clock, the default retry policy, and no observability.
func NewService(unitOfWork shell.UnitOfWork, opts ...Option) (*Service, error) {
	if unitOfWork == nil {
		return nil, ErrNilUnitOfWork
	}

	s := &Service{
		unitOfWork: unitOfWork,
		feePolicy:  core.DefaultFeePolicy(),
		now:        time.Now,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if err := s.wireHandlers(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Service) wireHandlers() error {
	var err error

	s.createReservation, err = observable.NewCommandWrapper[createreservation.Command](
		createreservation.NewCommandHandler(
			s.unitOfWork,
			createreservation.WithFeePolicy(s.feePolicy),
			createreservation.WithRetryOptions(s.retryOptions...),
		),
		commandOptions[createreservation.Command](s)...,
	)
	if err != nil {
		return err
	}

	s.returnBook, err = observable.NewCommandWrapper[returnbook.Command](
		returnbook.NewCommandHandler(
			s.unitOfWork,
			returnbook.WithFeePolicy(s.feePolicy),
			returnbook.WithRetryOptions(s.retryOptions...),
		),
		commandOptions[returnbook.Command](s)...,
	)
	if err != nil {
		return err
	}

	repos := s.unitOfWork.Repositories()

	s.reservationByID, err = observable.NewQueryWrapper[reservationbyid.Query, core.Reservation](
		reservationbyid.NewQueryHandler(repos.Reservations),
		queryOptions[reservationbyid.Query, core.Reservation](s)...,
	)
	if err != nil {
		return err
	}

	s.listReservations, err = observable.NewQueryWrapper[listreservations.Query, listreservations.Reservations](
		listreservations.NewQueryHandler(repos.Reservations),
		queryOptions[listreservations.Query, listreservations.Reservations](s)...,
	)
	if err != nil {
		return err
	}

	s.history, err = observable.NewQueryWrapper[reservationhistory.Query, reservationhistory.History](
		reservationhistory.NewQueryHandler(repos.Reservations, repos.Journal),
		queryOptions[reservationhistory.Query, reservationhistory.History](s)...,
	)

	return err
}

// Create reserves a copy of a book for a user, for rentalDays days starting at startDate.
//
// It fails with core.ErrNotFound for an unknown user or book, with core.ErrUnavailable if no copy is available,
// and with core.ErrInvalidArgument if rentalDays is not positive.
func (s *Service) Create(
	ctx context.Context,
	userID core.UserID,
	bookExternalID core.BookExternalID,
	rentalDays int,
	startDate time.Time,
) (ReservationView, error) {

	command := createreservation.BuildCommand(userID, bookExternalID, rentalDays, startDate, s.now())

	result, err := s.createReservation.Handle(ctx, command)
	if err != nil {
		return ReservationView{}, err
	}

	return s.newViewBuilder().build(ctx, result.Reservation)
}

// ReturnBook closes a reservation, charging a late fee if returnDate is after the expected return date.
//
// It fails with core.ErrNotFound for an unknown reservation and with core.ErrInvalidState
// if the reservation was already returned.
func (s *Service) ReturnBook(
	ctx context.Context,
	reservationID core.ReservationID,
	returnDate time.Time,
) (ReservationView, error) {

	command := returnbook.BuildCommand(reservationID, returnDate, s.now())

	result, err := s.returnBook.Handle(ctx, command)
	if err != nil {
		return ReservationView{}, err
	}

	return s.newViewBuilder().build(ctx, result.Reservation)
}

// GetByID returns one reservation, or an error matching core.ErrNotFound.
func (s *Service) GetByID(ctx context.Context, reservationID core.ReservationID) (ReservationView, error) {
	reservation, err := s.reservationByID.Handle(ctx, reservationbyid.BuildQuery(reservationID))
	if err != nil {
		return ReservationView{}, err
	}

	return s.newViewBuilder().build(ctx, reservation)
}

// GetAll returns all reservations ordered by ID.
func (s *Service) GetAll(ctx context.Context) ([]ReservationView, error) {
	return s.list(ctx, listreservations.BuildAllQuery())
}

// GetByUserID returns the reservations of one user ordered by ID.
func (s *Service) GetByUserID(ctx context.Context, userID core.UserID) ([]ReservationView, error) {
	return s.list(ctx, listreservations.BuildByUserQuery(userID))
}

// GetActive returns the ACTIVE reservations ordered by ID.
func (s *Service) GetActive(ctx context.Context) ([]ReservationView, error) {
	return s.list(ctx, listreservations.BuildActiveQuery())
}

// GetOverdue returns the ACTIVE reservations whose expected return date lies strictly before today.
// Today is taken from the Service's clock.
func (s *Service) GetOverdue(ctx context.Context) ([]ReservationView, error) {
	return s.list(ctx, listreservations.BuildOverdueQuery(s.now()))
}

// History returns the journal entries of one reservation, oldest first.
func (s *Service) History(ctx context.Context, reservationID core.ReservationID) (reservationhistory.History, error) {
	return s.history.Handle(ctx, reservationhistory.BuildQuery(reservationID))
}

// FeePolicy returns the fee policy the Service was configured with.
func (s *Service) FeePolicy() core.FeePolicy {
	return s.feePolicy
}

func (s *Service) list(ctx context.Context, query listreservations.Query) ([]ReservationView, error) {
	result, err := s.listReservations.Handle(ctx, query)
	if err != nil {
		return nil, err
	}

	return s.newViewBuilder().buildAll(ctx, result.Reservations)
}
