package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/book-reservations-go/core"
	"github.com/AntonStoeckl/book-reservations-go/reservationstore"
	"github.com/AntonStoeckl/book-reservations-go/reservationstore/postgresengine/internal/adapters"
)

const (
	colUserID             = "user_id"
	colBookExternalID     = "book_external_id"
	colRentalDays         = "rental_days"
	colStartDate          = "start_date"
	colExpectedReturnDate = "expected_return_date"
	colActualReturnDate   = "actual_return_date"
	colDailyRate          = "daily_rate"
	colTotalFee           = "total_fee"
	colLateFee            = "late_fee"
	colStatus             = "status"
	colCreatedAt          = "created_at"
	colVersion            = "version"

	castText = "TEXT"

	operationInsertReservation = "reservations.insert"
	operationUpdateReservation = "reservations.update"
	operationFindReservations  = "reservations.find"
)

// reservationColumns is the select list matching scanReservation.
// Dates and money are selected as text and parsed in Go, so every adapter scans the same types.
var reservationColumns = []any{
	goqu.C(colID),
	goqu.C(colUserID),
	goqu.C(colBookExternalID),
	goqu.C(colRentalDays),
	goqu.Cast(goqu.C(colStartDate), castText),
	goqu.Cast(goqu.C(colExpectedReturnDate), castText),
	goqu.Cast(goqu.C(colActualReturnDate), castText),
	goqu.Cast(goqu.C(colDailyRate), castText),
	goqu.Cast(goqu.C(colTotalFee), castText),
	goqu.Cast(goqu.C(colLateFee), castText),
	goqu.C(colStatus),
	goqu.C(colCreatedAt),
	goqu.C(colVersion),
}

// reservationStore implements shell.ReservationStore.
type reservationStore struct {
	runner runner
}

// Save inserts new reservations (ID 0) and updates existing ones guarded by their version.
func (s reservationStore) Save(ctx context.Context, reservation core.Reservation) (core.Reservation, error) {
	if reservation.ID == 0 {
		return s.insert(ctx, reservation)
	}

	return s.update(ctx, reservation)
}

func (s reservationStore) insert(ctx context.Context, reservation core.Reservation) (core.Reservation, error) {
	record := mutableColumns(reservation)
	record[colUserID] = reservation.UserID
	record[colBookExternalID] = reservation.BookExternalID
	record[colRentalDays] = reservation.RentalDays
	record[colStartDate] = core.FormatDate(reservation.StartDate)
	record[colExpectedReturnDate] = core.FormatDate(reservation.ExpectedReturnDate)
	record[colDailyRate] = reservation.DailyRate.String()
	record[colVersion] = 1

	insert := dialect.
		Insert(tableReservations).
		Rows(record).
		Returning(colID, colCreatedAt)

	inserted := false

	err := s.runner.query(ctx, operationInsertReservation, insert, func(rows adapters.DBRows) error {
		if scanErr := rows.Scan(&reservation.ID, &reservation.CreatedAt); scanErr != nil {
			return scanFailed(scanErr)
		}

		inserted = true

		return nil
	})
	if err != nil {
		return core.Reservation{}, err
	}

	if !inserted {
		return core.Reservation{}, errors.Join(reservationstore.ErrWritingFailed, errors.New("insert returned no row"))
	}

	reservation.CreatedAt = reservation.CreatedAt.UTC()
	reservation.Version = 1

	return reservation, nil
}

func (s reservationStore) update(ctx context.Context, reservation core.Reservation) (core.Reservation, error) {
	record := mutableColumns(reservation)
	record[colVersion] = goqu.L(colVersion + " + 1")

	update := dialect.
		Update(tableReservations).
		Set(record).
		Where(
			goqu.C(colID).Eq(reservation.ID),
			goqu.C(colVersion).Eq(reservation.Version),
		)

	rowsAffected, err := s.runner.exec(ctx, operationUpdateReservation, update)
	if err != nil {
		return core.Reservation{}, err
	}

	if rowsAffected == 0 {
		s.runner.observer.recordConcurrencyConflict(ctx, operationUpdateReservation)
		return core.Reservation{}, reservationstore.ErrConcurrencyConflict
	}

	reservation.Version++

	return reservation, nil
}

// mutableColumns holds the columns that may change after creation.
func mutableColumns(reservation core.Reservation) goqu.Record {
	var actualReturnDate any
	if reservation.ActualReturnDate != nil {
		actualReturnDate = core.FormatDate(*reservation.ActualReturnDate)
	}

	return goqu.Record{
		colActualReturnDate: actualReturnDate,
		colTotalFee:         reservation.TotalFee.String(),
		colLateFee:          reservation.LateFee.String(),
		colStatus:           reservation.Status.String(),
	}
}

func (s reservationStore) FindByID(ctx context.Context, id core.ReservationID) (core.Reservation, error) {
	found, err := s.find(ctx, goqu.C(colID).Eq(id))
	if err != nil {
		return core.Reservation{}, err
	}

	if len(found) == 0 {
		return core.Reservation{}, core.ReservationNotFound(id)
	}

	return found[0], nil
}

func (s reservationStore) FindAll(ctx context.Context) ([]core.Reservation, error) {
	return s.find(ctx)
}

func (s reservationStore) FindByUserID(ctx context.Context, userID core.UserID) ([]core.Reservation, error) {
	return s.find(ctx, goqu.C(colUserID).Eq(userID))
}

func (s reservationStore) FindByStatus(ctx context.Context, status core.Status) ([]core.Reservation, error) {
	return s.find(ctx, goqu.C(colStatus).Eq(status.String()))
}

// FindOverdue returns ACTIVE reservations whose expected return date lies strictly before currentDate.
func (s reservationStore) FindOverdue(ctx context.Context, currentDate time.Time) ([]core.Reservation, error) {
	return s.find(
		ctx,
		goqu.C(colStatus).Eq(core.StatusActive.String()),
		goqu.C(colExpectedReturnDate).Lt(core.FormatDate(core.ToDate(currentDate))),
	)
}

func (s reservationStore) find(ctx context.Context, conditions ...exp.Expression) ([]core.Reservation, error) {
	query := buildFindReservationsQuery(conditions...)

	reservations := make([]core.Reservation, 0)

	err := s.runner.query(ctx, operationFindReservations, query, func(rows adapters.DBRows) error {
		reservation, scanErr := scanReservation(rows)
		if scanErr != nil {
			return scanErr
		}

		reservations = append(reservations, reservation)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return reservations, nil
}

func buildFindReservationsQuery(conditions ...exp.Expression) *goqu.SelectDataset {
	return dialect.
		From(tableReservations).
		Select(reservationColumns...).
		Where(conditions...).
		Order(goqu.C(colID).Asc())
}

func scanReservation(rows adapters.DBRows) (core.Reservation, error) {
	var (
		reservation                                 core.Reservation
		startDate, expectedReturnDate               string
		actualReturnDate                            *string
		dailyRate, totalFee, lateFee, statusLiteral string
	)

	scanErr := rows.Scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.BookExternalID,
		&reservation.RentalDays,
		&startDate,
		&expectedReturnDate,
		&actualReturnDate,
		&dailyRate,
		&totalFee,
		&lateFee,
		&statusLiteral,
		&reservation.CreatedAt,
		&reservation.Version,
	)
	if scanErr != nil {
		return core.Reservation{}, scanFailed(scanErr)
	}

	var err error
	var mapErrs []error

	if reservation.StartDate, err = core.ParseDate(startDate); err != nil {
		mapErrs = append(mapErrs, fmt.Errorf("%s: %w", colStartDate, err))
	}

	if reservation.ExpectedReturnDate, err = core.ParseDate(expectedReturnDate); err != nil {
		mapErrs = append(mapErrs, fmt.Errorf("%s: %w", colExpectedReturnDate, err))
	}

	if actualReturnDate != nil {
		returned, parseErr := core.ParseDate(*actualReturnDate)
		if parseErr != nil {
			mapErrs = append(mapErrs, fmt.Errorf("%s: %w", colActualReturnDate, parseErr))
		}

		reservation.ActualReturnDate = &returned
	}

	if reservation.DailyRate, err = decimal.NewFromString(dailyRate); err != nil {
		mapErrs = append(mapErrs, fmt.Errorf("%s: %w", colDailyRate, err))
	}

	if reservation.TotalFee, err = decimal.NewFromString(totalFee); err != nil {
		mapErrs = append(mapErrs, fmt.Errorf("%s: %w", colTotalFee, err))
	}

	if reservation.LateFee, err = decimal.NewFromString(lateFee); err != nil {
		mapErrs = append(mapErrs, fmt.Errorf("%s: %w", colLateFee, err))
	}

	if reservation.Status, err = core.ParseStatus(statusLiteral); err != nil {
		mapErrs = append(mapErrs, fmt.Errorf("%s: %w", colStatus, err))
	}

	if len(mapErrs) > 0 {
		return core.Reservation{}, mappingFailed(errors.Join(mapErrs...))
	}

	reservation.CreatedAt = reservation.CreatedAt.UTC()

	return reservation, nil
}
