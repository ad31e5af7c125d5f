package postgresengine

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/book-reservations-go/reservationstore"
	"github.com/AntonStoeckl/book-reservations-go/reservationstore/postgresengine/internal/adapters"
)

// sqlBuilder is satisfied by all goqu datasets.
type sqlBuilder interface {
	ToSQL() (string, []any, error)
}

// rawSQL lets plain statements go through the same runner as the goqu datasets.
type rawSQL string

func (s rawSQL) ToSQL() (string, []any, error) {
	return string(s), nil, nil
}

// runner executes statements against a connection or a transaction and observes them.
type runner struct {
	db       adapters.DBQuerier
	observer *observer
}

// query runs a select (or an insert with RETURNING) and calls scan for each result row.
// scan errors joined with reservationstore.ErrMappingRowFailed are classified as mapping errors,
// all others as scan errors.
func (r runner) query(
	ctx context.Context,
	operation string,
	builder sqlBuilder,
	scan func(rows adapters.DBRows) error,
) error {

	ctx, ob := r.observer.start(ctx, operation)

	sqlQuery, _, buildErr := builder.ToSQL()
	if buildErr != nil {
		return ob.fail(errorTypeBuildQuery, errors.Join(reservationstore.ErrBuildingQueryFailed, buildErr))
	}

	queryStart := time.Now()

	rows, queryErr := r.db.Query(ctx, sqlQuery)
	if queryErr != nil {
		return ob.fail(errorTypeDatabase, errors.Join(reservationstore.ErrQueryingFailed, queryErr))
	}

	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			r.observer.logWarn(ctx, "failed to close database rows", closeErr, labelOperation, operation)
		}
	}()

	for rows.Next() {
		if scanErr := scan(rows); scanErr != nil {
			if errors.Is(scanErr, reservationstore.ErrMappingRowFailed) {
				return ob.fail(errorTypeMapping, scanErr)
			}

			return ob.fail(errorTypeScan, scanErr)
		}
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return ob.fail(errorTypeDatabase, errors.Join(reservationstore.ErrQueryingFailed, rowsErr))
	}

	r.observer.logSQL(ctx, operation, sqlQuery, time.Since(queryStart))
	ob.succeed()

	return nil
}

// exec runs an insert, update, or DDL statement and returns the number of affected rows.
func (r runner) exec(ctx context.Context, operation string, builder sqlBuilder) (int64, error) {
	ctx, ob := r.observer.start(ctx, operation)

	sqlQuery, _, buildErr := builder.ToSQL()
	if buildErr != nil {
		return 0, ob.fail(errorTypeBuildQuery, errors.Join(reservationstore.ErrBuildingQueryFailed, buildErr))
	}

	execStart := time.Now()

	result, execErr := r.db.Exec(ctx, sqlQuery)
	if execErr != nil {
		return 0, ob.fail(errorTypeDatabase, errors.Join(reservationstore.ErrWritingFailed, execErr))
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		return 0, ob.fail(errorTypeRowsAffected, errors.Join(reservationstore.ErrGettingRowsAffectedFailed, rowsAffectedErr))
	}

	r.observer.logSQL(ctx, operation, sqlQuery, time.Since(execStart))
	ob.succeed()

	return rowsAffected, nil
}

// scanFailed joins a row scan error with the store's sentinel.
func scanFailed(err error) error {
	return errors.Join(reservationstore.ErrScanningDBRowFailed, err)
}

// mappingFailed joins a row mapping error with the store's sentinel.
func mappingFailed(err error) error {
	return errors.Join(reservationstore.ErrMappingRowFailed, err)
}
