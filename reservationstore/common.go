package reservationstore

import (
	"errors"
)

var (
	// ErrConcurrencyConflict is returned when an update did not match the expected version of a row.
	ErrConcurrencyConflict = errors.New("concurrency error, no rows were affected")

	// ErrNilDatabaseConnection is returned when an engine is constructed without a database connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrBuildingQueryFailed is returned when a SQL statement could not be built.
	ErrBuildingQueryFailed = errors.New("building the query failed")

	// ErrQueryingFailed is returned when a select statement failed.
	ErrQueryingFailed = errors.New("querying the database failed")

	// ErrWritingFailed is returned when an insert or update statement failed.
	ErrWritingFailed = errors.New("writing to the database failed")

	// ErrScanningDBRowFailed is returned when a result row could not be scanned.
	ErrScanningDBRowFailed = errors.New("scanning the db row failed")

	// ErrGettingRowsAffectedFailed is returned when the affected row count could not be read.
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")

	// ErrTransactionFailed is returned when beginning, committing, or rolling back a transaction failed.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrMappingRowFailed is returned when a row contains a value that cannot be mapped to the domain.
	ErrMappingRowFailed = errors.New("mapping the db row to the domain failed")
)
