// Package postgresengine provides a PostgreSQL implementation of the reservation unit of work.
//
// The Engine owns four tables (users, books, reservations, and the reservation_events journal)
// and exposes them through transaction-bound repositories. It works with pgx.Pool, sql.DB, or sqlx.DB
// through internal adapters, and builds all statements with goqu using the postgres dialect.
//
// Optimistic concurrency: reservation updates only succeed if the stored version still matches,
// otherwise reservationstore.ErrConcurrencyConflict is returned. Availability is decremented
// with a guarded UPDATE, so the stock can never go negative even with concurrent reservations.
//
// Observability is optional and configured with the With* options, following the
// dependency-free interfaces in the reservationstore package.
package postgresengine
