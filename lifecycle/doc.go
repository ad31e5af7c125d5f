// Package lifecycle is the entry point to the reservation lifecycle.
//
// Service composes the command and query handlers of the features packages, wraps each of them
// with observability, and returns ReservationView values enriched with the user's name, the book's title
// and the amount due. It works with any shell.UnitOfWork, e.g. the postgres engine or the in-memory engine.
package lifecycle
