package core

import (
	"errors"
	"fmt"
)

// Error kinds. Specific errors are joined with one of these, so callers can classify them with errors.Is.
var (
	// ErrNotFound is returned when a user, book, or reservation does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable is returned when a book has no available copies.
	ErrUnavailable = errors.New("unavailable")

	// ErrInvalidState is returned when an operation is not allowed in the current reservation status.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidArgument is returned for malformed input, e.g. a non-positive number of rental days.
	ErrInvalidArgument = errors.New("invalid argument")
)

// UserNotFound builds the NotFound error for a missing user.
func UserNotFound(id UserID) error {
	return errors.Join(ErrNotFound, fmt.Errorf("user %d not found", id))
}

// BookNotFound builds the NotFound error for a missing book.
func BookNotFound(id BookExternalID) error {
	return errors.Join(ErrNotFound, fmt.Errorf("book %d not found", id))
}

// ReservationNotFound builds the NotFound error for a missing reservation.
func ReservationNotFound(id ReservationID) error {
	return errors.Join(ErrNotFound, fmt.Errorf("reservation %d not found", id))
}

// BookUnavailable builds the Unavailable error for a book without available copies.
func BookUnavailable(id BookExternalID) error {
	return errors.Join(ErrUnavailable, fmt.Errorf("book %d is not available", id))
}
