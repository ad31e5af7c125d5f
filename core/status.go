package core

import (
	"errors"
)

// Status is the closed set of states a Reservation can be in.
type Status uint8

const (
	// StatusActive means the book is still with the user.
	StatusActive Status = iota + 1

	// StatusReturned means the book was returned on or before the expected return date.
	StatusReturned

	// StatusOverdue means the book was returned after the expected return date and a late fee was charged.
	StatusOverdue
)

const (
	statusActiveString   = "ACTIVE"
	statusReturnedString = "RETURNED"
	statusOverdueString  = "OVERDUE"
)

// ErrUnknownStatus is returned when parsing a status string that is not part of the closed set.
var ErrUnknownStatus = errors.New("unknown reservation status")

// String returns the persisted representation of the status.
func (s Status) String() string {
	switch s {
	case StatusActive:
		return statusActiveString
	case StatusReturned:
		return statusReturnedString
	case StatusOverdue:
		return statusOverdueString
	default:
		return "UNKNOWN"
	}
}

// IsClosed is true for the terminal states RETURNED and OVERDUE.
func (s Status) IsClosed() bool {
	return s == StatusReturned || s == StatusOverdue
}

// ParseStatus maps the persisted representation back to a Status.
func ParseStatus(value string) (Status, error) {
	switch value {
	case statusActiveString:
		return StatusActive, nil
	case statusReturnedString:
		return StatusReturned, nil
	case statusOverdueString:
		return StatusOverdue, nil
	default:
		return 0, errors.Join(ErrUnknownStatus, errors.New(value))
	}
}
