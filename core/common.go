package core

import (
	"time"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

// ReservationID represents a reservation identifier, assigned by the store on first save.
type ReservationID = int64

// UserID represents a user identifier.
type UserID = int64

// BookExternalID represents the catalog identifier of a book.
type BookExternalID = int64

// EventTypeString represents the type of domain event.
type EventTypeString = string

// OccurredAtTS represents when an event occurred.
type OccurredAtTS = time.Time

// Date represents a civil date, stored as midnight UTC.
type Date = time.Time

// dateLayout is the ISO-8601 layout used for dates in payloads and SQL.
const dateLayout = "2006-01-02"

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}

// ToDate drops the clock part of t and keeps its calendar date (in t's own location) as midnight UTC.
func ToDate(t time.Time) Date {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// NewDate builds a Date from its calendar parts.
func NewDate(year int, month time.Month, day int) Date {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO-8601 date (YYYY-MM-DD).
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return Date{}, err
	}

	return ToDate(t), nil
}

// FormatDate renders a Date as YYYY-MM-DD.
func FormatDate(d Date) string {
	return d.Format(dateLayout)
}

// AddDays returns the date which is n calendar days after d.
func AddDays(d Date, n int) Date {
	return ToDate(d).AddDate(0, 0, n)
}

// DaysBetween returns the number of calendar days from "from" to "to", negative if "to" is earlier.
func DaysBetween(from, to Date) int {
	return int(ToDate(to).Sub(ToDate(from)).Hours() / 24)
}
