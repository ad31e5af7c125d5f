package reservationbyid

import (
	"github.com/AntonStoeckl/book-reservations-go/core"
)

const (
	queryType = "ReservationByID"
)

// Query represents the intent to load one reservation.
type Query struct {
	ReservationID core.ReservationID
}

// QueryType returns the type identifier for this query, used for observability and routing.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query for the given reservation.
func BuildQuery(reservationID core.ReservationID) Query {
	return Query{ReservationID: reservationID}
}
