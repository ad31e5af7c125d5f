package listreservations

import (
	"github.com/AntonStoeckl/book-reservations-go/core"
)

// Reservations represents the query result.
type Reservations struct {
	Scope        Scope
	Reservations []core.Reservation
	Count        int
}
