// Package reservationhistory implements the Reservation History query use case.
//
// It reads the journal entries of one reservation and decodes them into domain events, oldest first.
package reservationhistory
