// Package reservationbyid implements the Reservation By ID query use case.
package reservationbyid
