// Package createreservation implements the Create Reservation use case.
//
// A user reserves one copy of a book for a number of rental days, starting at a given date.
// The CommandHandler resolves the user and the book, delegates the business rules to the pure Decide function,
// and then takes one copy out of the available stock, saves the reservation and appends a ReservationCreated
// event to the journal. All of that happens in one unit of work, so a failing step leaves nothing behind.
package createreservation
