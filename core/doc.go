// Package core contains the domain model for the example:
// Book reservations in a public library.
//
// A Reservation ties a user to a book from the catalog for a number of rental days.
// It starts ACTIVE and is closed exactly once by returning the book, either on time (RETURNED)
// or late (OVERDUE), in which case a late fee is charged based on the FeePolicy.
//
// All state transitions happen through the methods of Reservation, which are only called
// from the pure Decide functions of the command features. Domain events (ReservationCreated,
// BookReturned) describe those transitions and are written to the reservation journal.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
