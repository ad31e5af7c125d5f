// Package shell provides the infrastructure-facing building blocks for the example:
// Book reservations in a public library.
//
// It contains the capability interfaces the features depend on (UserLookup, BookCatalog,
// ReservationStore, EventJournal, UnitOfWork), the Command/Query handler contracts,
// retry with exponential backoff for optimistic concurrency conflicts, the conversion
// between domain events and storable journal events, and the observability helpers
// used by the observable wrappers.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' or 'adapters' layer.
package shell
