// Package listreservations implements the List Reservations query use case.
//
// One query type covers all list views, selected by Scope:
//   - ScopeAll lists every reservation
//   - ScopeByUser lists the reservations of one user
//   - ScopeActive lists reservations that are still ACTIVE
//   - ScopeOverdue lists ACTIVE reservations whose expected return date lies strictly before AsOf
//
// Results are ordered by reservation ID. Listing never changes a reservation's status;
// an overdue reservation stays ACTIVE until its book is returned.
package listreservations
