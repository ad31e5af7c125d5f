// Package returnbook implements the Return Book use case.
//
// Returning on or before the expected return date closes the reservation as RETURNED.
// Returning later closes it as OVERDUE and charges a late fee of dailyRate * lateFeeRate * daysLate,
// which is added to the total fee. Either way the copy goes back into the available stock
// and a BookReturned event is appended to the journal.
//
// The reservation is saved with an optimistic version check. If another return of the same reservation
// won the race, the whole unit of work is retried with exponential backoff, and the retry then fails
// with InvalidState because the reservation is already closed.
package returnbook
