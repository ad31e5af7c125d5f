package listreservations

import (
	"time"

	"github.com/AntonStoeckl/book-reservations-go/core"
)

const (
	queryType = "ListReservations"
)

// Scope selects which reservations are listed.
type Scope string

// Supported scopes.
const (
	ScopeAll     Scope = "all"
	ScopeByUser  Scope = "user"
	ScopeActive  Scope = "active"
	ScopeOverdue Scope = "overdue"
)

// Query represents the intent to list reservations.
// UserID is only used by ScopeByUser and AsOf only by ScopeOverdue.
type Query struct {
	Scope  Scope
	UserID core.UserID
	AsOf   core.Date
}

// QueryType returns the type identifier for this query, used for observability and routing.
func (q Query) QueryType() string {
	return queryType
}

// BuildAllQuery creates a Query for all reservations.
func BuildAllQuery() Query {
	return Query{Scope: ScopeAll}
}

// BuildByUserQuery creates a Query for the reservations of one user.
func BuildByUserQuery(userID core.UserID) Query {
	return Query{Scope: ScopeByUser, UserID: userID}
}

// BuildActiveQuery creates a Query for all ACTIVE reservations.
func BuildActiveQuery() Query {
	return Query{Scope: ScopeActive}
}

// BuildOverdueQuery creates a Query for the reservations that are overdue as of the given day.
func BuildOverdueQuery(asOf time.Time) Query {
	return Query{Scope: ScopeOverdue, AsOf: core.ToDate(asOf)}
}
