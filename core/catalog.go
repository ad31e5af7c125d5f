package core

import (
	"github.com/shopspring/decimal"
)

// User is the read-only view of a library user, resolved through the user lookup.
type User struct {
	ID   UserID
	Name string
}

// Book is the read-only view of a catalog entry, resolved through the book catalog.
type Book struct {
	ExternalID        BookExternalID
	Title             string
	Price             decimal.Decimal
	AvailableQuantity int
}

// HasAvailableCopy is true if at least one copy can be reserved.
func (b Book) HasAvailableCopy() bool {
	return b.AvailableQuantity > 0
}
