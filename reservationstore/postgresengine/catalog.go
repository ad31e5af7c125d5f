package postgresengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/book-reservations-go/core"
	"github.com/AntonStoeckl/book-reservations-go/reservationstore/postgresengine/internal/adapters"
)

const (
	colID                = "id"
	colName              = "name"
	colExternalID        = "external_id"
	colTitle             = "title"
	colPrice             = "price"
	colAvailableQuantity = "available_quantity"

	operationGetUser      = "users.get"
	operationGetBook      = "books.get"
	operationIncrementQty = "books.increment_availability"
	operationDecrementQty = "books.decrement_availability"
)

// userStore implements shell.UserLookup.
type userStore struct {
	runner runner
}

func (s userStore) GetUser(ctx context.Context, userID core.UserID) (core.User, error) {
	query := dialect.
		From(tableUsers).
		Select(colID, colName).
		Where(goqu.C(colID).Eq(userID))

	var users []core.User

	err := s.runner.query(ctx, operationGetUser, query, func(rows adapters.DBRows) error {
		var user core.User
		if scanErr := rows.Scan(&user.ID, &user.Name); scanErr != nil {
			return scanFailed(scanErr)
		}

		users = append(users, user)

		return nil
	})
	if err != nil {
		return core.User{}, err
	}

	if len(users) == 0 {
		return core.User{}, core.UserNotFound(userID)
	}

	return users[0], nil
}

// bookStore implements shell.BookCatalog.
type bookStore struct {
	runner runner
}

func (s bookStore) GetBookByExternalID(ctx context.Context, bookExternalID core.BookExternalID) (core.Book, error) {
	query := dialect.
		From(tableBooks).
		Select(colExternalID, colTitle, goqu.Cast(goqu.C(colPrice), "TEXT"), colAvailableQuantity).
		Where(goqu.C(colExternalID).Eq(bookExternalID))

	var books []core.Book

	err := s.runner.query(ctx, operationGetBook, query, func(rows adapters.DBRows) error {
		var book core.Book
		var price string

		if scanErr := rows.Scan(&book.ExternalID, &book.Title, &price, &book.AvailableQuantity); scanErr != nil {
			return scanFailed(scanErr)
		}

		parsedPrice, parseErr := decimal.NewFromString(price)
		if parseErr != nil {
			return mappingFailed(parseErr)
		}

		book.Price = parsedPrice
		books = append(books, book)

		return nil
	})
	if err != nil {
		return core.Book{}, err
	}

	if len(books) == 0 {
		return core.Book{}, core.BookNotFound(bookExternalID)
	}

	return books[0], nil
}

func (s bookStore) IncrementAvailability(ctx context.Context, bookExternalID core.BookExternalID) error {
	update := dialect.
		Update(tableBooks).
		Set(goqu.Record{colAvailableQuantity: goqu.L(colAvailableQuantity + " + 1")}).
		Where(goqu.C(colExternalID).Eq(bookExternalID))

	rowsAffected, err := s.runner.exec(ctx, operationIncrementQty, update)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return core.BookNotFound(bookExternalID)
	}

	return nil
}

// DecrementAvailability only updates a row that still has a copy left, so concurrent reservations
// of the last copy cannot push the quantity below zero.
func (s bookStore) DecrementAvailability(ctx context.Context, bookExternalID core.BookExternalID) error {
	update := dialect.
		Update(tableBooks).
		Set(goqu.Record{colAvailableQuantity: goqu.L(colAvailableQuantity + " - 1")}).
		Where(
			goqu.C(colExternalID).Eq(bookExternalID),
			goqu.C(colAvailableQuantity).Gt(0),
		)

	rowsAffected, err := s.runner.exec(ctx, operationDecrementQty, update)
	if err != nil {
		return err
	}

	if rowsAffected > 0 {
		return nil
	}

	// Nothing was updated: either the book does not exist or it has no copy left.
	if _, getErr := s.GetBookByExternalID(ctx, bookExternalID); getErr != nil {
		return getErr
	}

	return core.BookUnavailable(bookExternalID)
}
