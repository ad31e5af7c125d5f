package main

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/book-reservations-go/core"
)

var (
	demoUser = core.User{ID: 1, Name: "Jane Doe"}
	demoBook = core.Book{
		ExternalID:        42,
		Title:             "The Go Programming Language",
		Price:             decimal.RequireFromString("15.99"),
		AvailableQuantity: 2,
	}
)

// demo reserves a book for seven days and returns it three days late.
func (a *app) demo(ctx context.Context, args []string) error {
	if err := expectArgs(args, 0); err != nil {
		return err
	}

	if err := a.store.engine.SeedUser(ctx, demoUser); err != nil {
		return err
	}

	if err := a.store.engine.SeedBook(ctx, demoBook); err != nil {
		return err
	}

	created, err := a.service.Create(ctx, demoUser.ID, demoBook.ExternalID, 7, core.NewDate(2024, 1, 15))
	if err != nil {
		return err
	}

	returned, err := a.service.ReturnBook(ctx, created.ID, core.NewDate(2024, 1, 25))
	if err != nil {
		return err
	}

	history, err := a.service.History(ctx, created.ID)
	if err != nil {
		return err
	}

	return a.print(map[string]any{
		"created":  created,
		"returned": returned,
		"history":  history,
	})
}
