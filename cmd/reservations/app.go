package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/book-reservations-go/core"
	"github.com/AntonStoeckl/book-reservations-go/lifecycle"
	"github.com/AntonStoeckl/book-reservations-go/shell/config"
)

const (
	commandSchema   = "schema"
	commandSeedUser = "seed-user"
	commandSeedBook = "seed-book"
	commandCreate   = "create"
	commandReturn   = "return"
	commandGet      = "get"
	commandList     = "list"
	commandHistory  = "history"
	commandDemo     = "demo"
)

var (
	errMissingCommand = errors.New("missing command")
	errUnknownCommand = errors.New("unknown command")
	errWrongArguments = errors.New("wrong number of arguments")
)

var output = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

type app struct {
	store   store
	service *lifecycle.Service
	out     io.Writer
}

func newApp(st store, out io.Writer, logger *slog.Logger, obs observability) (*app, error) {
	policy, err := config.FeePolicyFromEnv()
	if err != nil {
		return nil, err
	}

	options := []lifecycle.Option{lifecycle.WithFeePolicy(policy), lifecycle.WithLogger(logger)}
	if obs.enabled() {
		options = append(options,
			lifecycle.WithContextualLogger(obs.contextualLogger),
			lifecycle.WithMetrics(obs.metricsCollector),
			lifecycle.WithTracing(obs.tracingCollector),
		)
	}

	service, err := lifecycle.NewService(st.engine, options...)
	if err != nil {
		return nil, err
	}

	return &app{store: st, service: service, out: out}, nil
}

func (a *app) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case commandSchema:
		return a.schema(ctx, args)
	case commandSeedUser:
		return a.seedUser(ctx, args)
	case commandSeedBook:
		return a.seedBook(ctx, args)
	case commandCreate:
		return a.create(ctx, args)
	case commandReturn:
		return a.returnBook(ctx, args)
	case commandGet:
		return a.get(ctx, args)
	case commandList:
		return a.list(ctx, args)
	case commandHistory:
		return a.history(ctx, args)
	case commandDemo:
		return a.demo(ctx, args)
	default:
		return errors.Join(errUnknownCommand, errors.New(command))
	}
}

func (a *app) schema(ctx context.Context, args []string) error {
	if err := expectArgs(args, 0); err != nil {
		return err
	}

	return a.store.createSchema(ctx)
}

func (a *app) seedUser(ctx context.Context, args []string) error {
	if err := expectArgs(args, 2); err != nil {
		return err
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	user := core.User{ID: id, Name: args[1]}
	if err := a.store.engine.SeedUser(ctx, user); err != nil {
		return err
	}

	return a.print(user)
}

func (a *app) seedBook(ctx context.Context, args []string) error {
	if err := expectArgs(args, 4); err != nil {
		return err
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	price, err := decimal.NewFromString(args[2])
	if err != nil {
		return errors.Join(core.ErrInvalidArgument, err)
	}

	quantity, err := strconv.Atoi(args[3])
	if err != nil {
		return errors.Join(core.ErrInvalidArgument, err)
	}

	book := core.Book{ExternalID: id, Title: args[1], Price: price, AvailableQuantity: quantity}
	if err := a.store.engine.SeedBook(ctx, book); err != nil {
		return err
	}

	return a.print(map[string]any{
		"externalId":        book.ExternalID,
		"title":             book.Title,
		"price":             book.Price.String(),
		"availableQuantity": book.AvailableQuantity,
	})
}

func (a *app) create(ctx context.Context, args []string) error {
	if err := expectArgs(args, 4); err != nil {
		return err
	}

	userID, err := parseID(args[0])
	if err != nil {
		return err
	}

	bookID, err := parseID(args[1])
	if err != nil {
		return err
	}

	rentalDays, err := strconv.Atoi(args[2])
	if err != nil {
		return errors.Join(core.ErrInvalidArgument, err)
	}

	startDate, err := parseDate(args[3])
	if err != nil {
		return err
	}

	view, err := a.service.Create(ctx, userID, bookID, rentalDays, startDate)
	if err != nil {
		return err
	}

	return a.print(view)
}

func (a *app) returnBook(ctx context.Context, args []string) error {
	if err := expectArgs(args, 2); err != nil {
		return err
	}

	reservationID, err := parseID(args[0])
	if err != nil {
		return err
	}

	returnDate, err := parseDate(args[1])
	if err != nil {
		return err
	}

	view, err := a.service.ReturnBook(ctx, reservationID, returnDate)
	if err != nil {
		return err
	}

	return a.print(view)
}

func (a *app) get(ctx context.Context, args []string) error {
	if err := expectArgs(args, 1); err != nil {
		return err
	}

	reservationID, err := parseID(args[0])
	if err != nil {
		return err
	}

	view, err := a.service.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}

	return a.print(view)
}

func (a *app) list(ctx context.Context, args []string) error {
	scope := "all"
	if len(args) > 0 {
		scope = args[0]
	}

	var views []lifecycle.ReservationView
	var err error

	switch scope {
	case "all":
		views, err = a.service.GetAll(ctx)
	case "active":
		views, err = a.service.GetActive(ctx)
	case "overdue":
		views, err = a.service.GetOverdue(ctx)
	case "user":
		if err = expectArgs(args, 2); err != nil {
			return err
		}

		var userID core.UserID
		if userID, err = parseID(args[1]); err != nil {
			return err
		}

		views, err = a.service.GetByUserID(ctx, userID)
	default:
		return errors.Join(core.ErrInvalidArgument, errors.New("unknown list scope "+scope))
	}

	if err != nil {
		return err
	}

	return a.print(views)
}

func (a *app) history(ctx context.Context, args []string) error {
	if err := expectArgs(args, 1); err != nil {
		return err
	}

	reservationID, err := parseID(args[0])
	if err != nil {
		return err
	}

	history, err := a.service.History(ctx, reservationID)
	if err != nil {
		return err
	}

	return a.print(history)
}

func (a *app) print(value any) error {
	encoded, err := output.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}

	_, err = a.out.Write(append(encoded, '\n'))

	return err
}

func expectArgs(args []string, n int) error {
	if len(args) != n {
		return errors.Join(errWrongArguments, errors.New("want "+strconv.Itoa(n)+", got "+strconv.Itoa(len(args))))
	}

	return nil
}

func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errors.Join(core.ErrInvalidArgument, err)
	}

	return id, nil
}

func parseDate(value string) (core.Date, error) {
	date, err := core.ParseDate(value)
	if err != nil {
		return core.Date{}, errors.Join(core.ErrInvalidArgument, err)
	}

	return date, nil
}
