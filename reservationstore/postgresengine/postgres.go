package postgresengine

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/book-reservations-go/core"
	"github.com/AntonStoeckl/book-reservations-go/reservationstore"
	"github.com/AntonStoeckl/book-reservations-go/reservationstore/postgresengine/internal/adapters"
	"github.com/AntonStoeckl/book-reservations-go/shell"
)

const (
	dialectPostgres = "postgres"

	tableUsers             = "users"
	tableBooks             = "books"
	tableReservations      = "reservations"
	tableReservationEvents = "reservation_events"

	operationTransaction = "transaction"
	operationSchema      = "schema.create"
	operationSeedUser    = "users.seed"
	operationSeedBook    = "books.seed"

	statusRolledBack = "rolled_back"
)

//go:embed schema.sql
var schemaSQL string

var dialect = goqu.Dialect(dialectPostgres)

// Engine is the PostgreSQL implementation of shell.UnitOfWork.
type Engine struct {
	db       adapters.DBAdapter
	observer *observer
}

// NewEngineFromPGXPool creates a new Engine using a pgx Pool with optional configuration.
func NewEngineFromPGXPool(db *pgxpool.Pool, options ...Option) (Engine, error) {
	if db == nil {
		return Engine{}, reservationstore.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewPGXAdapter(db), options...)
}

// NewEngineFromSQLDB creates a new Engine using a sql.DB with optional configuration.
func NewEngineFromSQLDB(db *sql.DB, options ...Option) (Engine, error) {
	if db == nil {
		return Engine{}, reservationstore.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLAdapter(db), options...)
}

// NewEngineFromSQLX creates a new Engine using a sqlx.DB with optional configuration.
func NewEngineFromSQLX(db *sqlx.DB, options ...Option) (Engine, error) {
	if db == nil {
		return Engine{}, reservationstore.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLXAdapter(db), options...)
}

func newEngine(db adapters.DBAdapter, options ...Option) (Engine, error) {
	e := Engine{
		db:       db,
		observer: &observer{},
	}

	for _, option := range options {
		if err := option(&e); err != nil {
			return Engine{}, err
		}
	}

	return e, nil
}

// InTransaction runs fn against repositories bound to one database transaction.
// The transaction is committed if fn returns nil and rolled back otherwise, so either all of fn's
// writes become visible or none of them.
func (e Engine) InTransaction(ctx context.Context, fn shell.TransactionalFunc) error {
	ctx, ob := e.observer.start(ctx, operationTransaction)

	tx, beginErr := e.db.BeginTx(ctx)
	if beginErr != nil {
		return ob.fail(errorTypeTransaction, errors.Join(reservationstore.ErrTransactionFailed, beginErr))
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(p)
		}
	}()

	if fnErr := fn(ctx, e.repositoriesFor(tx)); fnErr != nil {
		if rollbackErr := tx.Rollback(context.WithoutCancel(ctx)); rollbackErr != nil {
			e.observer.logWarn(ctx, "failed to roll back transaction", rollbackErr)
		}

		return ob.rollBack(fnErr)
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return ob.fail(errorTypeTransaction, errors.Join(reservationstore.ErrTransactionFailed, commitErr))
	}

	ob.succeed()

	return nil
}

// Repositories returns repositories that run each statement in its own implicit transaction.
func (e Engine) Repositories() shell.Repositories {
	return e.repositoriesFor(e.db)
}

func (e Engine) repositoriesFor(db adapters.DBQuerier) shell.Repositories {
	r := runner{db: db, observer: e.observer}

	return shell.Repositories{
		Users:        userStore{runner: r},
		Books:        bookStore{runner: r},
		Reservations: reservationStore{runner: r},
		Journal:      eventJournal{runner: r},
	}
}

// CreateSchema creates all tables and indexes if they do not exist yet.
func (e Engine) CreateSchema(ctx context.Context) error {
	r := runner{db: e.db, observer: e.observer}

	for _, statement := range strings.Split(schemaSQL, ";") {
		statement = strings.TrimSpace(statement)
		if statement == "" {
			continue
		}

		if _, err := r.exec(ctx, operationSchema, rawSQL(statement)); err != nil {
			return err
		}
	}

	return nil
}

// SeedUser inserts the user or renames it if it already exists.
func (e Engine) SeedUser(ctx context.Context, user core.User) error {
	r := runner{db: e.db, observer: e.observer}

	insert := dialect.
		Insert(tableUsers).
		Rows(goqu.Record{colID: user.ID, colName: user.Name}).
		OnConflict(goqu.DoUpdate(colID, goqu.Record{colName: goqu.L("EXCLUDED." + colName)}))

	_, err := r.exec(ctx, operationSeedUser, insert)

	return err
}

// SeedBook inserts the book or overwrites title, price, and availability if it already exists.
func (e Engine) SeedBook(ctx context.Context, book core.Book) error {
	r := runner{db: e.db, observer: e.observer}

	insert := dialect.
		Insert(tableBooks).
		Rows(goqu.Record{
			colExternalID:        book.ExternalID,
			colTitle:             book.Title,
			colPrice:             book.Price.String(),
			colAvailableQuantity: book.AvailableQuantity,
		}).
		OnConflict(goqu.DoUpdate(colExternalID, goqu.Record{
			colTitle:             goqu.L("EXCLUDED." + colTitle),
			colPrice:             goqu.L("EXCLUDED." + colPrice),
			colAvailableQuantity: goqu.L("EXCLUDED." + colAvailableQuantity),
		}))

	_, err := r.exec(ctx, operationSeedBook, insert)

	return err
}

// Compile-time check to ensure Engine implements the shell.UnitOfWork interface.
var _ shell.UnitOfWork = Engine{}
