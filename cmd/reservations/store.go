package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/AntonStoeckl/book-reservations-go/core"
	"github.com/AntonStoeckl/book-reservations-go/reservationstore/memoryengine"
	"github.com/AntonStoeckl/book-reservations-go/reservationstore/postgresengine"
	"github.com/AntonStoeckl/book-reservations-go/shell"
	"github.com/AntonStoeckl/book-reservations-go/shell/config"
)

var errSchemaUnsupported = errors.New("the in-memory store has no schema")

// unitOfWork is what both engines offer the CLI.
type unitOfWork interface {
	shell.UnitOfWork
	SeedUser(ctx context.Context, user core.User) error
	SeedBook(ctx context.Context, book core.Book) error
}

type store struct {
	engine       unitOfWork
	createSchema func(ctx context.Context) error
	close        func()
}

func openStore(ctx context.Context, memory bool, logger *slog.Logger, obs observability) (store, error) {
	if memory || !config.HasPostgresDSN() {
		return openMemoryStore(logger)
	}

	dsn, err := config.PostgresDSN()
	if err != nil {
		return store{}, err
	}

	adapter, err := config.AdapterFromEnv()
	if err != nil {
		return store{}, err
	}

	options := []postgresengine.Option{postgresengine.WithLogger(logger)}
	if obs.enabled() {
		options = append(options,
			postgresengine.WithContextualLogger(obs.contextualLogger),
			postgresengine.WithMetrics(obs.metricsCollector),
			postgresengine.WithTracing(obs.tracingCollector),
		)
	}

	logger.Debug("opening postgres store", "adapter", string(adapter))

	switch adapter {
	case config.AdapterSQL:
		return openSQLDBStore(ctx, dsn, options...)
	case config.AdapterSQLX:
		return openSQLXStore(ctx, dsn, options...)
	default:
		return openPGXStore(ctx, dsn, options...)
	}
}

func openMemoryStore(logger *slog.Logger) (store, error) {
	engine, err := memoryengine.NewEngine(memoryengine.WithLogger(logger))
	if err != nil {
		return store{}, err
	}

	return store{
		engine: engine,
		createSchema: func(context.Context) error {
			return errSchemaUnsupported
		},
		close: func() {},
	}, nil
}

func openPGXStore(ctx context.Context, dsn string, options ...postgresengine.Option) (store, error) {
	pool, err := config.PostgresPGXPool(ctx, dsn)
	if err != nil {
		return store{}, err
	}

	engine, err := postgresengine.NewEngineFromPGXPool(pool, options...)
	if err != nil {
		pool.Close()
		return store{}, err
	}

	return store{engine: engine, createSchema: engine.CreateSchema, close: pool.Close}, nil
}

func openSQLDBStore(ctx context.Context, dsn string, options ...postgresengine.Option) (store, error) {
	db, err := config.PostgresSQLDB(ctx, dsn)
	if err != nil {
		return store{}, err
	}

	engine, err := postgresengine.NewEngineFromSQLDB(db, options...)
	if err != nil {
		_ = db.Close()
		return store{}, err
	}

	return store{engine: engine, createSchema: engine.CreateSchema, close: func() { _ = db.Close() }}, nil
}

func openSQLXStore(ctx context.Context, dsn string, options ...postgresengine.Option) (store, error) {
	db, err := config.PostgresSQLX(ctx, dsn)
	if err != nil {
		return store{}, err
	}

	engine, err := postgresengine.NewEngineFromSQLX(db, options...)
	if err != nil {
		_ = db.Close()
		return store{}, err
	}

	return store{engine: engine, createSchema: engine.CreateSchema, close: func() { _ = db.Close() }}, nil
}
