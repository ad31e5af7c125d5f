package postgresengine

import (
	"context"
	"fmt"
	"time"

	"github.com/AntonStoeckl/book-reservations-go/reservationstore/postgresengine/internal/adapters"
)

// fakeDB is a scripted adapters.DBAdapter: every Query pops the next result set and every Exec
// pops the next affected row count. All statements are recorded.
type fakeDB struct {
	queryResults  [][][]any
	execResults   []int64
	statements    []string
	committed     bool
	rolledBack    bool
	beginErr      error
	commitErr     error
	execErr       error
	transactional bool
}

func (f *fakeDB) Query(_ context.Context, query string) (adapters.DBRows, error) {
	f.statements = append(f.statements, query)

	if len(f.queryResults) == 0 {
		return &fakeRows{}, nil
	}

	result := f.queryResults[0]
	f.queryResults = f.queryResults[1:]

	return &fakeRows{values: result, pos: -1}, nil
}

func (f *fakeDB) Exec(_ context.Context, query string) (adapters.DBResult, error) {
	f.statements = append(f.statements, query)

	if f.execErr != nil {
		return nil, f.execErr
	}

	var affected int64
	if len(f.execResults) > 0 {
		affected = f.execResults[0]
		f.execResults = f.execResults[1:]
	}

	return fakeResult(affected), nil
}

func (f *fakeDB) BeginTx(_ context.Context) (adapters.DBTx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}

	f.transactional = true

	return f, nil
}

func (f *fakeDB) Commit(_ context.Context) error {
	if f.commitErr != nil {
		return f.commitErr
	}

	f.committed = true

	return nil
}

func (f *fakeDB) Rollback(_ context.Context) error {
	f.rolledBack = true
	return nil
}

type fakeResult int64

func (r fakeResult) RowsAffected() (int64, error) {
	return int64(r), nil
}

type fakeRows struct {
	values [][]any
	pos    int
}

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos < len(r.values)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.values[r.pos]
	if len(row) != len(dest) {
		return fmt.Errorf("expected %d destinations, got %d", len(row), len(dest))
	}

	for i, value := range row {
		switch d := dest[i].(type) {
		case *int64:
			*d = value.(int64)
		case *int:
			*d = value.(int)
		case *string:
			*d = value.(string)
		case **string:
			if value == nil {
				*d = nil
			} else {
				s := value.(string)
				*d = &s
			}
		case *time.Time:
			*d = value.(time.Time)
		case *[]byte:
			*d = []byte(value.(string))
		default:
			return fmt.Errorf("unsupported destination %T", dest[i])
		}
	}

	return nil
}

func (r *fakeRows) Err() error {
	return nil
}

func (r *fakeRows) Close() error {
	return nil
}

func newEngineWithFakeDB(db *fakeDB, options ...Option) Engine {
	e, err := newEngine(db, options...)
	if err != nil {
		panic(err)
	}

	return e
}
