package config

import (
	"errors"
	"os"
	"strings"
)

const (
	// DatabaseURLEnv names the environment variable holding the PostgreSQL DSN.
	DatabaseURLEnv = "RESERVATIONS_DATABASE_URL"

	// AdapterEnv names the environment variable selecting the database library.
	AdapterEnv = "DB_ADAPTER"
)

// Adapter selects which database library the postgres engine runs on.
type Adapter string

const (
	AdapterPGX  Adapter = "pgx"
	AdapterSQL  Adapter = "sql"
	AdapterSQLX Adapter = "sqlx"
)

var (
	// ErrMissingDatabaseURL is returned when no DSN is configured.
	ErrMissingDatabaseURL = errors.New(DatabaseURLEnv + " is not set")

	// ErrUnsupportedAdapter is returned for an unknown DB_ADAPTER value.
	ErrUnsupportedAdapter = errors.New("unsupported " + AdapterEnv + ", use one of pgx, sql, sqlx")
)

// PostgresDSN returns the DSN from RESERVATIONS_DATABASE_URL.
func PostgresDSN() (string, error) {
	dsn := strings.TrimSpace(os.Getenv(DatabaseURLEnv))
	if dsn == "" {
		return "", ErrMissingDatabaseURL
	}

	return dsn, nil
}

// HasPostgresDSN reports whether a DSN is configured.
func HasPostgresDSN() bool {
	_, err := PostgresDSN()
	return err == nil
}

// AdapterFromEnv returns the adapter named in DB_ADAPTER, pgx if it is empty.
func AdapterFromEnv() (Adapter, error) {
	switch value := Adapter(strings.ToLower(strings.TrimSpace(os.Getenv(AdapterEnv)))); value {
	case "":
		return AdapterPGX, nil
	case AdapterPGX, AdapterSQL, AdapterSQLX:
		return value, nil
	default:
		return "", errors.Join(ErrUnsupportedAdapter, errors.New(string(value)))
	}
}
