// Package config provides environment-driven configuration for the reservation service:
// the PostgreSQL connection (pgx.Pool, sql.DB, or sqlx.DB), the fee policy,
// and the OpenTelemetry providers.
//
// This package is part of the shell (infrastructure) layer.
package config
