// Package memoryengine provides an in-memory implementation of the reservation unit of work.
//
// Transactions are serialized and run against a copy of the state, which replaces the
// committed state only if the work succeeds. It is meant for tests, demos, and the CLI
// when no database is configured.
package memoryengine
