// Package spies provides test doubles for the observability interfaces of the reservation store
// and the command and query handlers. Every spy records calls only if it was created with recordCalls=true.
package spies
