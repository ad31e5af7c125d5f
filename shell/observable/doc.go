// Package observable provides decorators that add metrics, tracing, and logging
// to any command or query handler without touching its business logic.
package observable
