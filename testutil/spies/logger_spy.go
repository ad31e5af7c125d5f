package spies

import (
	"context"
	"slices"
	"sync"

	"github.com/AntonStoeckl/book-reservations-go/reservationstore"
)

// SpyLogRecord represents a recorded log call.
type SpyLogRecord struct {
	Level   string
	Message string
	Args    []any
}

type logRecords struct {
	records     []SpyLogRecord
	mu          sync.Mutex
	recordCalls bool
}

func (r *logRecords) add(level, msg string, args []any) {
	if !r.recordCalls {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, SpyLogRecord{Level: level, Message: msg, Args: slices.Clone(args)})
}

func (r *logRecords) has(level, msg string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.ContainsFunc(r.records, func(record SpyLogRecord) bool {
		return record.Level == level && record.Message == msg
	})
}

// Records returns a copy of all captured log records.
func (r *logRecords) Records() []SpyLogRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.records)
}

// HasDebugLog checks if a debug log with the specified message exists.
func (r *logRecords) HasDebugLog(msg string) bool { return r.has("debug", msg) }

// HasInfoLog checks if an info log with the specified message exists.
func (r *logRecords) HasInfoLog(msg string) bool { return r.has("info", msg) }

// HasWarnLog checks if a warn log with the specified message exists.
func (r *logRecords) HasWarnLog(msg string) bool { return r.has("warn", msg) }

// HasErrorLog checks if an error log with the specified message exists.
func (r *logRecords) HasErrorLog(msg string) bool { return r.has("error", msg) }

// LoggerSpy is a Logger implementation that captures logging calls for testing.
type LoggerSpy struct {
	logRecords
}

// NewLoggerSpy creates a new LoggerSpy.
func NewLoggerSpy(recordCalls bool) *LoggerSpy {
	return &LoggerSpy{logRecords{recordCalls: recordCalls}}
}

func (s *LoggerSpy) Debug(msg string, args ...any) { s.add("debug", msg, args) }
func (s *LoggerSpy) Info(msg string, args ...any)  { s.add("info", msg, args) }
func (s *LoggerSpy) Warn(msg string, args ...any)  { s.add("warn", msg, args) }
func (s *LoggerSpy) Error(msg string, args ...any) { s.add("error", msg, args) }

// ContextualLoggerSpy is a ContextualLogger implementation that captures contextual logging calls for testing.
type ContextualLoggerSpy struct {
	logRecords
}

// NewContextualLoggerSpy creates a new ContextualLoggerSpy.
func NewContextualLoggerSpy(recordCalls bool) *ContextualLoggerSpy {
	return &ContextualLoggerSpy{logRecords{recordCalls: recordCalls}}
}

func (s *ContextualLoggerSpy) DebugContext(_ context.Context, msg string, args ...any) {
	s.add("debug", msg, args)
}

func (s *ContextualLoggerSpy) InfoContext(_ context.Context, msg string, args ...any) {
	s.add("info", msg, args)
}

func (s *ContextualLoggerSpy) WarnContext(_ context.Context, msg string, args ...any) {
	s.add("warn", msg, args)
}

func (s *ContextualLoggerSpy) ErrorContext(_ context.Context, msg string, args ...any) {
	s.add("error", msg, args)
}

var (
	_ reservationstore.Logger           = (*LoggerSpy)(nil)
	_ reservationstore.ContextualLogger = (*ContextualLoggerSpy)(nil)
)
