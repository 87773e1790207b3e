// Package testutil provides shared test helpers for the lien deadline
// service.
package testutil

import (
	"strings"
	"sync"

	"github.com/turtacn/LienDeadline/internal/infrastructure/monitoring/logging"
)

// LogEntry is one entry captured by RecordingLogger.
type LogEntry struct {
	Level   string
	Logger  string
	Message string
	Fields  map[string]interface{}
}

// recordingSink is shared by a RecordingLogger and all of its children.
type recordingSink struct {
	mu      sync.Mutex
	entries []LogEntry
}

// RecordingLogger implements logging.Logger and keeps every entry in memory.
// Children created with With and Named write to the same sink.
type RecordingLogger struct {
	sink   *recordingSink
	name   string
	fields []logging.Field
}

// NewRecordingLogger creates an empty RecordingLogger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{sink: &recordingSink{}}
}

func (l *RecordingLogger) log(level, msg string, fields []logging.Field) {
	m := make(map[string]interface{}, len(l.fields)+len(fields))
	for _, f := range l.fields {
		m[f.Key] = f.Value
	}
	for _, f := range fields {
		m[f.Key] = f.Value
	}

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.entries = append(l.sink.entries, LogEntry{Level: level, Logger: l.name, Message: msg, Fields: m})
}

func (l *RecordingLogger) Debug(msg string, fields ...logging.Field) { l.log("debug", msg, fields) }
func (l *RecordingLogger) Info(msg string, fields ...logging.Field)  { l.log("info", msg, fields) }
func (l *RecordingLogger) Warn(msg string, fields ...logging.Field)  { l.log("warn", msg, fields) }
func (l *RecordingLogger) Error(msg string, fields ...logging.Field) { l.log("error", msg, fields) }

// Fatal records the entry at "fatal" and does not exit.
func (l *RecordingLogger) Fatal(msg string, fields ...logging.Field) { l.log("fatal", msg, fields) }

func (l *RecordingLogger) With(fields ...logging.Field) logging.Logger {
	child := &RecordingLogger{sink: l.sink, name: l.name}
	child.fields = append(append([]logging.Field(nil), l.fields...), fields...)
	return child
}

func (l *RecordingLogger) Named(name string) logging.Logger {
	n := name
	if l.name != "" {
		n = strings.Join([]string{l.name, name}, ".")
	}
	return &RecordingLogger{sink: l.sink, name: n, fields: l.fields}
}

func (l *RecordingLogger) Sync() error { return nil }

// Entries returns a copy of all entries.
func (l *RecordingLogger) Entries() []LogEntry {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	out := make([]LogEntry, len(l.sink.entries))
	copy(out, l.sink.entries)
	return out
}

// Find returns the entries whose message is msg.
func (l *RecordingLogger) Find(msg string) []LogEntry {
	var out []LogEntry
	for _, e := range l.Entries() {
		if e.Message == msg {
			out = append(out, e)
		}
	}
	return out
}

// Has reports whether an entry with level and msg was recorded.
func (l *RecordingLogger) Has(level, msg string) bool {
	for _, e := range l.Find(msg) {
		if e.Level == level {
			return true
		}
	}
	return false
}

// Clear drops all entries.
func (l *RecordingLogger) Clear() {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.entries = l.sink.entries[:0]
}
