// File: internal/session/session.go
// Description: Append-only structured event log keyed by a session id minted
// once per process. Telemetry is best-effort: export failures are logged and
// swallowed, never surfaced to the pipeline.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/mkeller0x/layerforge-cli/api/schemas"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Logger records session-scoped events alongside the zap stream. Events are
// retained for the process lifetime; retention policy beyond that belongs to
// the surrounding application.
type Logger struct {
	sessionID string
	zl        *zap.Logger

	mu     sync.Mutex
	events []schemas.LogEvent
}

// NewLogger mints a fresh session id and wires the zap logger the events are
// mirrored to.
func NewLogger(zl *zap.Logger) *Logger {
	return &Logger{
		sessionID: uuid.New().String(),
		zl:        zl.Named("session"),
	}
}

// SessionID returns the identifier attached to every event.
func (l *Logger) SessionID() string {
	return l.sessionID
}

// Info appends an info-level event.
func (l *Logger) Info(message string, fields map[string]string) {
	l.append("info", message, fields)
	l.zl.Info(message, zapFields(fields)...)
}

// Debug appends a debug-level event.
func (l *Logger) Debug(message string, fields map[string]string) {
	l.append("debug", message, fields)
	l.zl.Debug(message, zapFields(fields)...)
}

// Error appends an error-level event carrying the cause.
func (l *Logger) Error(message string, cause error) {
	fields := map[string]string{}
	if cause != nil {
		fields["cause"] = cause.Error()
	}
	l.append("error", message, fields)
	l.zl.Error(message, zap.Error(cause))
}

func (l *Logger) append(level, message string, fields map[string]string) {
	ev := schemas.LogEvent{
		Timestamp: time.Now().UTC(),
		SessionID: l.sessionID,
		Level:     level,
		Message:   message,
		Fields:    fields,
	}
	l.mu.Lock()
	l.events = append(l.events, ev)
	l.mu.Unlock()
}

// Events returns a copy of the recorded events in append order.
func (l *Logger) Events() []schemas.LogEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]schemas.LogEvent, len(l.events))
	copy(out, l.events)
	return out
}

// ExportLogs serializes the event list as a JSON array. Serialization errors
// are swallowed after logging; the caller gets an empty record set rather
// than a failure.
func (l *Logger) ExportLogs() []byte {
	events := l.Events()
	data, err := json.Marshal(events)
	if err != nil {
		l.zl.Error("Failed to serialize session log export", zap.Error(err))
		return []byte("[]")
	}
	return data
}

func zapFields(fields map[string]string) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.String(k, v))
	}
	return out
}
