// File: internal/session/session_test.go
package session

import (
	stdjson "encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mkeller0x/layerforge-cli/api/schemas"
)

func TestLogger_MintsStableSessionID(t *testing.T) {
	l := NewLogger(zap.NewNop())
	require.NotEmpty(t, l.SessionID())
	assert.Equal(t, l.SessionID(), l.SessionID())

	other := NewLogger(zap.NewNop())
	assert.NotEqual(t, l.SessionID(), other.SessionID(), "each logger instance has its own session")
}

func TestLogger_AppendsEventsInOrder(t *testing.T) {
	l := NewLogger(zap.NewNop())
	l.Info("first", nil)
	l.Debug("second", map[string]string{"k": "v"})
	l.Error("third", errors.New("boom"))

	events := l.Events()
	require.Len(t, events, 3)
	assert.Equal(t, "first", events[0].Message)
	assert.Equal(t, "info", events[0].Level)
	assert.Equal(t, "second", events[1].Message)
	assert.Equal(t, "v", events[1].Fields["k"])
	assert.Equal(t, "error", events[2].Level)
	assert.Equal(t, "boom", events[2].Fields["cause"])

	for _, ev := range events {
		assert.Equal(t, l.SessionID(), ev.SessionID)
		assert.False(t, ev.Timestamp.IsZero())
	}
}

func TestLogger_EventsReturnsACopy(t *testing.T) {
	l := NewLogger(zap.NewNop())
	l.Info("one", nil)

	events := l.Events()
	events[0].Message = "tampered"

	assert.Equal(t, "one", l.Events()[0].Message)
}

func TestLogger_ExportLogsIsValidJSON(t *testing.T) {
	l := NewLogger(zap.NewNop())
	l.Info("pipeline started", map[string]string{"layers": "[1 2]"})
	l.Error("layer reverted", errors.New("invalid-output"))

	data := l.ExportLogs()

	var decoded []schemas.LogEvent
	require.NoError(t, stdjson.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "pipeline started", decoded[0].Message)
	assert.Equal(t, l.SessionID(), decoded[0].SessionID)
}

func TestLogger_ExportEmpty(t *testing.T) {
	l := NewLogger(zap.NewNop())

	var decoded []schemas.LogEvent
	require.NoError(t, stdjson.Unmarshal(l.ExportLogs(), &decoded))
	assert.Empty(t, decoded)
}
