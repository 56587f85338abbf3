package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel(" WARN "))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("chatty"))
}

func TestSamplingRatio(t *testing.T) {
	assert.Equal(t, 0.25, samplingRatio("0.25"))
	assert.Equal(t, 1.0, samplingRatio(""))
	assert.Equal(t, 1.0, samplingRatio("3"))
}

func TestNewLogger_FormatFollowsEnvironment(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "production", "info").Info("order routed", slog.Int64("order.id", 2))
	assert.Contains(t, buf.String(), `"order.id":2`)

	buf.Reset()
	newLogger(&buf, "development", "warn").Info("hidden")
	assert.Empty(t, buf.String())

	buf.Reset()
	newLogger(&buf, "development", "debug").DebugContext(context.Background(), "toast dispatched")
	assert.Contains(t, buf.String(), "msg=\"toast dispatched\"")
}

func TestInstruments_NilSafe(t *testing.T) {
	var i *Instruments
	assert.NotNil(t, i.Tracer("x"))
	assert.NotNil(t, i.Meter("x"))
}
