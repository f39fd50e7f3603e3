package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	Init(Config{Level: level, Format: "json", Output: buf})
	t.Cleanup(func() { Init(Config{}) })
	return buf
}

func TestCtx_AddsRequestID(t *testing.T) {
	buf := captureLogs(t, "info")

	ctx := WithRequestID(context.Background(), "req-123")
	Ctx(ctx).Info().Str("strategy", "artist").Msg("done")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "artist", entry["strategy"])
	assert.Equal(t, "done", entry["message"])
}

func TestCtx_WithoutRequestID(t *testing.T) {
	buf := captureLogs(t, "info")

	Ctx(context.Background()).Info().Msg("plain")

	assert.NotContains(t, buf.String(), "request_id")
}

func TestInit_Level(t *testing.T) {
	buf := captureLogs(t, "warn")

	Info().Msg("hidden")
	Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"WARNING": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
		"off":     zerolog.Disabled,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
	assert.True(t, ValidLevel("Debug"))
	assert.False(t, ValidLevel("bogus"))
}

func TestComponent(t *testing.T) {
	buf := captureLogs(t, "info")

	l := Component("spotify")
	l.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"spotify"`)
}

func TestNewRequestID(t *testing.T) {
	a, b := NewRequestID(), NewRequestID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
	assert.Empty(t, RequestIDFromContext(context.Background()))
}
