package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		" INFO ":  Info,
		"":        Info,
		"warning": Warn,
		"warn":    Warn,
		"error":   Error,
		"verbose": Info,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat("xml"))
}

func TestZapLogger_FieldsAndWith(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core))

	child := l.With(map[string]any{"request_id": "r-1"})
	child.Info("event updated", map[string]any{"event_id": "e-1", "": "ignored"})
	child.Error("save failed", map[string]any{"err": errors.New("boom")})

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "event updated", entries[0].Message)
	assert.Equal(t, "r-1", first["request_id"])
	assert.Equal(t, "e-1", first["event_id"])
	assert.NotContains(t, first, "")

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["err"])
}

func TestZapLogger_WithEmptyReturnsSame(t *testing.T) {
	l := Nop()
	assert.Same(t, l, l.With(nil))
}

func TestNew_RespectsLevel(t *testing.T) {
	l := New(Options{Level: Warn, Format: FormatJSON, App: "event-scheduler"})
	zl, ok := l.(*ZapLogger)
	require.True(t, ok)
	assert.False(t, zl.z.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, zl.z.Core().Enabled(zapcore.WarnLevel))
}
