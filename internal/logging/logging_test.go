package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raoulx24/rollclean/internal/config"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(config.LoggingConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)

	Component(l, "retention").Debug("archive removed", "path", "a.log")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "archive removed", entry["msg"])
	assert.Equal(t, "retention", entry["component"])
	assert.Equal(t, "a.log", entry["path"])
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(config.LoggingConfig{Level: "warn"}, &buf)
	require.NoError(t, err)

	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_Errors(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "loud"}, nil)
	assert.Error(t, err)

	_, err = New(config.LoggingConfig{Format: "xml"}, nil)
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type countingLogger struct{ n int }

func (c *countingLogger) Debug(string, ...any) { c.n++ }
func (c *countingLogger) Info(string, ...any) { c.n++ }
func (c *countingLogger) Warn(string, ...any) { c.n++ }
func (c *countingLogger) Error(string, ...any) { c.n++ }

func TestComponent_NonSlogLoggerPassesThrough(t *testing.T) {
	c := &countingLogger{}
	Component(c, "x").Info("hello")
	assert.Equal(t, 1, c.n)

	assert.NotNil(t, Component(nil, "x"))
}
