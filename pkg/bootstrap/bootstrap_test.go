package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/abgdnv/inventory/pkg/config"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_toLevel(t *testing.T) {
	testCases := []struct {
		in       string
		expected slog.Level
	}{
		{in: "debug", expected: slog.LevelDebug},
		{in: "info", expected: slog.LevelInfo},
		{in: "warn", expected: slog.LevelWarn},
		{in: "error", expected: slog.LevelError},
		{in: "", expected: slog.LevelInfo},
		{in: "verbose", expected: slog.LevelInfo},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.expected, toLevel(tc.in))
		})
	}
}

func Test_newLogger_AddsRequestID(t *testing.T) {
	// given
	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "info"})
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")

	// when
	logger.InfoContext(ctx, "hello")

	// then
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "req-42", record["request_id"])
}

func Test_newLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "warn"})

	logger.Info("dropped")

	assert.Empty(t, buf.String())
}

func Test_newLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "info", Format: "text"})

	logger.Info("hello", "product_id", "42")

	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "product_id=42")
}
