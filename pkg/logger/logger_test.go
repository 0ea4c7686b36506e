package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/abgdnv/inventory/pkg/web"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestContextHandler_AddsTraceAndRequestID(t *testing.T) {
	// given
	var buf bytes.Buffer
	l := slog.New(NewContextHandler(slog.NewJSONHandler(&buf, nil)))
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "abc")

	// when
	l.InfoContext(ctx, "message")

	// then
	record := decode(t, &buf)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", record["trace_id"])
	assert.Equal(t, "abc", record["request_id"])
}

func TestContextHandler_PrefersInjectedRequestID(t *testing.T) {
	testCases := []struct {
		name     string
		ctx      context.Context
		expected string
	}{
		{name: "injected only", ctx: web.WithRequestID(context.Background(), "client-id"), expected: "client-id"},
		{name: "injected over chi", ctx: web.WithRequestID(context.WithValue(context.Background(), middleware.RequestIDKey, "chi-id"), "client-id"), expected: "client-id"},
		{name: "empty injected falls back to chi", ctx: web.WithRequestID(context.WithValue(context.Background(), middleware.RequestIDKey, "chi-id"), ""), expected: "chi-id"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			var buf bytes.Buffer
			l := slog.New(NewContextHandler(slog.NewJSONHandler(&buf, nil)))

			// when
			l.InfoContext(tc.ctx, "message")

			// then
			assert.Equal(t, tc.expected, decode(t, &buf)["request_id"])
		})
	}
}

func TestContextHandler_WithoutContextValues(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewContextHandler(slog.NewJSONHandler(&buf, nil)))

	l.With("k", "v").WithGroup("g").Info("message", "x", 1)

	record := decode(t, &buf)
	assert.NotContains(t, record, "trace_id")
	assert.NotContains(t, record, "request_id")
	assert.Equal(t, "v", record["k"])
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, nil))

	Component(l, "store").Info("message")

	record := decode(t, &buf)
	assert.Equal(t, "store", record["component"])
	assert.NotPanics(t, func() { Component(nil, "noop").Info("discarded") })
}
