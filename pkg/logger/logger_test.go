package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Logger
	Logger = New(&buf, "storefront-state", false)
	t.Cleanup(func() { Logger = prev })
	return &buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestComponent_TagsEntries(t *testing.T) {
	buf := capture(t)

	Component(context.Background(), "cart-storage").Info().Str("op", "addItem").Msg("State updated")

	entry := lastEntry(t, buf)
	assert.Equal(t, "storefront-state", entry["service"])
	assert.Equal(t, "cart-storage", entry["component"])
	assert.Equal(t, "addItem", entry["op"])
	assert.NotContains(t, entry, "trace_id")
}

func TestWithContext_AddsTraceIDs(t *testing.T) {
	buf := capture(t)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01, 0x02},
		SpanID:     trace.SpanID{0x03},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	Warn(ctx).Msg("slow save")

	entry := lastEntry(t, buf)
	assert.Equal(t, sc.TraceID().String(), entry["trace_id"])
	assert.Equal(t, sc.SpanID().String(), entry["span_id"])
	assert.Equal(t, "warn", entry["level"])
}

func TestSetLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	SetLevel("error")
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())

	SetLevel("verbose")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	SetLevel("")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
