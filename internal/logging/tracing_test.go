package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/Amund211/gameshelf/internal/logging"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestGoogleCloudTracingLogHandler(t *testing.T) {
	t.Parallel()

	newLogger := func() (*slog.Logger, *bytes.Buffer) {
		var buf bytes.Buffer
		handler := logging.NewGoogleCloudTracingLogHandler(slog.NewJSONHandler(&buf, nil), "my-project")
		return slog.New(handler).With("port", "games"), &buf
	}

	parse := func(t *testing.T, buf *bytes.Buffer) map[string]any {
		t.Helper()
		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		return record
	}

	t.Run("with span", func(t *testing.T) {
		t.Parallel()

		traceID, err := trace.TraceIDFromHex("0123456789abcdef0123456789abcdef")
		require.NoError(t, err)
		spanID, err := trace.SpanIDFromHex("0123456789abcdef")
		require.NoError(t, err)
		ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    traceID,
			SpanID:     spanID,
			TraceFlags: trace.FlagsSampled,
		}))

		logger, buf := newLogger()
		logger.InfoContext(ctx, "Getting game")

		record := parse(t, buf)
		require.Equal(t, "projects/my-project/traces/0123456789abcdef0123456789abcdef", record["logging.googleapis.com/trace"])
		require.Equal(t, "0123456789abcdef", record["logging.googleapis.com/spanId"])
		require.Equal(t, true, record["logging.googleapis.com/trace_sampled"])
		require.Equal(t, "games", record["port"])
	})

	t.Run("without span", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		logger.InfoContext(context.Background(), "Getting game")

		record := parse(t, buf)
		require.NotContains(t, record, "logging.googleapis.com/trace")
		require.Equal(t, "Getting game", record["msg"])
	})
}
