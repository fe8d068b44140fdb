package logging

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// NewGoogleCloudTracingLogHandler wraps baseHandler, tagging records with the active trace so Cloud Logging
// can group them under the request.
//
// NOTE: Only the *Context slog methods carry the span
func NewGoogleCloudTracingLogHandler(baseHandler slog.Handler, project string) slog.Handler {
	return &traceCorrelationHandler{
		base:        baseHandler,
		tracePrefix: "projects/" + project + "/traces/",
	}
}

type traceCorrelationHandler struct {
	base        slog.Handler
	tracePrefix string
}

func (h *traceCorrelationHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *traceCorrelationHandler) Handle(ctx context.Context, r slog.Record) error {
	spanContext := trace.SpanContextFromContext(ctx)
	if !spanContext.IsValid() {
		return h.base.Handle(ctx, r)
	}

	// https://docs.cloud.google.com/logging/docs/agent/logging/configuration#special-fields
	r = r.Clone()
	r.AddAttrs(
		slog.String("logging.googleapis.com/trace", h.tracePrefix+spanContext.TraceID().String()),
		slog.String("logging.googleapis.com/spanId", spanContext.SpanID().String()),
		slog.Bool("logging.googleapis.com/trace_sampled", spanContext.IsSampled()),
	)
	return h.base.Handle(ctx, r)
}

func (h *traceCorrelationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceCorrelationHandler{base: h.base.WithAttrs(attrs), tracePrefix: h.tracePrefix}
}

func (h *traceCorrelationHandler) WithGroup(name string) slog.Handler {
	return &traceCorrelationHandler{base: h.base.WithGroup(name), tracePrefix: h.tracePrefix}
}
