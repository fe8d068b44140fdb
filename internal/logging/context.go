package logging

import (
	"context"
	"log/slog"
	"os"

	"github.com/Amund211/gameshelf/internal/domain"
)

type loggerContextKey struct{}

// Used outside of requests, e.g. in tests or background work that was never handed a logger
var fallbackLogger = slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("logger", "fallback"))

func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return fallbackLogger
}

func AddToContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// AddMetaToContext returns a context whose logger carries attrs on every line
func AddMetaToContext(ctx context.Context, attrs ...slog.Attr) context.Context {
	if len(attrs) == 0 {
		return ctx
	}
	logger := FromContext(ctx)
	return AddToContext(ctx, slog.New(logger.Handler().WithAttrs(attrs)))
}

func AddGameToContext(ctx context.Context, gameID string) context.Context {
	return AddMetaToContext(ctx, slog.String("gameId", gameID))
}

// AddListRowToContext tags log lines with the browse row being served.
// Genre rows also get the genre on its own so they can be filtered across kinds.
func AddListRowToContext(ctx context.Context, row domain.ListRow) context.Context {
	attrs := []slog.Attr{
		slog.String("row", row.Key()),
		slog.String("rowKind", string(row.Kind)),
	}
	if row.Kind == domain.ListGenre {
		attrs = append(attrs, slog.String("genre", row.Genre))
	}
	return AddMetaToContext(ctx, attrs...)
}
