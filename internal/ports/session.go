package ports

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Amund211/gameshelf/internal/app"
	"github.com/Amund211/gameshelf/internal/logging"
	"github.com/Amund211/gameshelf/internal/reporting"
)

func MakeResetSessionHandler(
	resetSession app.ResetSession,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := ComposeMiddlewares(
		buildMetricsMiddleware("reset_session"),
		logging.NewRequestLoggerMiddleware(rootLogger),
		sentryMiddleware,
		reporting.NewAddMetaMiddleware("reset_session"),
		newIPRateLimitMiddleware(1, 10),
		newUserIDRateLimitMiddleware(1, 5),
	)

	handler := func(w http.ResponseWriter, r *http.Request) {
		resetSession(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}

	return middleware(handler)
}

func MakeGetSessionStatsHandler(
	getSessionStats app.GetSessionStats,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := ComposeMiddlewares(
		buildMetricsMiddleware("get_session_stats"),
		logging.NewRequestLoggerMiddleware(rootLogger),
		sentryMiddleware,
		reporting.NewAddMetaMiddleware("get_session_stats"),
		newIPRateLimitMiddleware(4, 240),
	)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		response, err := makeSessionStatsResponse(getSessionStats(ctx))
		if err != nil {
			reporting.Report(ctx, fmt.Errorf("failed to create session stats response: %w", err))
			writeErrorResponse(ctx, w, "internal server error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, response)
	}

	return middleware(handler)
}
