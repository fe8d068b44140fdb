package ports

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Amund211/gameshelf/internal/app"
	"github.com/Amund211/gameshelf/internal/domain"
	"github.com/Amund211/gameshelf/internal/logging"
	"github.com/Amund211/gameshelf/internal/reporting"
	"github.com/Amund211/gameshelf/internal/strutils"
)

func MakeGetGameHandler(
	getGame app.GetGame,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := ComposeMiddlewares(
		buildMetricsMiddleware("get_game"),
		logging.NewRequestLoggerMiddleware(rootLogger),
		sentryMiddleware,
		reporting.NewAddMetaMiddleware("get_game"),
		newIPRateLimitMiddleware(8, 480),
	)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := r.PathValue("id")

		if err := strutils.ValidateKey(id); err != nil {
			writeErrorResponse(ctx, w, "invalid game id", http.StatusBadRequest)
			return
		}

		ctx = logging.AddGameToContext(ctx, id)
		ctx = reporting.AddExtrasToContext(ctx,
			map[string]string{
				"gameId": id,
			},
		)

		game, err := getGame(ctx, id)
		if errors.Is(err, domain.ErrGameNotFound) {
			writeErrorResponse(ctx, w, "not found", http.StatusNotFound)
			return
		} else if errors.Is(err, domain.ErrTemporarilyUnavailable) {
			writeErrorResponse(ctx, w, "temporarily unavailable", http.StatusServiceUnavailable)
			return
		} else if err != nil {
			// NOTE: GetGame implementations handle their own error reporting
			writeErrorResponse(ctx, w, "internal server error", http.StatusInternalServerError)
			return
		}

		response, err := makeGameResponse(game)
		if err != nil {
			reporting.Report(ctx, fmt.Errorf("failed to create game response: %w", err))
			writeErrorResponse(ctx, w, "internal server error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, response)
	}

	return middleware(handler)
}
