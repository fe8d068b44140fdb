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

// MakeGetListRowHandler serves both /v1/lists/{row} and /v1/lists/{row}/{genre}
func MakeGetListRowHandler(
	getListRow app.GetListRow,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := ComposeMiddlewares(
		buildMetricsMiddleware("get_list_row"),
		logging.NewRequestLoggerMiddleware(rootLogger),
		sentryMiddleware,
		reporting.NewAddMetaMiddleware("get_list_row"),
		newIPRateLimitMiddleware(4, 240),
	)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		genre := r.PathValue("genre")
		if genre != "" {
			if err := strutils.ValidateKey(genre); err != nil {
				writeErrorResponse(ctx, w, "invalid genre", http.StatusBadRequest)
				return
			}
		}

		row, err := domain.ParseListRow(r.PathValue("row"), genre)
		if err != nil {
			writeErrorResponse(ctx, w, "unknown list row", http.StatusBadRequest)
			return
		}

		ctx = reporting.AddTagsToContext(ctx,
			map[string]string{
				"row": string(row.Kind),
			},
		)

		games, err := getListRow(ctx, row)
		if errors.Is(err, domain.ErrTemporarilyUnavailable) {
			writeErrorResponse(ctx, w, "temporarily unavailable", http.StatusServiceUnavailable)
			return
		} else if err != nil {
			// NOTE: GetListRow implementations handle their own error reporting
			writeErrorResponse(ctx, w, "internal server error", http.StatusInternalServerError)
			return
		}

		response, err := makeListRowResponse(row, games)
		if err != nil {
			reporting.Report(ctx, fmt.Errorf("failed to create list row response: %w", err))
			writeErrorResponse(ctx, w, "internal server error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, response)
	}

	return middleware(handler)
}
