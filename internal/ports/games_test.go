package ports_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Amund211/gameshelf/internal/app"
	"github.com/Amund211/gameshelf/internal/domain"
	"github.com/Amund211/gameshelf/internal/ports"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func noopMiddleware(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h(w, r)
	}
}

func TestMakeGetGameHandler(t *testing.T) {
	t.Parallel()

	makeGetGame := func(t *testing.T, expectedID string, game domain.Game, err error) (app.GetGame, *bool) {
		called := false
		return func(ctx context.Context, id string) (domain.Game, error) {
			t.Helper()
			require.Equal(t, expectedID, id)

			called = true

			return game, err
		}, &called
	}

	makeRequest := func(id string) *http.Request {
		req := httptest.NewRequest("GET", "/v1/games/"+id, nil)
		req.SetPathValue("id", id)
		return req
	}

	hades := domain.Game{
		ID:            "hades",
		Title:         "Hades",
		Genres:        []string{"action", "roguelike"},
		Platforms:     []string{"pc", "switch"},
		ReleaseDate:   time.Date(2020, time.September, 17, 0, 0, 0, 0, time.UTC),
		AverageRating: 4.7,
		RatingCount:   8311,
		Source:        domain.SourceDetail,
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		getGame, called := makeGetGame(t, "hades", hades, nil)
		handler := ports.MakeGetGameHandler(getGame, testLogger, noopMiddleware)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, makeRequest("hades"))

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{
			"success": true,
			"game": {
				"id": "hades",
				"title": "Hades",
				"genres": ["action", "roguelike"],
				"platforms": ["pc", "switch"],
				"releaseDate": "2020-09-17",
				"averageRating": 4.7,
				"ratingCount": 8311,
				"source": "detail"
			}
		}`, w.Body.String())
		require.Equal(t, "application/json", w.Result().Header.Get("Content-Type"))
		require.True(t, *called)
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()

		getGame, _ := makeGetGame(t, "untitled", domain.Game{ID: "untitled", Source: "list:upcoming"}, nil)
		handler := ports.MakeGetGameHandler(getGame, testLogger, noopMiddleware)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, makeRequest("untitled"))

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{
			"success": true,
			"game": {
				"id": "untitled",
				"title": "",
				"genres": [],
				"platforms": [],
				"releaseDate": null,
				"averageRating": 0,
				"ratingCount": 0,
				"source": "list:upcoming"
			}
		}`, w.Body.String())
	})

	t.Run("invalid id", func(t *testing.T) {
		t.Parallel()

		getGame, called := makeGetGame(t, "", domain.Game{}, nil)
		handler := ports.MakeGetGameHandler(getGame, testLogger, noopMiddleware)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, makeRequest("hades.json"))

		require.Equal(t, http.StatusBadRequest, w.Code)
		require.JSONEq(t, `{"success":false,"cause":"invalid game id"}`, w.Body.String())
		require.False(t, *called)
	})

	errorCases := []struct {
		name       string
		err        error
		statusCode int
		cause      string
	}{
		{name: "not found", err: domain.ErrGameNotFound, statusCode: http.StatusNotFound, cause: "not found"},
		{name: "temporarily unavailable", err: domain.ErrTemporarilyUnavailable, statusCode: http.StatusServiceUnavailable, cause: "temporarily unavailable"},
		{name: "other error", err: assertAnError, statusCode: http.StatusInternalServerError, cause: "internal server error"},
	}

	for _, c := range errorCases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			getGame, called := makeGetGame(t, "hades", domain.Game{}, c.err)
			handler := ports.MakeGetGameHandler(getGame, testLogger, noopMiddleware)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, makeRequest("hades"))

			require.Equal(t, c.statusCode, w.Code)
			require.JSONEq(t, `{"success":false,"cause":"`+c.cause+`"}`, w.Body.String())
			require.True(t, *called)
		})
	}
}
