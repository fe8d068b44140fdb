package ports

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Amund211/gameshelf/internal/adapters/cache"
	"github.com/Amund211/gameshelf/internal/domain"
	"github.com/Amund211/gameshelf/internal/reporting"
)

type gameResponseObject struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Summary       string   `json:"summary,omitempty"`
	Genres        []string `json:"genres"`
	Platforms     []string `json:"platforms"`
	ReleaseDate   *string  `json:"releaseDate"`
	AverageRating float64  `json:"averageRating"`
	RatingCount   int      `json:"ratingCount"`
	CoverURL      string   `json:"coverUrl,omitempty"`
	Source        string   `json:"source"`
}

type gameResponse struct {
	Success bool               `json:"success"`
	Game    gameResponseObject `json:"game"`
}

type listRowResponse struct {
	Success bool                 `json:"success"`
	Row     string               `json:"row"`
	Games   []gameResponseObject `json:"games"`
}

type sessionStatsResponse struct {
	Success         bool `json:"success"`
	Entries         int  `json:"entries"`
	EntryCapacity   int  `json:"entryCapacity"`
	ListKeys        int  `json:"listKeys"`
	ListKeyCapacity int  `json:"listKeyCapacity"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Cause   string `json:"cause"`
}

func gameToResponseObject(game domain.Game) gameResponseObject {
	var releaseDate *string
	if !game.ReleaseDate.IsZero() {
		formatted := game.ReleaseDate.Format("2006-01-02")
		releaseDate = &formatted
	}

	// Always serialize as arrays
	genres := game.Genres
	if genres == nil {
		genres = []string{}
	}
	platforms := game.Platforms
	if platforms == nil {
		platforms = []string{}
	}

	return gameResponseObject{
		ID:            game.ID,
		Title:         game.Title,
		Summary:       game.Summary,
		Genres:        genres,
		Platforms:     platforms,
		ReleaseDate:   releaseDate,
		AverageRating: game.AverageRating,
		RatingCount:   game.RatingCount,
		CoverURL:      game.CoverURL,
		Source:        game.Source,
	}
}

func makeGameResponse(game domain.Game) ([]byte, error) {
	return json.Marshal(gameResponse{
		Success: true,
		Game:    gameToResponseObject(game),
	})
}

func makeListRowResponse(row domain.ListRow, games []domain.Game) ([]byte, error) {
	objects := make([]gameResponseObject, 0, len(games))
	for _, game := range games {
		objects = append(objects, gameToResponseObject(game))
	}
	return json.Marshal(listRowResponse{
		Success: true,
		Row:     row.Key(),
		Games:   objects,
	})
}

func makeSessionStatsResponse(stats cache.SessionStats) ([]byte, error) {
	return json.Marshal(sessionStatsResponse{
		Success:         true,
		Entries:         stats.Entries,
		EntryCapacity:   stats.EntryCapacity,
		ListKeys:        stats.ListKeys,
		ListKeyCapacity: stats.ListKeyCapacity,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(body)
}

func writeErrorResponse(ctx context.Context, w http.ResponseWriter, cause string, statusCode int) {
	response, err := json.Marshal(errorResponse{Success: false, Cause: cause})
	if err != nil {
		reporting.Report(ctx, fmt.Errorf("failed to marshal error response: %w", err))
		writeJSON(w, http.StatusInternalServerError, []byte(`{"success":false,"cause":"internal server error"}`))
		return
	}
	writeJSON(w, statusCode, response)
}
