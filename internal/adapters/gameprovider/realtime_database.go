package gameprovider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Amund211/gameshelf/internal/domain"
	"github.com/Amund211/gameshelf/internal/logging"
	"github.com/Amund211/gameshelf/internal/reporting"
	"golang.org/x/time/rate"
)

const releaseDateLayout = "2006-01-02"

// RealtimeDatabase reads games from the REST interface of the hosted realtime database
type RealtimeDatabase struct {
	httpClient HttpClient
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
}

func NewRealtimeDatabase(httpClient HttpClient, baseURL string, apiKey string, limiter *rate.Limiter) *RealtimeDatabase {
	return &RealtimeDatabase{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		limiter:    limiter,
	}
}

func (db *RealtimeDatabase) GetGame(ctx context.Context, id string) (domain.Game, error) {
	data, statusCode, err := db.get(ctx, fmt.Sprintf("games/%s", url.PathEscape(id)))
	if err != nil {
		return domain.Game{}, err
	}

	game, err := gameFromResponse(statusCode, data, id)
	if err != nil {
		if errors.Is(err, domain.ErrGameNotFound) || errors.Is(err, domain.ErrTemporarilyUnavailable) {
			return domain.Game{}, err
		}

		err := fmt.Errorf("failed to get game from response: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"data":   string(data),
			"status": strconv.Itoa(statusCode),
		})
		return domain.Game{}, err
	}

	return game, nil
}

func (db *RealtimeDatabase) GetListRow(ctx context.Context, row domain.ListRow, limit int) ([]domain.Game, error) {
	path := fmt.Sprintf("lists/%s", url.PathEscape(string(row.Kind)))
	if row.Kind == domain.ListGenre {
		path = fmt.Sprintf("lists/genres/%s", url.PathEscape(row.Genre))
	}

	data, statusCode, err := db.get(ctx, path)
	if err != nil {
		return nil, err
	}

	games, err := gamesFromListResponse(statusCode, data, limit)
	if err != nil {
		if errors.Is(err, domain.ErrTemporarilyUnavailable) {
			return nil, err
		}

		err := fmt.Errorf("failed to get list row from response: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"row":    row.Key(),
			"data":   string(data),
			"status": strconv.Itoa(statusCode),
		})
		return nil, err
	}

	return games, nil
}

func (db *RealtimeDatabase) get(ctx context.Context, path string) ([]byte, int, error) {
	logger := logging.FromContext(ctx)

	if err := db.limiter.Wait(ctx); err != nil {
		return nil, -1, fmt.Errorf("%w: waiting for outbound rate limit: %w", domain.ErrTemporarilyUnavailable, err)
	}

	query := url.Values{}
	if db.apiKey != "" {
		query.Set("auth", db.apiKey)
	}
	requestURL := fmt.Sprintf("%s/%s.json?%s", db.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		err := fmt.Errorf("failed to create request: %w", err)
		reporting.Report(ctx, err)
		return nil, -1, err
	}

	req.Header.Set("User-Agent", USER_AGENT)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := db.httpClient.Do(req)
	if err != nil {
		err := fmt.Errorf("failed to send request: %w", err)
		reporting.Report(ctx, err)
		return nil, -1, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		err := fmt.Errorf("failed to read response body: %w", err)
		reporting.Report(ctx, err)
		return nil, -1, err
	}

	logger.InfoContext(ctx, "Catalog request completed", "path", path, "status", resp.StatusCode, "duration", time.Since(start).String())

	return data, resp.StatusCode, nil
}

type gameResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Summary       string   `json:"summary"`
	Genres        []string `json:"genres"`
	Platforms     []string `json:"platforms"`
	ReleaseDate   string   `json:"releaseDate"`
	AverageRating float64  `json:"averageRating"`
	RatingCount   int      `json:"ratingCount"`
	CoverURL      string   `json:"coverUrl"`
}

func checkStatus(statusCode int) error {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return fmt.Errorf("%w: catalog returned status code %d", domain.ErrTemporarilyUnavailable, statusCode)
	}
	if statusCode != http.StatusOK {
		return fmt.Errorf("catalog returned status code %d", statusCode)
	}
	return nil
}

func gameFromResponse(statusCode int, data []byte, id string) (domain.Game, error) {
	if statusCode == http.StatusNotFound {
		return domain.Game{}, domain.ErrGameNotFound
	}
	if err := checkStatus(statusCode); err != nil {
		return domain.Game{}, err
	}

	// Missing paths are returned as null
	var response *gameResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return domain.Game{}, fmt.Errorf("failed to parse game: %w", err)
	}
	if response == nil {
		return domain.Game{}, domain.ErrGameNotFound
	}

	if response.ID == "" {
		response.ID = id
	}
	if response.ID != id {
		return domain.Game{}, fmt.Errorf("game id mismatch: requested %s, got %s", id, response.ID)
	}

	return gameFromGameResponse(*response)
}

func gamesFromListResponse(statusCode int, data []byte, limit int) ([]domain.Game, error) {
	if err := checkStatus(statusCode); err != nil {
		return nil, err
	}

	// Arrays may contain nulls for removed entries, and the row itself may be null
	var response []*gameResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse list row: %w", err)
	}

	games := make([]domain.Game, 0, min(len(response), limit))
	for _, item := range response {
		if len(games) >= limit {
			break
		}
		if item == nil {
			continue
		}
		if item.ID == "" {
			return nil, fmt.Errorf("list row contains game without id")
		}
		game, err := gameFromGameResponse(*item)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}

	return games, nil
}

func gameFromGameResponse(response gameResponse) (domain.Game, error) {
	var releaseDate time.Time
	if response.ReleaseDate != "" {
		var err error
		releaseDate, err = time.Parse(releaseDateLayout, response.ReleaseDate)
		if err != nil {
			return domain.Game{}, fmt.Errorf("failed to parse release date for game %s: %w", response.ID, err)
		}
	}

	return domain.Game{
		ID:            response.ID,
		Title:         response.Title,
		Summary:       response.Summary,
		Genres:        response.Genres,
		Platforms:     response.Platforms,
		ReleaseDate:   releaseDate,
		AverageRating: response.AverageRating,
		RatingCount:   response.RatingCount,
		CoverURL:      response.CoverURL,
	}, nil
}
