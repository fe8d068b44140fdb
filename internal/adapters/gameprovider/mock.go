package gameprovider

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Amund211/gameshelf/internal/config"
	"github.com/Amund211/gameshelf/internal/domain"
	"golang.org/x/time/rate"
)

// mockedGameProvider serves a small fixed catalogue for local development
type mockedGameProvider struct {
	games []domain.Game
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func newMockedGameProvider() *mockedGameProvider {
	return &mockedGameProvider{
		games: []domain.Game{
			{ID: "outer-wilds", Title: "Outer Wilds", Genres: []string{"adventure", "puzzle"}, Platforms: []string{"pc", "ps4"}, ReleaseDate: date(2019, time.May, 28), AverageRating: 4.8, RatingCount: 5120},
			{ID: "hades", Title: "Hades", Genres: []string{"action", "roguelike"}, Platforms: []string{"pc", "switch"}, ReleaseDate: date(2020, time.September, 17), AverageRating: 4.7, RatingCount: 8311},
			{ID: "celeste", Title: "Celeste", Genres: []string{"platformer"}, Platforms: []string{"pc", "switch"}, ReleaseDate: date(2018, time.January, 25), AverageRating: 4.6, RatingCount: 6402},
			{ID: "disco-elysium", Title: "Disco Elysium", Genres: []string{"rpg"}, Platforms: []string{"pc"}, ReleaseDate: date(2019, time.October, 15), AverageRating: 4.7, RatingCount: 4977},
			{ID: "hollow-knight", Title: "Hollow Knight", Genres: []string{"action", "platformer"}, Platforms: []string{"pc", "switch"}, ReleaseDate: date(2017, time.February, 24), AverageRating: 4.6, RatingCount: 9120},
			{ID: "tunic", Title: "Tunic", Genres: []string{"adventure", "action"}, Platforms: []string{"pc", "xbox"}, ReleaseDate: date(2022, time.March, 16), AverageRating: 4.3, RatingCount: 1500},
			{ID: "untitled-sequel", Title: "Untitled Sequel", Genres: []string{"action"}, Platforms: []string{"pc"}, ReleaseDate: date(2099, time.January, 1)},
		},
	}
}

func (p *mockedGameProvider) GetGame(ctx context.Context, id string) (domain.Game, error) {
	for _, game := range p.games {
		if game.ID == id {
			return game, nil
		}
	}
	return domain.Game{}, domain.ErrGameNotFound
}

func (p *mockedGameProvider) GetListRow(ctx context.Context, row domain.ListRow, limit int) ([]domain.Game, error) {
	now := time.Now()
	var games []domain.Game
	for _, game := range p.games {
		released := game.ReleaseDate.Before(now)
		switch row.Kind {
		case domain.ListUpcoming:
			if released {
				continue
			}
		case domain.ListGenre:
			if !released || !slices.Contains(game.Genres, row.Genre) {
				continue
			}
		default:
			if !released {
				continue
			}
		}
		games = append(games, game)
	}

	switch row.Kind {
	case domain.ListPopular:
		slices.SortStableFunc(games, func(a, b domain.Game) int { return b.RatingCount - a.RatingCount })
	case domain.ListTrending:
		slices.SortStableFunc(games, func(a, b domain.Game) int { return b.ReleaseDate.Compare(a.ReleaseDate) })
	}

	if len(games) > limit {
		games = games[:limit]
	}
	return games, nil
}

func NewGameProviderOrMock(config config.Config, httpClient HttpClient) (GameProvider, error) {
	if config.CatalogURL() != "" {
		// Stay well below the backing store's per client limits
		limiter := rate.NewLimiter(rate.Limit(20), 40)
		return NewRealtimeDatabase(httpClient, config.CatalogURL(), config.CatalogAPIKey(), limiter), nil
	}
	if config.IsDevelopment() {
		return newMockedGameProvider(), nil
	}
	return nil, fmt.Errorf("Missing catalog URL in non-development environment")
}
