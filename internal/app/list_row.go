package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Amund211/gameshelf/internal/adapters/cache"
	"github.com/Amund211/gameshelf/internal/domain"
	"github.com/Amund211/gameshelf/internal/logging"
)

type GetListRow func(ctx context.Context, row domain.ListRow) ([]domain.Game, error)

type listRowProvider interface {
	GetGame(ctx context.Context, id string) (domain.Game, error)
	GetListRow(ctx context.Context, row domain.ListRow, limit int) ([]domain.Game, error)
}

// BuildGetListRow serves the browse rows.
//
// Which games are in a row is cached in rowCache. The games themselves go through the session cache:
// on a miss the game is tagged with the row and stored as list-sourced.
func BuildGetListRow(
	session *cache.Session[domain.Game],
	rowCache cache.Cache[[]string],
	provider listRowProvider,
	limit int,
) GetListRow {
	return func(ctx context.Context, row domain.ListRow) ([]domain.Game, error) {
		ctx = logging.AddListRowToContext(ctx, row)
		logger := logging.FromContext(ctx)

		// Games returned with the row listing, so they don't have to be fetched again below
		fresh := make(map[string]domain.Game)

		ids, _, err := cache.GetOrCreate(ctx, rowCache, row.Key(), func() ([]string, error) {
			getCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			games, err := provider.GetListRow(getCtx, row, limit)
			if err != nil {
				// NOTE: GameProvider implementations handle their own error reporting
				return nil, fmt.Errorf("could not get list row: %w", err)
			}

			ids := make([]string, 0, len(games))
			for _, game := range games {
				fresh[game.ID] = game
				ids = append(ids, game.ID)
			}
			return ids, nil
		})
		if err != nil {
			// NOTE: GetOrCreate only returns an error if create() fails or ctx is done
			return nil, fmt.Errorf("failed to cache.GetOrCreate list row: %w", err)
		}

		games := make([]domain.Game, 0, len(ids))
		for _, id := range ids {
			if game, ok := session.Lookup(id); ok {
				games = append(games, game)
				continue
			}

			game, ok := fresh[id]
			if !ok {
				// The row listing was cached, but the game itself has been evicted since
				getCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
				game, err = provider.GetGame(getCtx, id)
				cancel()
				if errors.Is(err, domain.ErrGameNotFound) {
					logger.WarnContext(ctx, "Game in list row no longer exists", "gameId", id)
					continue
				} else if err != nil {
					return nil, fmt.Errorf("could not get game in list row: %w", err)
				}
			}

			tagged := game.WithSource(row.Tag())
			if evicted, ok := session.StoreListed(id, tagged); ok {
				logger.InfoContext(ctx, "Evicted list-sourced game", "evictedGameId", evicted)
			}
			games = append(games, tagged)
		}

		return games, nil
	}
}
