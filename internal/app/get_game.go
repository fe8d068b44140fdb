package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Amund211/gameshelf/internal/adapters/cache"
	"github.com/Amund211/gameshelf/internal/domain"
	"github.com/Amund211/gameshelf/internal/logging"
	"github.com/Amund211/gameshelf/internal/reporting"
	"github.com/Amund211/gameshelf/internal/strutils"
)

type GetGame func(ctx context.Context, id string) (domain.Game, error)

type gameProvider interface {
	GetGame(ctx context.Context, id string) (domain.Game, error)
}

// BuildGetGame serves the game detail view.
// Games are looked up in the session cache first and only fetched on a miss.
// Detail fetches are not tracked as list-sourced.
func BuildGetGame(session *cache.Session[domain.Game], provider gameProvider) GetGame {
	return func(ctx context.Context, id string) (domain.Game, error) {
		logger := logging.FromContext(ctx)

		if err := strutils.ValidateKey(id); err != nil {
			err := fmt.Errorf("invalid game id: %w", err)
			reporting.Report(ctx, err)
			return domain.Game{}, err
		}

		if game, ok := session.Lookup(id); ok {
			logger.InfoContext(ctx, "Getting game", "cache", "hit", "source", game.Source)
			return game, nil
		}
		logger.InfoContext(ctx, "Getting game", "cache", "miss")

		getCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		game, err := provider.GetGame(getCtx, id)
		if errors.Is(err, domain.ErrGameNotFound) {
			return domain.Game{}, err
		} else if err != nil {
			// NOTE: GameProvider implementations handle their own error reporting
			return domain.Game{}, fmt.Errorf("could not get game: %w", err)
		}

		tagged := game.WithSource(domain.SourceDetail)
		session.StoreDetail(id, tagged)

		return tagged, nil
	}
}
