package gameprovider

import (
	"context"
	"net/http"

	"github.com/Amund211/gameshelf/internal/domain"
)

const USER_AGENT = "gameshelf/1.0"

type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type GameProvider interface {
	GetGame(ctx context.Context, id string) (domain.Game, error)
	// GetListRow returns at most limit games in the order the backing store ranks them
	GetListRow(ctx context.Context, row domain.ListRow, limit int) ([]domain.Game, error)
}
