package gameprovider_test

import (
	"net/http"
	"testing"

	"github.com/Amund211/gameshelf/internal/adapters/gameprovider"
	"github.com/Amund211/gameshelf/internal/config"
	"github.com/Amund211/gameshelf/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestNewGameProviderOrMock(t *testing.T) {
	t.Run("mock in development", func(t *testing.T) {
		t.Setenv("GAMESHELF_ENVIRONMENT", "development")
		conf, err := config.ConfigFromEnv()
		require.NoError(t, err)

		provider, err := gameprovider.NewGameProviderOrMock(conf, http.DefaultClient)
		require.NoError(t, err)

		game, err := provider.GetGame(t.Context(), "outer-wilds")
		require.NoError(t, err)
		require.Equal(t, "Outer Wilds", game.Title)

		_, err = provider.GetGame(t.Context(), "missing")
		require.ErrorIs(t, err, domain.ErrGameNotFound)

		popular, err := provider.GetListRow(t.Context(), domain.ListRow{Kind: domain.ListPopular}, 2)
		require.NoError(t, err)
		require.Len(t, popular, 2)
		require.Equal(t, "hollow-knight", popular[0].ID)

		rpg, err := provider.GetListRow(t.Context(), domain.ListRow{Kind: domain.ListGenre, Genre: "rpg"}, 10)
		require.NoError(t, err)
		require.Len(t, rpg, 1)
		require.Equal(t, "disco-elysium", rpg[0].ID)
	})

	t.Run("realtime database when configured", func(t *testing.T) {
		t.Setenv("GAMESHELF_ENVIRONMENT", "development")
		t.Setenv("CATALOG_URL", "https://catalog.example.com")
		conf, err := config.ConfigFromEnv()
		require.NoError(t, err)

		provider, err := gameprovider.NewGameProviderOrMock(conf, http.DefaultClient)
		require.NoError(t, err)
		require.IsType(t, &gameprovider.RealtimeDatabase{}, provider)
	})
}
