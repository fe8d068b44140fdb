package domain_test

import (
	"testing"

	"github.com/Amund211/gameshelf/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestParseListRow(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind  string
		genre string
		row   domain.ListRow
		key   string
		tag   string
		err   bool
	}{
		{kind: "popular", row: domain.ListRow{Kind: domain.ListPopular}, key: "popular", tag: "list:popular"},
		{kind: "trending", row: domain.ListRow{Kind: domain.ListTrending}, key: "trending", tag: "list:trending"},
		{kind: "upcoming", row: domain.ListRow{Kind: domain.ListUpcoming}, key: "upcoming", tag: "list:upcoming"},
		{kind: "genre", genre: "RPG", row: domain.ListRow{Kind: domain.ListGenre, Genre: "rpg"}, key: "genre:rpg", tag: "list:genre:rpg"},
		{kind: "genre", err: true},
		{kind: "popular", genre: "rpg", err: true},
		{kind: "newest", err: true},
		{kind: "", err: true},
	}

	for _, c := range cases {
		t.Run(c.kind+"/"+c.genre, func(t *testing.T) {
			t.Parallel()

			row, err := domain.ParseListRow(c.kind, c.genre)
			if c.err {
				require.ErrorIs(t, err, domain.ErrUnknownListRow)
				return
			}
			require.NoError(t, err)
			require.Equal(t, c.row, row)
			require.Equal(t, c.key, row.Key())
			require.Equal(t, c.tag, row.Tag())
		})
	}
}

func TestGameWithSource(t *testing.T) {
	t.Parallel()

	game := domain.Game{ID: "game-1", Title: "Outer Wilds"}
	tagged := game.WithSource(domain.SourceDetail)

	require.Equal(t, domain.SourceDetail, tagged.Source)
	require.Equal(t, "", game.Source, "receiver is not modified")
}
