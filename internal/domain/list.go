package domain

import (
	"fmt"
	"strings"
)

type ListKind string

const (
	ListPopular  ListKind = "popular"
	ListTrending ListKind = "trending"
	ListUpcoming ListKind = "upcoming"
	ListGenre    ListKind = "genre"
)

// ListRow identifies one of the browse rows on the home screen
type ListRow struct {
	Kind ListKind
	// Only set for ListGenre
	Genre string
}

func ParseListRow(kind string, genre string) (ListRow, error) {
	switch ListKind(kind) {
	case ListPopular, ListTrending, ListUpcoming:
		if genre != "" {
			return ListRow{}, fmt.Errorf("%w: %s row does not take a genre", ErrUnknownListRow, kind)
		}
		return ListRow{Kind: ListKind(kind)}, nil
	case ListGenre:
		if genre == "" {
			return ListRow{}, fmt.Errorf("%w: genre row without genre", ErrUnknownListRow)
		}
		return ListRow{Kind: ListGenre, Genre: strings.ToLower(genre)}, nil
	}
	return ListRow{}, fmt.Errorf("%w: %s", ErrUnknownListRow, kind)
}

// Key uniquely identifies the row, e.g. "popular" or "genre:rpg"
func (r ListRow) Key() string {
	if r.Kind == ListGenre {
		return fmt.Sprintf("%s:%s", r.Kind, r.Genre)
	}
	return string(r.Kind)
}

// Tag is the provenance tag for games populated by this row
func (r ListRow) Tag() string {
	return fmt.Sprintf("list:%s", r.Key())
}
