package domain

import "time"

// Provenance tag for games fetched for a single-item view
const SourceDetail = "detail"

type Game struct {
	ID            string
	Title         string
	Summary       string
	Genres        []string
	Platforms     []string
	ReleaseDate   time.Time
	AverageRating float64
	RatingCount   int
	CoverURL      string

	// Which view populated the cached copy of this game
	Source string
}

// WithSource returns a copy of the game tagged with the given provenance
func (g Game) WithSource(source string) Game {
	g.Source = source
	return g
}
