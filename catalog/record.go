// Package catalog holds the board game and cafe tables. Records are loaded
// once per process, validated at load time, and read-only afterwards, so
// they are safe to share across sessions without locking.
package catalog

import (
	"strings"

	"github.com/boardbot/boardbot/normalize"
)

// Game is a detail record: one board game row with its genre tags,
// description, player capacity, and the long-form rule text.
type Game struct {
	Name        string
	Genre       string
	Description string
	Players     string
	Rules       string
	Popularity  int
	Link        string

	// nameKey and genreKey are computed once at load time, before any
	// query is served.
	nameKey  string
	genreKey string
}

// Cafe is a recommendable record: a board game cafe with its location
// tags, popularity count, and reference link.
type Cafe struct {
	Name       string
	Location   string
	Popularity int
	Link       string

	locationKey string
}

// NameKey returns the normalized form of the game name.
func (g Game) NameKey() string { return g.nameKey }

// MatchesGenre reports whether term matches the genre field, comparing
// normalized forms on both sides.
func (g Game) MatchesGenre(term string) bool {
	key := normalize.Key(term)
	if len(key) == 0 {
		return false
	}
	return strings.Contains(g.genreKey, key)
}

// MatchesLocation reports whether term matches the location field,
// comparing normalized forms on both sides.
func (c Cafe) MatchesLocation(term string) bool {
	key := normalize.Key(term)
	if len(key) == 0 {
		return false
	}
	return strings.Contains(c.locationKey, key)
}
