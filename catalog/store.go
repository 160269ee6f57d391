package catalog

import (
	"strings"

	"github.com/boardbot/boardbot/normalize"
)

// Store is the load-once, read-many view over both tables.
type Store struct {
	games    []Game
	cafes    []Cafe
	byName   map[string]int // normalized game name -> index into games
	genreSet []string
	locSet   []string
}

// NewStore builds a store from already-parsed records and computes the
// normalized keys. Duplicate game names keep the first row; duplicates are
// a data-quality issue, not a runtime fault.
func NewStore(games []Game, cafes []Cafe) *Store {
	s := &Store{
		games:  make([]Game, len(games)),
		cafes:  make([]Cafe, len(cafes)),
		byName: make(map[string]int, len(games)),
	}

	copy(s.games, games)
	copy(s.cafes, cafes)

	seenGenres := map[string]struct{}{}
	for i := range s.games {
		g := &s.games[i]
		g.nameKey = normalize.Key(g.Name)
		g.genreKey = normalize.Key(g.Genre)
		if _, dup := s.byName[g.nameKey]; !dup && len(g.nameKey) > 0 {
			s.byName[g.nameKey] = i
		}
		for _, tag := range splitTags(g.Genre) {
			if _, ok := seenGenres[tag]; !ok {
				seenGenres[tag] = struct{}{}
				s.genreSet = append(s.genreSet, tag)
			}
		}
	}

	seenLocs := map[string]struct{}{}
	for i := range s.cafes {
		c := &s.cafes[i]
		c.locationKey = normalize.Key(c.Location)
		for _, tag := range splitTags(c.Location) {
			if _, ok := seenLocs[tag]; !ok {
				seenLocs[tag] = struct{}{}
				s.locSet = append(s.locSet, tag)
			}
		}
	}

	return s
}

// GameByName looks a game up by normalized-key equality. First match wins.
func (s *Store) GameByName(name string) (Game, bool) {
	i, ok := s.byName[normalize.Key(name)]
	if !ok {
		return Game{}, false
	}
	return s.games[i], true
}

// GamesByGenre returns every game whose genre field contains the term,
// case and space insensitive. An empty result is not an error.
func (s *Store) GamesByGenre(term string) []Game {
	var out []Game
	for _, g := range s.games {
		if g.MatchesGenre(term) {
			out = append(out, g)
		}
	}
	return out
}

// CafesByLocation returns every cafe whose location field contains the
// term, case and space insensitive.
func (s *Store) CafesByLocation(term string) []Cafe {
	var out []Cafe
	for _, c := range s.cafes {
		if c.MatchesLocation(term) {
			out = append(out, c)
		}
	}
	return out
}

// Games returns the full game table.
func (s *Store) Games() []Game {
	out := make([]Game, len(s.games))
	copy(out, s.games)
	return out
}

// Cafes returns the full cafe table.
func (s *Store) Cafes() []Cafe {
	out := make([]Cafe, len(s.cafes))
	copy(out, s.cafes)
	return out
}

// GameNames returns the entity vocabulary for the router.
func (s *Store) GameNames() []string {
	out := make([]string, 0, len(s.games))
	for _, g := range s.games {
		out = append(out, g.Name)
	}
	return out
}

// Genres returns the distinct genre tags seen across the game table, in
// first-seen order.
func (s *Store) Genres() []string {
	out := make([]string, len(s.genreSet))
	copy(out, s.genreSet)
	return out
}

// Locations returns the distinct location tags seen across the cafe table.
func (s *Store) Locations() []string {
	out := make([]string, len(s.locSet))
	copy(out, s.locSet)
	return out
}

// Chunks derives the semantic corpus: one row-level concatenation of all
// non-empty fields per record. Chunks carry no back-reference to their
// source record.
func (s *Store) Chunks() []string {
	var chunks []string
	for _, g := range s.games {
		fields := []struct{ label, value string }{
			{"이름", g.Name},
			{"장르", g.Genre},
			{"설명", g.Description},
			{"인원수", g.Players},
			{"규칙", g.Rules},
		}
		var b strings.Builder
		for _, f := range fields {
			if len(strings.TrimSpace(f.value)) == 0 {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(f.label + ": " + f.value)
		}
		if b.Len() > 0 {
			chunks = append(chunks, b.String())
		}
	}
	for _, c := range s.cafes {
		fields := []struct{ label, value string }{
			{"이름", c.Name},
			{"지역", c.Location},
			{"링크", c.Link},
		}
		var b strings.Builder
		for _, f := range fields {
			if len(strings.TrimSpace(f.value)) == 0 {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(f.label + ": " + f.value)
		}
		if b.Len() > 0 {
			chunks = append(chunks, b.String())
		}
	}
	return chunks
}

// splitTags breaks a free-text category field into its comma-separated
// tags, trimmed but not normalized, so vocabularies keep their display
// form.
func splitTags(field string) []string {
	var tags []string
	for _, part := range strings.Split(field, ",") {
		if trimmed := strings.TrimSpace(part); len(trimmed) > 0 {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
