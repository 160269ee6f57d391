// Package router classifies a raw chat query into one of five intents.
// Classification is pure: one query string against static vocabularies,
// no state carried between calls.
package router

import (
	"strings"

	"github.com/boardbot/boardbot/catalog"
	"github.com/boardbot/boardbot/normalize"
)

// Intent is the classified purpose of a query.
type Intent string

const (
	IntentEntityLookup           Intent = "entity_lookup"
	IntentGenreRecommendation    Intent = "genre_recommendation"
	IntentGeneralRecommendation  Intent = "general_recommendation"
	IntentLocationRecommendation Intent = "location_recommendation"
	IntentOpenQA                 Intent = "open_qa"
)

// Result carries the intent plus whichever vocabulary token fired.
type Result struct {
	Intent   Intent
	Entity   string // matched game name, display form
	Genre    string // matched genre tag, display form
	Location string // matched location tag, display form
}

// Trigger terms. The corpus is Korean-first; English forms are accepted
// alongside.
var (
	recommendTerms = []string{"추천", "뭐가좋", "뭐할", "recommend", "suggest"}
	gameTerms      = []string{"게임", "보드게임", "game"}
	cafeTerms      = []string{"카페", "cafe"}
)

type vocabEntry struct {
	display string
	key     string
}

// Router holds the static entity/genre/location vocabularies.
type Router struct {
	entities  []vocabEntry
	genres    []vocabEntry
	locations []vocabEntry
}

// New derives the vocabularies from the loaded catalog. Extra genre or
// location tokens (for tags the catalog does not currently carry) come in
// through options.
func New(store *catalog.Store, opts ...Option) *Router {
	options := NewOptions(opts...)

	r := &Router{}
	for _, name := range store.GameNames() {
		r.entities = appendVocab(r.entities, name)
	}
	for _, genre := range store.Genres() {
		r.genres = appendVocab(r.genres, genre)
	}
	for _, genre := range options.ExtraGenres {
		r.genres = appendVocab(r.genres, genre)
	}
	for _, loc := range store.Locations() {
		r.locations = appendVocab(r.locations, loc)
	}
	for _, loc := range options.ExtraLocations {
		r.locations = appendVocab(r.locations, loc)
	}

	return r
}

// Classify evaluates the precedence rules top to bottom; the first rule
// that matches wins, so an exact entity name is never shadowed by a
// recommendation trigger appearing in the same query. Intent is decided by
// vocabulary alone: a genre with zero catalog rows still classifies as a
// genre recommendation, and the empty result is the composer's concern.
func (r *Router) Classify(query string) Result {
	key := normalize.Key(query)

	// 1. Named entity beats everything.
	if entity, ok := matchLongest(key, r.entities); ok {
		return Result{Intent: IntentEntityLookup, Entity: entity}
	}

	if containsAny(key, recommendTerms) {
		// 2. Known genre tag.
		if genre, ok := matchLongest(key, r.genres); ok {
			return Result{Intent: IntentGenreRecommendation, Genre: genre}
		}
		// 3. Game domain word without a genre: sample the whole table.
		// The cafe word flips the query out of the game domain.
		if containsAny(key, gameTerms) && !containsAny(key, cafeTerms) {
			return Result{Intent: IntentGeneralRecommendation}
		}
		// 4. Known location tag.
		if loc, ok := matchLongest(key, r.locations); ok {
			return Result{Intent: IntentLocationRecommendation, Location: loc}
		}
	}

	// 5. Everything else is open-domain QA; no query is unclassifiable.
	return Result{Intent: IntentOpenQA}
}

func appendVocab(entries []vocabEntry, display string) []vocabEntry {
	key := normalize.Key(display)
	if len(key) == 0 {
		return entries
	}
	for _, e := range entries {
		if e.key == key {
			return entries
		}
	}
	return append(entries, vocabEntry{display: display, key: key})
}

// matchLongest returns the display form of the longest vocabulary key
// contained in the normalized query. Longest wins so that the entity
// "펭귄파티" is preferred over the bare genre "파티".
func matchLongest(queryKey string, entries []vocabEntry) (string, bool) {
	best := ""
	bestLen := 0
	for _, e := range entries {
		if len(e.key) > bestLen && strings.Contains(queryKey, e.key) {
			best = e.display
			bestLen = len(e.key)
		}
	}
	return best, bestLen > 0
}

func containsAny(queryKey string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(queryKey, normalize.Key(t)) {
			return true
		}
	}
	return false
}
