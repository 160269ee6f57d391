// Package normalize canonicalizes free text so that entity and genre
// matching survives spelling and spacing noise. "마 피아" and "마피아"
// normalize to the same key, as do "Seven Wonders" and "sevenwonders".
package normalize

import (
	"strings"
	"unicode"
)

// Key strips all whitespace and lowercases. It is pure, total, and
// idempotent. Every equality or substring test over names, genres, or
// locations must apply Key to BOTH sides.
func Key(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Contains reports whether the normalized form of s contains the
// normalized form of substr. An empty substr never matches.
func Contains(s, substr string) bool {
	key := Key(substr)
	if len(key) == 0 {
		return false
	}
	return strings.Contains(Key(s), key)
}
