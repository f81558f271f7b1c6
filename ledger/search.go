package ledger

import (
	"strings"
	"unicode"

	"github.com/ngtkana/senseki-db/models"

	"golang.org/x/text/width"
)

// NormalizeForSearch lowers the string, strips whitespace and folds
// full-width/half-width variants so "ＰＡＣＭＡＮ" and "pacman" compare equal.
func NormalizeForSearch(s string) string {
	folded := width.Fold.String(s)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MatchesSearch reports whether a character matches the picker query, against
// the Japanese name, the English name and the internal fighter key. An empty
// query matches everything.
func MatchesSearch(c models.CharacterResponse, query string) bool {
	if query == "" {
		return true
	}
	normalized := NormalizeForSearch(query)
	return strings.Contains(NormalizeForSearch(c.Name), normalized) ||
		strings.Contains(NormalizeForSearch(c.NameEn), normalized) ||
		strings.Contains(NormalizeForSearch(c.FighterKey), normalized)
}

// FilterCharacters returns the characters matching query, preserving roster
// order. The result's length is what picker grids feed into Navigate.
func FilterCharacters(characters []models.CharacterResponse, query string) []models.CharacterResponse {
	filtered := make([]models.CharacterResponse, 0, len(characters))
	for _, c := range characters {
		if MatchesSearch(c, query) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
