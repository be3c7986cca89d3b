// Package dedup decides which candidate records from an import batch are
// genuinely new. The duplicate key is a case-insensitive exact match on
// title; fuzzier matching is a deliberate non-feature for a single-user,
// low-volume catalog.
package dedup

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"shelfkeeper/backend/internal/model"
)

// NormalizeTitle maps a title to its duplicate key: NFC form, lowercased,
// surrounding whitespace trimmed. NFC first, so composed and decomposed
// spellings of the same title collide.
func NormalizeTitle(title string) string {
	return strings.TrimSpace(strings.ToLower(norm.NFC.String(title)))
}

// FilterNewCandidates returns the candidates whose normalized title is not
// already present in existing, preserving candidate order. Candidates are
// only checked against the existing collection, not against each other:
// a batch carrying the same title twice passes through intact.
func FilterNewCandidates(existing, candidates []model.Book) []model.Book {
	known := make(map[string]bool, len(existing))
	for _, b := range existing {
		known[NormalizeTitle(b.Title)] = true
	}

	var fresh []model.Book
	for _, c := range candidates {
		if !known[NormalizeTitle(c.Title)] {
			fresh = append(fresh, c)
		}
	}
	return fresh
}
