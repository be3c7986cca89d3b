// Package enrich reconciles AI-suggested metadata with user-entered records
// and hosts the Gemini collaborator client that produces the suggestions.
package enrich

import (
	"shelfkeeper/backend/internal/model"
)

// Suggestion is a partial record proposed by the enrichment collaborator.
// Pointer fields and nil slices mean "not suggested". Status, Owner and
// Location may arrive in model output but are never applied; see Merge.
type Suggestion struct {
	Title       *string  `json:"title,omitempty"`
	Author      *string  `json:"author,omitempty"`
	Genre       []string `json:"genre,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Description *string  `json:"description,omitempty"`
	TotalPages  *int     `json:"total_pages,omitempty"`

	// Accepted from the wire but deliberately ignored by the merge.
	Status   *string `json:"status,omitempty"`
	Owner    *string `json:"owner,omitempty"`
	Location *string `json:"location,omitempty"`
}

// Merge combines a record with a suggestion, field by field:
//
//	title, author, description, total_pages: overwritten when suggested
//	genre, tags:                             replaced wholesale when suggested
//	status, owner, location:                 always kept from current
//
// The pinned fields carry the user's own classification decisions, which
// generic model output must never clobber. Merge is pure and total: a nil
// suggestion returns current unchanged, and the page counters come out
// non-negative either way.
func Merge(current model.Book, s *Suggestion) model.Book {
	merged := current
	if s == nil {
		merged.CoercePages()
		return merged
	}

	if s.Title != nil {
		merged.Title = *s.Title
	}
	if s.Author != nil {
		merged.Author = *s.Author
	}
	if s.Genre != nil {
		merged.Genre = append([]string(nil), s.Genre...)
	}
	if s.Tags != nil {
		merged.Tags = append([]string(nil), s.Tags...)
	}
	if s.Description != nil {
		merged.Description = *s.Description
	}
	if s.TotalPages != nil {
		merged.TotalPages = *s.TotalPages
	}

	merged.CoercePages()
	return merged
}
