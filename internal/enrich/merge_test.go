package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shelfkeeper/backend/internal/model"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestMergeOverwritesDescriptiveFields(t *testing.T) {
	current := model.Book{
		Title:    "X",
		Status:   model.StatusReading,
		Owner:    model.OwnerMe,
		Location: "Shelf A",
	}
	suggested := &Suggestion{
		Title:  strPtr("X Revised"),
		Genre:  []string{"Sci-Fi"},
		Status: strPtr("completed"),
	}

	merged := Merge(current, suggested)

	assert.Equal(t, "X Revised", merged.Title)
	assert.Equal(t, []string{"Sci-Fi"}, merged.Genre)
	// User classification survives whatever the model says.
	assert.Equal(t, model.StatusReading, merged.Status)
	assert.Equal(t, model.OwnerMe, merged.Owner)
	assert.Equal(t, "Shelf A", merged.Location)
}

func TestMergeLeavesAbsentFieldsAlone(t *testing.T) {
	current := model.Book{
		Title:       "Dune",
		Author:      "Frank Herbert",
		Description: "Desert planet",
		Tags:        []string{"classic"},
		TotalPages:  412,
	}

	merged := Merge(current, &Suggestion{Author: strPtr("F. Herbert")})

	assert.Equal(t, "F. Herbert", merged.Author)
	assert.Equal(t, "Dune", merged.Title)
	assert.Equal(t, "Desert planet", merged.Description)
	assert.Equal(t, []string{"classic"}, merged.Tags)
	assert.Equal(t, 412, merged.TotalPages)
}

func TestMergeReplacesSequencesWholesale(t *testing.T) {
	current := model.Book{Title: "X", Genre: []string{"Old", "Older"}, Tags: []string{"a"}}

	merged := Merge(current, &Suggestion{
		Genre: []string{"Fantasy"},
		Tags:  []string{"b", "c"},
	})

	assert.Equal(t, []string{"Fantasy"}, merged.Genre)
	assert.Equal(t, []string{"b", "c"}, merged.Tags)
}

func TestMergeNilSuggestionIsIdentity(t *testing.T) {
	current := model.Book{Title: "X", TotalPages: 100, CurrentPage: 50}
	assert.Equal(t, current, Merge(current, nil))
}

func TestMergeCoercesNegativePages(t *testing.T) {
	current := model.Book{Title: "X", CurrentPage: -3}

	merged := Merge(current, &Suggestion{TotalPages: intPtr(-10)})

	assert.Equal(t, 0, merged.TotalPages)
	assert.Equal(t, 0, merged.CurrentPage)
}
