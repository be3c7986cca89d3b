package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfkeeper/backend/internal/model"
)

func TestLibraryWishlistSplit(t *testing.T) {
	books := []model.Book{
		{ID: "book-1", Title: "Dune"},
		{ID: "book-2", Title: "Hyperion", IsWishlist: true},
		{ID: "book-3", Title: "1984"},
	}

	library := Library(books)
	require.Len(t, library, 2)
	assert.Equal(t, "Dune", library[0].Title)

	wishlist := Wishlist(books)
	require.Len(t, wishlist, 1)
	assert.Equal(t, "Hyperion", wishlist[0].Title)
}

func TestSearchMatchesTitleAuthorGenre(t *testing.T) {
	books := []model.Book{
		{Title: "Dune", Author: "Frank Herbert", Genre: []string{"Science Fiction"}},
		{Title: "Emma", Author: "Jane Austen", Genre: []string{"Romance"}},
		{Title: "Neuromancer", Author: "William Gibson", Genre: []string{"Cyberpunk"}},
	}

	assert.Len(t, Search(books, "dune"), 1)
	assert.Len(t, Search(books, "AUSTEN"), 1)
	assert.Len(t, Search(books, "science"), 1)
	assert.Len(t, Search(books, "xyzzy"), 0)
	// Blank query is a no-op filter.
	assert.Len(t, Search(books, "  "), 3)
}

func TestRecentReadsSortedAndTruncated(t *testing.T) {
	books := []model.Book{
		{ID: "a", Status: model.StatusReading, AddedAt: 10},
		{ID: "b", Status: model.StatusUnread, AddedAt: 99},
		{ID: "c", Status: model.StatusCompleted, AddedAt: 30},
		{ID: "d", Status: model.StatusCompleted, AddedAt: 20},
		{ID: "e", Status: model.StatusReading, AddedAt: 50},
		{ID: "f", Status: model.StatusCompleted, AddedAt: 40},
		{ID: "g", Status: model.StatusAbandoned, AddedAt: 70},
	}

	recent := RecentReads(books)
	require.Len(t, recent, RecentReadsLimit)
	assert.Equal(t, []string{"e", "f", "c", "d"}, []string{
		recent[0].ID, recent[1].ID, recent[2].ID, recent[3].ID,
	})
}

func TestSummarizePageTotals(t *testing.T) {
	books := []model.Book{
		{Title: "A", Status: model.StatusCompleted, TotalPages: 100},
		{Title: "B", Status: model.StatusReading, TotalPages: 200, CurrentPage: 50},
		{Title: "C", Status: model.StatusUnread, TotalPages: 0},
	}

	stats := Summarize(books)
	assert.Equal(t, 150, stats.PagesRead)
	assert.Equal(t, 300, stats.TotalPages)
}

func TestSummarizeSkipsWishlistProgress(t *testing.T) {
	books := []model.Book{
		{Title: "A", Status: model.StatusCompleted, TotalPages: 100},
		{Title: "W", Status: model.StatusCompleted, TotalPages: 500, IsWishlist: true},
	}

	stats := Summarize(books)
	assert.Equal(t, 100, stats.PagesRead)
	assert.Equal(t, 600, stats.TotalPages)
}

func TestSummarizeCounts(t *testing.T) {
	books := []model.Book{
		{Status: model.StatusReading, Owner: model.OwnerMe},
		{Status: model.StatusReading, Owner: model.OwnerSpouse},
		{Status: model.StatusCompleted, Owner: model.OwnerMe},
	}

	stats := Summarize(books)
	assert.Equal(t, 2, stats.ByStatus[model.StatusReading])
	assert.Equal(t, 1, stats.ByStatus[model.StatusCompleted])
	assert.Equal(t, 2, stats.ByOwner[model.OwnerMe])
	assert.Equal(t, 1, stats.ByOwner[model.OwnerSpouse])
}

func TestTopGenresRankingAndTies(t *testing.T) {
	books := []model.Book{
		{Genre: []string{"Fantasy", "Romance"}},
		{Genre: []string{"Fantasy", "Horror"}},
		{Genre: []string{"Fantasy", "Romance"}},
		{Genre: []string{"Mystery"}},
		{Genre: []string{"Thriller"}},
		{Genre: []string{"Western"}},
	}

	stats := Summarize(books)
	require.Len(t, stats.TopGenres, TopGenresLimit)
	assert.Equal(t, GenreCount{Genre: "Fantasy", Count: 3}, stats.TopGenres[0])
	assert.Equal(t, GenreCount{Genre: "Romance", Count: 2}, stats.TopGenres[1])
	// Singles keep first-encountered order.
	assert.Equal(t, "Horror", stats.TopGenres[2].Genre)
	assert.Equal(t, "Mystery", stats.TopGenres[3].Genre)
	assert.Equal(t, "Thriller", stats.TopGenres[4].Genre)
}
