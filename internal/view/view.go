// Package view derives read-only display sets from a collection snapshot.
// Nothing here mutates; every function is a pure reduction recomputed on
// each read.
package view

import (
	"sort"
	"strings"

	"shelfkeeper/backend/internal/model"
)

// RecentReadsLimit is the size of the dashboard "recent reads" strip.
const RecentReadsLimit = 4

// TopGenresLimit is how many genres the stats summary reports.
const TopGenresLimit = 5

// Library returns the owned/tracked partition of the snapshot.
func Library(books []model.Book) []model.Book {
	var out []model.Book
	for _, b := range books {
		if !b.IsWishlist {
			out = append(out, b)
		}
	}
	return out
}

// Wishlist returns the desired-but-not-owned partition of the snapshot.
func Wishlist(books []model.Book) []model.Book {
	var out []model.Book
	for _, b := range books {
		if b.IsWishlist {
			out = append(out, b)
		}
	}
	return out
}

// Search filters by case-insensitive substring match against title, author,
// or any genre label. Applied after the library/wishlist split.
func Search(books []model.Book, query string) []model.Book {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return books
	}

	var out []model.Book
	for _, b := range books {
		if matches(b, query) {
			out = append(out, b)
		}
	}
	return out
}

func matches(b model.Book, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(b.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(b.Author), lowerQuery) {
		return true
	}
	for _, g := range b.Genre {
		if strings.Contains(strings.ToLower(g), lowerQuery) {
			return true
		}
	}
	return false
}

// RecentReads returns the books currently being read or already completed,
// newest first, truncated for the dashboard strip.
func RecentReads(books []model.Book) []model.Book {
	var out []model.Book
	for _, b := range books {
		if b.Status == model.StatusReading || b.Status == model.StatusCompleted {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AddedAt > out[j].AddedAt
	})
	if len(out) > RecentReadsLimit {
		out = out[:RecentReadsLimit]
	}
	return out
}

// GenreCount is one entry of the top-genre ranking.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// Stats is the dashboard summary over one snapshot.
type Stats struct {
	ByStatus   map[model.Status]int `json:"by_status"`
	ByOwner    map[model.Owner]int  `json:"by_owner"`
	TopGenres  []GenreCount         `json:"top_genres"`
	PagesRead  int                  `json:"pages_read"`
	TotalPages int                  `json:"total_pages"`
}

// Summarize reduces a snapshot into dashboard statistics. PagesRead counts
// only library records: a completed book contributes its total page count,
// anything else its current page. Genre ties keep first-encountered order,
// which a stable sort on count preserves.
func Summarize(books []model.Book) Stats {
	stats := Stats{
		ByStatus: make(map[model.Status]int),
		ByOwner:  make(map[model.Owner]int),
	}

	counts := make(map[string]int)
	var genreOrder []string

	for _, b := range books {
		stats.ByStatus[b.Status]++
		stats.ByOwner[b.Owner]++
		stats.TotalPages += b.TotalPages

		if !b.IsWishlist {
			if b.Status == model.StatusCompleted {
				stats.PagesRead += b.TotalPages
			} else {
				stats.PagesRead += b.CurrentPage
			}
		}

		for _, g := range b.Genre {
			if counts[g] == 0 {
				genreOrder = append(genreOrder, g)
			}
			counts[g]++
		}
	}

	ranked := make([]GenreCount, 0, len(genreOrder))
	for _, g := range genreOrder {
		ranked = append(ranked, GenreCount{Genre: g, Count: counts[g]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > TopGenresLimit {
		ranked = ranked[:TopGenresLimit]
	}
	stats.TopGenres = ranked

	return stats
}
