package handler

import (
	"context"

	"shelfkeeper/backend/internal/enrich"
	"shelfkeeper/backend/internal/model"
)

// The AI collaborators are passed into handlers as narrow interfaces so the
// handlers stay testable without a live model behind them.

// Enricher suggests partial metadata for a free-text query.
type Enricher interface {
	Enrich(ctx context.Context, query string) (*enrich.Suggestion, error)
}

// Recommender proposes "Title by Author" strings from the collection.
type Recommender interface {
	Recommend(ctx context.Context, books []model.Book) ([]string, error)
}

// TitleExtractor reads book titles out of a shelf photo.
type TitleExtractor interface {
	ExtractTitles(ctx context.Context, data []byte, mimeType string) ([]string, error)
}
