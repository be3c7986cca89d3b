package enrich

import (
	"context"
	"errors"

	"shelfkeeper/backend/internal/model"
)

// ErrDisabled is returned by every call when no API key is configured.
var ErrDisabled = errors.New("AI collaborator is not configured")

// Disabled stands in for the Gemini client when the app runs without an
// API key. Every call fails with ErrDisabled, which the handlers surface
// as an "AI unavailable" notice.
type Disabled struct{}

func (Disabled) Enrich(context.Context, string) (*Suggestion, error) {
	return nil, ErrDisabled
}

func (Disabled) Recommend(context.Context, []model.Book) ([]string, error) {
	return nil, ErrDisabled
}

func (Disabled) ExtractTitles(context.Context, []byte, string) ([]string, error) {
	return nil, ErrDisabled
}
