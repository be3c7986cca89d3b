package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"shelfkeeper/backend/internal/model"
)

const (
	// DefaultModel is the Gemini model used for all collaborator calls
	DefaultModel = "gemini-2.5-flash"
	// maxRecommendationInput caps how many records are described to the model
	maxRecommendationInput = 20
)

// Gemini wraps the genai client behind the three collaborator operations:
// metadata enrichment, recommendations, and title extraction from shelf
// photos. Every call constrains the model to a JSON response schema so the
// output parses or fails cleanly.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini collaborator client.
func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Gemini{client: client, model: modelName}, nil
}

// suggestionSchema constrains enrichment output to the fields the merge
// policy understands.
var suggestionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":       {Type: genai.TypeString},
		"author":      {Type: genai.TypeString},
		"genre":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"tags":        {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"description": {Type: genai.TypeString},
		"total_pages": {Type: genai.TypeInteger},
	},
}

// Enrich asks the model for metadata matching a free-text query. Returns
// (nil, nil) when the model cannot identify a book.
func (g *Gemini) Enrich(ctx context.Context, query string) (*Suggestion, error) {
	log.Printf("[AI] Enrichment requested query=%q", query)

	prompt := "You are a book metadata assistant. Identify the single book that best matches " +
		"the query below and return its metadata. Use the original published title, the primary " +
		"author, 1-3 genres, 2-5 short descriptive tags, a 2-3 sentence description, and the " +
		"page count of a common edition. If you cannot identify a real book, return an empty " +
		"JSON object.\n\nQuery: " + query

	raw, err := g.generateJSON(ctx, []*genai.Part{{Text: prompt}}, suggestionSchema)
	if err != nil {
		return nil, err
	}

	var s Suggestion
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("unparsable enrichment response: %w", err)
	}
	if s.empty() {
		log.Printf("[AI] No enrichment found for query=%q", query)
		return nil, nil
	}
	return &s, nil
}

// Recommend returns "Title by Author" strings based on the first 20 records
// of the collection. An empty slice means the model had nothing to offer.
func (g *Gemini) Recommend(ctx context.Context, books []model.Book) ([]string, error) {
	if len(books) > maxRecommendationInput {
		books = books[:maxRecommendationInput]
	}

	var sb strings.Builder
	sb.WriteString("Here is a personal book collection:\n")
	for _, b := range books {
		fmt.Fprintf(&sb, "- %s by %s\n", b.Title, b.Author)
	}
	sb.WriteString("\nRecommend 5 books the owner does not have yet and would likely enjoy. " +
		"Return each as a single string formatted exactly \"Title by Author\".")

	schema := &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}

	raw, err := g.generateJSON(ctx, []*genai.Part{{Text: sb.String()}}, schema)
	if err != nil {
		return nil, err
	}

	var recs []string
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		return nil, fmt.Errorf("unparsable recommendation response: %w", err)
	}
	log.Printf("[AI] Recommendations returned count=%d", len(recs))
	return recs, nil
}

// ExtractTitles reads book spines or covers out of an image and returns the
// visible titles. Returns an empty slice when no titles are legible.
func (g *Gemini) ExtractTitles(ctx context.Context, data []byte, mimeType string) ([]string, error) {
	log.Printf("[AI] Title extraction requested mime=%s bytes=%d", mimeType, len(data))

	parts := []*genai.Part{
		{Text: "List every book title visible in this image. Return one object per title. " +
			"Do not guess titles you cannot actually read."},
		{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
	}

	schema := &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title": {Type: genai.TypeString},
			},
			Required: []string{"title"},
		},
	}

	raw, err := g.generateJSON(ctx, parts, schema)
	if err != nil {
		return nil, err
	}

	var extracted []struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(raw), &extracted); err != nil {
		return nil, fmt.Errorf("unparsable extraction response: %w", err)
	}

	titles := make([]string, 0, len(extracted))
	for _, e := range extracted {
		if strings.TrimSpace(e.Title) != "" {
			titles = append(titles, e.Title)
		}
	}
	log.Printf("[AI] Titles extracted count=%d", len(titles))
	return titles, nil
}

// generateJSON runs one schema-constrained generation and returns the raw
// JSON text of the first candidate.
func (g *Gemini) generateJSON(ctx context.Context, parts []*genai.Part, schema *genai.Schema) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.2),
		MaxOutputTokens:  2048,
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{
		{
			Role:  "user",
			Parts: parts,
		},
	}, config)
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}

	return "", fmt.Errorf("no response from model")
}

// empty reports whether the model suggested nothing usable.
func (s *Suggestion) empty() bool {
	return s.Title == nil && s.Author == nil && s.Genre == nil && s.Tags == nil &&
		s.Description == nil && s.TotalPages == nil
}
