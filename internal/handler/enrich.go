package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/unicode/norm"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"shelfkeeper/backend/internal/enrich"
	"shelfkeeper/backend/internal/model"
	"shelfkeeper/backend/internal/store"
)

const (
	// AITimeout is the maximum time allowed for one collaborator call
	AITimeout = 30 * time.Second
	// MaxQueryLength is the maximum allowed enrichment query length
	MaxQueryLength = 250
)

// AIHandler serves the enrichment and recommendation endpoints. Both
// collaborators degrade to empty results with a user-visible notice; a
// model failure never takes the app down.
type AIHandler struct {
	store       *store.Store
	enricher    Enricher
	recommender Recommender
}

// NewAIHandler creates an AIHandler.
func NewAIHandler(s *store.Store, e Enricher, r Recommender) *AIHandler {
	return &AIHandler{store: s, enricher: e, recommender: r}
}

// EnrichRequest asks for metadata matching a query, to be merged into the
// record currently being edited. Current carries the in-progress form
// state; BookID selects a stored record instead.
type EnrichRequest struct {
	Query   string      `json:"query" binding:"required,max=250"`
	BookID  *string     `json:"book_id,omitempty"`
	Current *model.Book `json:"current,omitempty"`
}

// EnrichResponse returns the merged record. The merge is not saved; the
// user reviews it and saves through the normal create/update path.
type EnrichResponse struct {
	Found  bool       `json:"found"`
	Merged model.Book `json:"merged"`
	Notice string     `json:"notice,omitempty"`
}

// HandleEnrich runs one enrichment call and applies the merge policy.
func (h *AIHandler) HandleEnrich(c *gin.Context) {
	var req EnrichRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if strings.Contains(err.Error(), "max") {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Query is too long (max 250 characters)",
				"code":  "QUERY_TOO_LONG",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: query is required",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	// Normalize Unicode to NFC form so lookalike characters do not slip
	// odd variants into titles.
	req.Query = norm.NFC.String(req.Query)

	current := model.Book{}
	if req.Current != nil {
		current = *req.Current
	} else if req.BookID != nil && *req.BookID != "" {
		stored, ok := h.store.Get(*req.BookID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found", "code": "NOT_FOUND"})
			return
		}
		current = stored
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), AITimeout)
	defer cancel()

	suggestion, err := h.enricher.Enrich(ctx, req.Query)
	if err != nil {
		log.Printf("[WARN] Enrichment failed: %v", err)
		c.JSON(http.StatusOK, EnrichResponse{
			Found:  false,
			Merged: enrich.Merge(current, nil),
			Notice: aiFailureNotice(err),
		})
		return
	}

	resp := EnrichResponse{
		Found:  suggestion != nil,
		Merged: enrich.Merge(current, suggestion),
	}
	if suggestion == nil {
		resp.Notice = "No metadata found for that query"
	}
	c.JSON(http.StatusOK, resp)
}

// RecommendationsResponse carries the suggestion strings for the dashboard.
type RecommendationsResponse struct {
	Recommendations []string `json:"recommendations"`
	Notice          string   `json:"notice,omitempty"`
}

// HandleRecommendations asks the model for new books based on the
// collection. Failures come back as an empty list plus a notice.
func (h *AIHandler) HandleRecommendations(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), AITimeout)
	defer cancel()

	recs, err := h.recommender.Recommend(ctx, h.store.List())
	if err != nil {
		log.Printf("[WARN] Recommendations failed: %v", err)
		c.JSON(http.StatusOK, RecommendationsResponse{
			Recommendations: []string{},
			Notice:          aiFailureNotice(err),
		})
		return
	}
	c.JSON(http.StatusOK, RecommendationsResponse{Recommendations: recs})
}

// aiFailureNotice turns a collaborator error into the message shown to the
// user. Rate-limit errors get their own wording.
func aiFailureNotice(err error) string {
	if isRateLimitError(err) {
		return "The AI service is rate limited right now, try again in a minute"
	}
	return "The AI service is unavailable right now"
}

// isRateLimitError checks if the error is a Gemini API rate limit error.
func isRateLimitError(err error) bool {
	// Check for gRPC ResourceExhausted status
	if s, ok := status.FromError(err); ok {
		return s.Code() == codes.ResourceExhausted
	}
	// Also check for wrapped errors and string matching as fallback
	errStr := err.Error()
	return strings.Contains(errStr, "ResourceExhausted") ||
		strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "quota")
}
