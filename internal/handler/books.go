package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shelfkeeper/backend/internal/id"
	"shelfkeeper/backend/internal/model"
	"shelfkeeper/backend/internal/store"
	"shelfkeeper/backend/internal/view"
)

// BookHandler serves the record CRUD and projection endpoints.
type BookHandler struct {
	store *store.Store
}

// NewBookHandler creates a BookHandler.
func NewBookHandler(s *store.Store) *BookHandler {
	return &BookHandler{store: s}
}

// BookRequest is the manual create/edit payload.
type BookRequest struct {
	Title       string   `json:"title" binding:"required"`
	Author      string   `json:"author"`
	Genre       []string `json:"genre"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	TotalPages  int      `json:"total_pages"`
	CurrentPage int      `json:"current_page"`
	Status      string   `json:"status" binding:"required,oneof=unread reading completed abandoned"`
	Format      string   `json:"format" binding:"required,oneof=physical digital audiobook"`
	Owner       string   `json:"owner" binding:"required,oneof=me spouse shared"`
	Location    string   `json:"location"`
	IsWishlist  bool     `json:"is_wishlist"`
	Rating      *float64 `json:"rating" binding:"omitempty,min=0,max=5"`
}

func (r *BookRequest) toBook() model.Book {
	b := model.Book{
		Title:       r.Title,
		Author:      r.Author,
		Genre:       r.Genre,
		Tags:        r.Tags,
		Description: r.Description,
		TotalPages:  r.TotalPages,
		CurrentPage: r.CurrentPage,
		Status:      model.Status(r.Status),
		Format:      model.Format(r.Format),
		Owner:       model.Owner(r.Owner),
		Location:    r.Location,
		IsWishlist:  r.IsWishlist,
		Rating:      r.Rating,
	}
	b.CoercePages()
	return b
}

// HandleList returns the collection, optionally split into the library or
// wishlist view and filtered by a search query.
func (h *BookHandler) HandleList(c *gin.Context) {
	books := h.store.List()

	switch c.Query("view") {
	case "library":
		books = view.Library(books)
	case "wishlist":
		books = view.Wishlist(books)
	}

	if q := c.Query("q"); q != "" {
		books = view.Search(books, q)
	}

	responses := make([]model.BookResponse, len(books))
	for i, book := range books {
		responses[i] = book.ToResponse()
	}
	c.JSON(http.StatusOK, responses)
}

// HandleGet returns one record in full, including edit-only fields.
func (h *BookHandler) HandleGet(c *gin.Context) {
	book, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}
	c.JSON(http.StatusOK, book)
}

// HandleCreate appends a record from a manual form submit.
func (h *BookHandler) HandleCreate(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
			"code":  "INVALID_REQUEST",
		})
		return
	}

	book := req.toBook()
	book.ID = id.MustNew("book")
	book.AddedAt = time.Now().UnixMilli()

	if err := h.store.Create(book); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

// HandleUpdate replaces a record wholesale; the store keeps the original
// id and creation timestamp.
func (h *BookHandler) HandleUpdate(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
			"code":  "INVALID_REQUEST",
		})
		return
	}

	bookID := c.Param("id")
	if err := h.store.Update(bookID, req.toBook()); err != nil {
		writeStoreError(c, err)
		return
	}

	book, _ := h.store.Get(bookID)
	c.JSON(http.StatusOK, book)
}

// HandleDelete removes a record.
func (h *BookHandler) HandleDelete(c *gin.Context) {
	if err := h.store.Delete(c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleRecent returns the dashboard "recent reads" strip.
func (h *BookHandler) HandleRecent(c *gin.Context) {
	books := view.RecentReads(h.store.List())
	responses := make([]model.BookResponse, len(books))
	for i, book := range books {
		responses[i] = book.ToResponse()
	}
	c.JSON(http.StatusOK, responses)
}

// HandleStats returns the aggregate dashboard statistics.
func (h *BookHandler) HandleStats(c *gin.Context) {
	c.JSON(http.StatusOK, view.Summarize(h.store.List()))
}

// writeStoreError maps store errors onto JSON responses.
func writeStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found", "code": "NOT_FOUND"})
	case store.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error", "code": "INTERNAL"})
	}
}
