package handler

import (
	"context"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"shelfkeeper/backend/internal/importer"
)

// MaxImageBytes caps uploaded shelf photos at 8 MiB.
const MaxImageBytes = 8 << 20

// ImportHandler serves the two bulk import paths.
type ImportHandler struct {
	importer   *importer.Importer
	extractor  TitleExtractor
	legacyPath string
}

// NewImportHandler creates an ImportHandler.
func NewImportHandler(im *importer.Importer, ex TitleExtractor, legacyPath string) *ImportHandler {
	return &ImportHandler{importer: im, extractor: ex, legacyPath: legacyPath}
}

// ImportResponse reports how a batch went.
type ImportResponse struct {
	Added  int    `json:"added"`
	Notice string `json:"notice,omitempty"`
}

// HandleImportLegacy folds the fixed legacy dataset into the collection.
func (h *ImportHandler) HandleImportLegacy(c *gin.Context) {
	candidates, err := importer.LoadLegacy(h.legacyPath)
	if err != nil {
		log.Printf("[ERROR] Legacy dataset unavailable: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Legacy dataset is unavailable",
			"code":  "DATASET_UNAVAILABLE",
		})
		return
	}

	added, err := h.importer.ImportLegacy(candidates)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	resp := ImportResponse{Added: added}
	if added == 0 {
		resp.Notice = "Nothing to import, everything is already in the collection"
	}
	c.JSON(http.StatusOK, resp)
}

// HandleImportImage extracts book titles from an uploaded shelf photo and
// adds them to the wishlist. A model failure is a notice, not a fault.
func (h *ImportHandler) HandleImportImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: image file is required",
			"code":  "INVALID_REQUEST",
		})
		return
	}
	if fileHeader.Size > MaxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Image is too large (max 8 MiB)",
			"code":  "IMAGE_TOO_LARGE",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Could not read uploaded image",
			"code":  "INVALID_REQUEST",
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxImageBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Could not read uploaded image",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), AITimeout)
	defer cancel()

	titles, err := h.extractor.ExtractTitles(ctx, data, mimeType)
	if err != nil {
		log.Printf("[WARN] Title extraction failed: %v", err)
		c.JSON(http.StatusOK, ImportResponse{Added: 0, Notice: aiFailureNotice(err)})
		return
	}
	if len(titles) == 0 {
		c.JSON(http.StatusOK, ImportResponse{Added: 0, Notice: "No book titles found in the image"})
		return
	}

	added, err := h.importer.ImportExtractedTitles(titles)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	resp := ImportResponse{Added: added}
	if added == 0 {
		resp.Notice = "All extracted titles are already in the collection"
	}
	c.JSON(http.StatusOK, resp)
}
