// Package importer holds the two bulk producers of records: the legacy
// dataset import and the shelf-photo title import. Both route their
// candidates through the dedup filter before anything reaches the store.
package importer

import (
	"log"
	"time"

	"github.com/google/uuid"

	"shelfkeeper/backend/internal/dedup"
	"shelfkeeper/backend/internal/id"
	"shelfkeeper/backend/internal/model"
	"shelfkeeper/backend/internal/store"
)

// ExtractedTag marks records created from AI-extracted image titles.
const ExtractedTag = "Imported via AI"

// Importer runs import batches against the store.
type Importer struct {
	store *store.Store

	// dedupImageImports controls whether AI-extracted titles are filtered
	// against the existing collection like every other import. On by
	// default; wishlist photos of one's own shelves make duplicates likely.
	dedupImageImports bool
}

// New creates an Importer.
func New(s *store.Store, dedupImageImports bool) *Importer {
	return &Importer{store: s, dedupImageImports: dedupImageImports}
}

// ImportLegacy folds a batch of legacy records into the collection and
// returns how many were accepted. Candidates colliding with existing titles
// are dropped; an all-duplicate batch is "nothing to import", not an error.
func (im *Importer) ImportLegacy(candidates []model.Book) (int, error) {
	runID := uuid.NewString()
	log.Printf("[IMPORT] Legacy import started run=%s candidates=%d", runID, len(candidates))

	fresh := dedup.FilterNewCandidates(im.store.List(), candidates)
	if len(fresh) == 0 {
		log.Printf("[IMPORT] Legacy import run=%s: nothing to import", runID)
		return 0, nil
	}

	records := make([]model.Book, len(fresh))
	for i, c := range fresh {
		records[i] = stampLegacy(c)
	}
	if err := im.store.BulkAppend(records); err != nil {
		return 0, err
	}

	log.Printf("[IMPORT] Legacy import run=%s accepted=%d skipped=%d",
		runID, len(records), len(candidates)-len(records))
	return len(records), nil
}

// ImportExtractedTitles turns AI-extracted titles into wishlist records and
// returns how many were accepted.
func (im *Importer) ImportExtractedTitles(titles []string) (int, error) {
	runID := uuid.NewString()
	log.Printf("[IMPORT] Image import started run=%s titles=%d", runID, len(titles))

	candidates := make([]model.Book, len(titles))
	for i, title := range titles {
		candidates[i] = NewWishlistBook(title)
	}

	if im.dedupImageImports {
		candidates = dedup.FilterNewCandidates(im.store.List(), candidates)
	}
	if len(candidates) == 0 {
		log.Printf("[IMPORT] Image import run=%s: nothing to import", runID)
		return 0, nil
	}

	if err := im.store.BulkAppend(candidates); err != nil {
		return 0, err
	}

	log.Printf("[IMPORT] Image import run=%s accepted=%d skipped=%d",
		runID, len(candidates), len(titles)-len(candidates))
	return len(candidates), nil
}

// stampLegacy completes a legacy candidate into a full record. Legacy rows
// predate the status/format/owner fields, so blanks get the neutral values.
func stampLegacy(c model.Book) model.Book {
	c.ID = id.MustNew("book")
	c.AddedAt = time.Now().UnixMilli()
	c.IsWishlist = false
	if !c.Status.Valid() {
		c.Status = model.StatusUnread
	}
	if !c.Format.Valid() {
		c.Format = model.FormatPhysical
	}
	if !c.Owner.Valid() {
		c.Owner = model.OwnerMe
	}
	c.CoercePages()
	return c
}

// NewWishlistBook builds the placeholder record for one extracted title.
func NewWishlistBook(title string) model.Book {
	return model.Book{
		ID:         id.MustNew("book"),
		Title:      title,
		Author:     "Unknown",
		Genre:      []string{},
		Tags:       []string{ExtractedTag},
		Status:     model.StatusUnread,
		Format:     model.FormatPhysical,
		Owner:      model.OwnerMe,
		IsWishlist: true,
		AddedAt:    time.Now().UnixMilli(),
	}
}
