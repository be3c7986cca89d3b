// Package store owns the book collection: an in-memory, insertion-ordered
// slice seeded once from a durable key-value slot and re-serialized in full
// after every mutation. Reads hand out copies; no caller ever holds a live
// reference into the collection.
package store

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"shelfkeeper/backend/internal/model"
)

// collectionKey is the single slot holding the serialized collection.
const collectionKey = "library/books"

// Store is the record store. A mutex guards the collection because gin
// serves requests concurrently, even though there is only one logical user.
type Store struct {
	db    *badger.DB
	mu    sync.RWMutex
	books []model.Book
}

// Open opens the badger database at path and seeds the collection from the
// durable slot. An absent or unparsable slot yields an empty collection,
// never an error.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil      // Badger's internal logging is noise here
	opts.SyncWrites = true // survive crashes mid-session

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	s := &Store{db: db}
	s.books = s.load()
	log.Printf("[INFO] Store opened path=%s books=%d", path, len(s.books))
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// load reads the slot once at startup. Any failure degrades to an empty
// collection: a corrupted slot is treated the same as no data.
func (s *Store) load() []model.Book {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(collectionKey))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if err != badger.ErrKeyNotFound {
			log.Printf("[WARN] Failed to read collection slot, starting empty: %v", err)
		}
		return nil
	}

	var books []model.Book
	if err := json.Unmarshal(data, &books); err != nil {
		log.Printf("[WARN] Collection slot is unparsable, starting empty: %v", err)
		return nil
	}
	return books
}

// persist rewrites the whole collection into the slot. Called with s.mu held.
// A write failure keeps the in-memory state authoritative and is logged, not
// propagated; the next successful mutation rewrites everything anyway.
func (s *Store) persist() {
	data, err := json.Marshal(s.books)
	if err != nil {
		log.Printf("[WARN] Failed to serialize collection: %v", err)
		return
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(collectionKey), data)
	})
	if err != nil {
		log.Printf("[WARN] Failed to persist collection: %v", err)
	}
}

// List returns a copy of the full collection in insertion order.
func (s *Store) List() []model.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Book, len(s.books))
	copy(out, s.books)
	return out
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (model.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.books {
		if b.ID == id {
			return b, true
		}
	}
	return model.Book{}, false
}

// Create appends a new record. The record must carry a non-empty title and
// an id not already in the collection.
func (s *Store) Create(b model.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validateNew(b, nil); err != nil {
		return err
	}
	s.books = append(s.books, b)
	s.persist()
	log.Printf("[INFO] Book created id=%s title=%q", b.ID, b.Title)
	return nil
}

// Update replaces the record matching id wholesale, preserving the original
// id and creation timestamp.
func (s *Store) Update(id string, b model.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.Title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	for i := range s.books {
		if s.books[i].ID == id {
			b.ID = id
			b.AddedAt = s.books[i].AddedAt
			s.books[i] = b
			s.persist()
			log.Printf("[INFO] Book updated id=%s title=%q", id, b.Title)
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes the record matching id. Deleting an absent id returns
// ErrNotFound; callers decide whether that matters.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.books {
		if s.books[i].ID == id {
			s.books = append(s.books[:i], s.books[i+1:]...)
			s.persist()
			log.Printf("[INFO] Book deleted id=%s", id)
			return nil
		}
	}
	return ErrNotFound
}

// BulkAppend appends a batch in order. It performs no deduplication; the
// import paths run the candidate filter first. The whole batch is validated
// before anything is appended, so a bad record leaves the store untouched.
func (s *Store) BulkAppend(books []model.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(books))
	for _, b := range books {
		if err := s.validateNew(b, seen); err != nil {
			return err
		}
		seen[b.ID] = true
	}
	s.books = append(s.books, books...)
	s.persist()
	log.Printf("[INFO] Bulk append committed count=%d", len(books))
	return nil
}

// validateNew checks the create invariants. batch holds ids earlier in the
// same bulk operation. Called with s.mu held.
func (s *Store) validateNew(b model.Book, batch map[string]bool) error {
	if b.Title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if b.ID == "" {
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if batch[b.ID] {
		return &ValidationError{Field: "id", Reason: "duplicate id " + b.ID}
	}
	for _, existing := range s.books {
		if existing.ID == b.ID {
			return &ValidationError{Field: "id", Reason: "duplicate id " + b.ID}
		}
	}
	return nil
}
