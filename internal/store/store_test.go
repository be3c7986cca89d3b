package store

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfkeeper/backend/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testBook(id, title string) model.Book {
	return model.Book{
		ID:      id,
		Title:   title,
		Author:  "Some Author",
		Status:  model.StatusUnread,
		Format:  model.FormatPhysical,
		Owner:   model.OwnerMe,
		AddedAt: 1700000000000,
	}
}

func TestCreateThenList(t *testing.T) {
	s := newTestStore(t)

	b := testBook("book-1", "Dune")
	require.NoError(t, s.Create(b))

	books := s.List()
	require.Len(t, books, 1)
	assert.Equal(t, b, books[0])
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	s := newTestStore(t)

	err := s.Create(testBook("book-1", ""))
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Empty(t, s.List())
}

func TestCreateRejectsDuplicateID(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Create(testBook("book-1", "Dune")))
	err := s.Create(testBook("book-1", "Another"))
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	require.Len(t, s.List(), 1)
}

func TestUpdatePreservesIDAndAddedAt(t *testing.T) {
	s := newTestStore(t)

	original := testBook("book-1", "Dune")
	require.NoError(t, s.Create(original))

	replacement := testBook("book-other", "Dune Messiah")
	replacement.AddedAt = 9999999999999
	require.NoError(t, s.Update("book-1", replacement))

	got, ok := s.Get("book-1")
	require.True(t, ok)
	assert.Equal(t, "book-1", got.ID)
	assert.Equal(t, original.AddedAt, got.AddedAt)
	assert.Equal(t, "Dune Messiah", got.Title)
}

func TestUpdateMissingID(t *testing.T) {
	s := newTestStore(t)

	err := s.Update("book-nope", testBook("book-nope", "Ghost"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Create(testBook("book-1", "Dune")))
	require.NoError(t, s.Delete("book-1"))
	assert.Empty(t, s.List())

	assert.ErrorIs(t, s.Delete("book-1"), ErrNotFound)
}

func TestBulkAppendDoesNotDeduplicateTitles(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.BulkAppend([]model.Book{
		testBook("book-1", "Dune"),
		testBook("book-2", "Dune"),
	}))
	assert.Len(t, s.List(), 2)
}

func TestBulkAppendAllOrNothing(t *testing.T) {
	s := newTestStore(t)

	err := s.BulkAppend([]model.Book{
		testBook("book-1", "Dune"),
		testBook("book-1", "1984"), // duplicate id inside the batch
	})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Empty(t, s.List())
}

func TestPersistenceRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)

	want := []model.Book{
		testBook("book-1", "Dune"),
		testBook("book-2", "1984"),
	}
	require.NoError(t, s.BulkAppend(want))
	require.NoError(t, s.Close())

	reopened, err := Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, want, reopened.List())
}

func TestOpenWithEmptySlot(t *testing.T) {
	s := newTestStore(t)
	assert.Empty(t, s.List())
}

func TestCorruptSlotYieldsEmptyCollection(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Create(testBook("book-1", "Dune")))

	// Scribble over the slot directly, then reopen.
	require.NoError(t, s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(collectionKey), []byte("{not json"))
	}))
	require.NoError(t, s.Close())

	reopened, err := Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Empty(t, reopened.List())
}
