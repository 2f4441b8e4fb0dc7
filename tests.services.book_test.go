package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestBookService(seed ...BookRecord) (*BookService, *MockBookStorage, *[]BookRecord) {
	storage, stored := NewMemoryBookStorage(seed...)
	bs := NewBookService(context.Background(), zap.NewNop(), NewMockClocker(), storage)
	return bs, storage, stored
}

func TestBookService_Load(t *testing.T) {
	bs, storage, _ := newTestBookService(testBooks()...)
	assert.Equal(t, testBooks(), bs.GetAll(context.Background()))
	assert.Equal(t, 0, storage.saves)

	storage.LoadFunc = func(ctx context.Context) []BookRecord { return nil }
	bs = NewBookService(context.Background(), zap.NewNop(), NewMockClocker(), storage)
	assert.NotNil(t, bs.GetAll(context.Background()))
	assert.Empty(t, bs.GetAll(context.Background()))
}

func TestBookService_Add(t *testing.T) {
	bs, storage, stored := newTestBookService(testBooks()...)

	t.Run("should pass: valid book", func(t *testing.T) {
		book, err := bs.Add(context.Background(), "Emma", "Jane Austen", 1815, "Romance", false)
		require.NoError(t, err)
		assert.Equal(t, "2023-07-02", book.DateAdded)
		books := bs.GetAll(context.Background())
		assert.Len(t, books, len(testBooks())+1)
		assert.Equal(t, book, books[len(books)-1])
		assert.Equal(t, books, *stored)
		assert.Equal(t, 1, storage.saves)
	})

	t.Run("should pass: duplicate title", func(t *testing.T) {
		_, err := bs.Add(context.Background(), "emma", "Someone Else", 2001, "Fiction", true)
		require.NoError(t, err)
		assert.Len(t, bs.GetAll(context.Background()), len(testBooks())+2)
		assert.Equal(t, 2, storage.saves)
	})

	t.Run("should fail: missing author", func(t *testing.T) {
		before := bs.GetAll(context.Background())
		_, err := bs.Add(context.Background(), "Emma", "", 1815, "Romance", false)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "author", vErr.Field)
		assert.Equal(t, before, bs.GetAll(context.Background()))
		assert.Equal(t, 2, storage.saves)
	})
}

func TestBookService_Delete(t *testing.T) {
	t.Run("removes every matching title", func(t *testing.T) {
		bs, storage, stored := newTestBookService(testBooks()...)
		removed, err := bs.Delete(context.Background(), "dune")
		require.NoError(t, err)
		assert.Equal(t, 2, removed)
		all := testBooks()
		expected := []BookRecord{all[1], all[2], all[4]}
		assert.Equal(t, expected, bs.GetAll(context.Background()))
		assert.Equal(t, expected, *stored)
		assert.Equal(t, 1, storage.saves)
	})

	t.Run("absent title changes nothing", func(t *testing.T) {
		bs, storage, stored := newTestBookService(testBooks()...)
		removed, err := bs.Delete(context.Background(), "Dune Messiah II")
		require.NoError(t, err)
		assert.Equal(t, 0, removed)
		assert.Equal(t, testBooks(), bs.GetAll(context.Background()))
		assert.Equal(t, testBooks(), *stored)
		assert.Equal(t, 0, storage.saves)
	})
}

func TestBookService_Update(t *testing.T) {
	t.Run("updates only the first match", func(t *testing.T) {
		bs, storage, stored := newTestBookService(testBooks()...)
		found, err := bs.Update(context.Background(), "DUNE", BookUpdate{Read: ptr(false), Year: ptr(1966)})
		require.NoError(t, err)
		assert.True(t, found)

		expected := testBooks()
		expected[0].Read = false
		expected[0].Year = 1966
		assert.Equal(t, expected, bs.GetAll(context.Background()))
		assert.Equal(t, expected, *stored)
		assert.Equal(t, 1, storage.saves)
	})

	t.Run("absent title changes nothing", func(t *testing.T) {
		bs, storage, _ := newTestBookService(testBooks()...)
		found, err := bs.Update(context.Background(), "Missing", BookUpdate{Read: ptr(true)})
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, testBooks(), bs.GetAll(context.Background()))
		assert.Equal(t, 0, storage.saves)
	})

	t.Run("invalid fields are rejected", func(t *testing.T) {
		bs, storage, _ := newTestBookService(testBooks()...)
		found, err := bs.Update(context.Background(), "Dune", BookUpdate{Title: ptr(""), Read: ptr(false)})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.False(t, found)
		assert.Equal(t, testBooks(), bs.GetAll(context.Background()))
		assert.Equal(t, 0, storage.saves)
	})
}

func TestBookService_SaveFailure(t *testing.T) {
	storageErr := &StorageWriteError{Backend: FileBackend, Err: errors.New("disk full")}
	storage, _ := NewMemoryBookStorage(testBooks()...)
	storage.SaveFunc = func(ctx context.Context, books []BookRecord) error {
		return storageErr
	}
	bs := NewBookService(context.Background(), zap.NewNop(), NewMockClocker(), storage)

	_, err := bs.Add(context.Background(), "Emma", "Jane Austen", 1815, "Romance", false)
	var wErr *StorageWriteError
	require.ErrorAs(t, err, &wErr)
	// the change stays in memory.
	assert.Len(t, bs.GetAll(context.Background()), len(testBooks())+1)

	removed, err := bs.Delete(context.Background(), "emma")
	assert.ErrorIs(t, err, storageErr)
	assert.Equal(t, 1, removed)

	found, err := bs.Update(context.Background(), "dune", BookUpdate{Read: ptr(false)})
	assert.ErrorIs(t, err, storageErr)
	assert.True(t, found)

	// a later retry saves the current collection.
	var saved []BookRecord
	storage.SaveFunc = func(ctx context.Context, books []BookRecord) error {
		saved = books
		return nil
	}
	require.NoError(t, bs.Persist(context.Background()))
	assert.Equal(t, bs.GetAll(context.Background()), saved)
}

// TestBookService_Scenario walks through a full session starting from a missing file.
func TestBookService_Scenario(t *testing.T) {
	bs, _, stored := newTestBookService()
	assert.Empty(t, bs.GetAll(context.Background()))

	_, err := bs.Add(context.Background(), "Dune", "Herbert", 1965, "Science Fiction", false)
	require.NoError(t, err)
	require.Len(t, *stored, 1)
	assert.Equal(t, BookRecord{
		Title:     "Dune",
		Author:    "Herbert",
		Year:      1965,
		Genre:     "Science Fiction",
		Read:      false,
		DateAdded: "2023-07-02",
	}, (*stored)[0])

	_, err = bs.Add(context.Background(), "DUNE", "Other", 1970, "Fiction", true)
	require.NoError(t, err)
	assert.Len(t, bs.GetAll(context.Background()), 2)

	removed, err := bs.Delete(context.Background(), "dune")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Empty(t, bs.GetAll(context.Background()))
	assert.Empty(t, *stored)

	found, err := bs.Update(context.Background(), "Missing", BookUpdate{Read: ptr(true)})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, bs.GetAll(context.Background()))
}

func TestBookService_GetAllIsACopy(t *testing.T) {
	bs, _, _ := newTestBookService(testBooks()...)
	books := bs.GetAll(context.Background())
	books[0].Title = "Changed"
	assert.Equal(t, "Dune", bs.GetAll(context.Background())[0].Title)
}

// TestBookService_FileScenario runs the service over a real books file.
func TestBookService_FileScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	bs := NewBookService(context.Background(), zap.NewNop(), NewMockClocker(), NewFileBookStorage(zap.NewNop(), path))
	assert.Empty(t, bs.GetAll(context.Background()))

	_, err := bs.Add(context.Background(), "Dune", "Herbert", 1965, "Science Fiction", false)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, "2023-07-02", raw[0]["date_added"])

	// a new service sees the saved collection.
	reloaded := NewBookService(context.Background(), zap.NewNop(), NewMockClocker(), NewFileBookStorage(zap.NewNop(), path))
	assert.Equal(t, bs.GetAll(context.Background()), reloaded.GetAll(context.Background()))
	assert.Equal(t, 0.0, reloaded.Query(context.Background()).Stats().CompletionRate)
}

// TestBookService_SaveIgnoresCancellation ensures a cancelled caller
// context does not prevent the collection from being saved.
func TestBookService_SaveIgnoresCancellation(t *testing.T) {
	bs, storage, stored := newTestBookService(testBooks()...)
	memorySave := storage.SaveFunc
	storage.SaveFunc = func(ctx context.Context, books []BookRecord) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return memorySave(ctx, books)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := bs.Add(ctx, "Emma", "Jane Austen", 1815, "Romance", false)
	require.NoError(t, err)
	assert.Len(t, *stored, len(testBooks())+1)

	removed, err := bs.Delete(ctx, "emma")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	found, err := bs.Update(ctx, "dune", BookUpdate{Read: ptr(false)})
	require.NoError(t, err)
	assert.True(t, found)
	require.NoError(t, bs.Persist(ctx))
	assert.Equal(t, bs.GetAll(context.Background()), *stored)
}
