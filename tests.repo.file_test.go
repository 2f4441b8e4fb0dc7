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

func TestFileStore_LoadMissingFile(t *testing.T) {
	fs := NewFileBookStorage(zap.NewNop(), filepath.Join(t.TempDir(), "books.json"))
	books := fs.Load(context.Background())
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestFileStore_LoadMalformedFile(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"invalid json", "[{"},
		{"unexpected structure", `{"books":[]}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "books.json")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))
			books := NewFileBookStorage(zap.NewNop(), path).Load(context.Background())
			assert.NotNil(t, books)
			assert.Empty(t, books)
		})
	}
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "books.json")
	fs := NewFileBookStorage(zap.NewNop(), path)

	err := fs.Save(context.Background(), testBooks())
	require.NoError(t, err)
	assert.Equal(t, testBooks(), fs.Load(context.Background()))

	// the file holds a plain array of books with the expected keys.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, len(testBooks()))
	assert.Equal(t, map[string]interface{}{
		"title":      "Dune",
		"author":     "Frank Herbert",
		"year":       float64(1965),
		"genre":      "Science Fiction",
		"read":       true,
		"date_added": "2023-01-10",
	}, raw[0])

	// overwriting with a smaller collection replaces the whole content.
	err = fs.Save(context.Background(), nil)
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	// no temporary file is left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_SaveFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-folder", "books.json")
	fs := NewFileBookStorage(zap.NewNop(), path)
	err := fs.Save(context.Background(), testBooks())
	var wErr *StorageWriteError
	require.True(t, errors.As(err, &wErr))
	assert.Equal(t, FileBackend, wErr.Backend)
	assert.Error(t, errors.Unwrap(err))
}

func TestFileStore_DefaultPath(t *testing.T) {
	fs := NewFileBookStorage(zap.NewNop(), "").(*fileBookStorage)
	assert.Equal(t, DefaultBooksFile, fs.path)
}
