package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookRecord(t *testing.T) {
	now := NewMockClocker().Now()

	t.Run("should pass: valid values", func(t *testing.T) {
		book, err := NewBookRecord("Dune", "Frank Herbert", 1965, "Science Fiction", true, now)
		require.NoError(t, err)
		expected := BookRecord{
			Title:     "Dune",
			Author:    "Frank Herbert",
			Year:      1965,
			Genre:     "Science Fiction",
			Read:      true,
			DateAdded: "2023-07-02",
		}
		assert.Equal(t, expected, book)
	})

	t.Run("should pass: empty genre", func(t *testing.T) {
		book, err := NewBookRecord("Dune", "Frank Herbert", 1965, " ", false, now)
		require.NoError(t, err)
		assert.Equal(t, OtherGenre, book.Genre)
	})

	testCases := []struct {
		name   string
		title  string
		author string
		year   int
		field  string
	}{
		{"empty title", "", "Frank Herbert", 1965, "title"},
		{"blank title", "   ", "Frank Herbert", 1965, "title"},
		{"empty author", "Dune", "", 1965, "author"},
		{"year too old", "Dune", "Frank Herbert", 1799, "year"},
		{"year in the future", "Dune", "Frank Herbert", 2024, "year"},
	}

	for _, tc := range testCases {
		t.Run("should fail: "+tc.name, func(t *testing.T) {
			book, err := NewBookRecord(tc.title, tc.author, tc.year, "Fiction", false, now)
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tc.field, vErr.Field)
			assert.Equal(t, BookRecord{}, book)
		})
	}

	t.Run("should pass: year bounds", func(t *testing.T) {
		_, err := NewBookRecord("Old", "Author", MinPublicationYear, "Fiction", false, now)
		assert.NoError(t, err)
		_, err = NewBookRecord("New", "Author", now.Year(), "Fiction", false, now)
		assert.NoError(t, err)
	})
}

func TestBookRecord_HasTitle(t *testing.T) {
	book := BookRecord{Title: "Dune"}
	assert.True(t, book.HasTitle("dune"))
	assert.True(t, book.HasTitle("DUNE"))
	assert.False(t, book.HasTitle("Dune Messiah"))
	assert.False(t, book.HasTitle("dun"))
}

func TestBookUpdate(t *testing.T) {
	now := NewMockClocker().Now()

	t.Run("empty update", func(t *testing.T) {
		assert.True(t, BookUpdate{}.IsEmpty())
		assert.False(t, BookUpdate{Read: ptr(false)}.IsEmpty())
		assert.NoError(t, BookUpdate{}.Validate(now))
	})

	t.Run("apply only supplied fields", func(t *testing.T) {
		book := testBooks()[0]
		BookUpdate{Read: ptr(false), Genre: ptr("Classic")}.ApplyTo(&book)
		assert.Equal(t, "Dune", book.Title)
		assert.Equal(t, "Frank Herbert", book.Author)
		assert.Equal(t, 1965, book.Year)
		assert.Equal(t, "Classic", book.Genre)
		assert.False(t, book.Read)
		assert.Equal(t, "2023-01-10", book.DateAdded)
	})

	t.Run("invalid values", func(t *testing.T) {
		var vErr *ValidationError
		assert.True(t, errors.As(BookUpdate{Title: ptr("")}.Validate(now), &vErr))
		assert.True(t, errors.As(BookUpdate{Author: ptr(" ")}.Validate(now), &vErr))
		assert.True(t, errors.As(BookUpdate{Year: ptr(1700)}.Validate(now), &vErr))
		assert.Equal(t, "year", vErr.Field)
		assert.NoError(t, BookUpdate{Year: ptr(2000), Title: ptr("Renamed")}.Validate(now))
	})
}
