package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBooks(t *testing.T) {
	data, err := EncodeBooks(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	data, err = EncodeBooks(testBooks()[:1])
	require.NoError(t, err)
	expected := `[{"title":"Dune","author":"Frank Herbert","year":1965,"genre":"Science Fiction","read":true,"date_added":"2023-01-10"}]`
	assert.JSONEq(t, expected, string(data))
}

func TestDecodeBooks(t *testing.T) {
	t.Run("should pass: round trip", func(t *testing.T) {
		data, err := EncodeBooks(testBooks())
		require.NoError(t, err)
		books, err := DecodeBooks(data)
		require.NoError(t, err)
		assert.Equal(t, testBooks(), books)
	})

	t.Run("should pass: empty array", func(t *testing.T) {
		books, err := DecodeBooks([]byte(`[]`))
		require.NoError(t, err)
		assert.NotNil(t, books)
		assert.Empty(t, books)
	})

	testCases := []struct {
		name string
		data string
	}{
		{"not json", `{{{`},
		{"null", `null`},
		{"object", `{"title":"Dune"}`},
		{"missing field", `[{"title":"Dune","author":"Frank Herbert","year":1965,"genre":"Fiction","read":true}]`},
		{"wrong year type", `[{"title":"Dune","author":"Frank Herbert","year":"1965","genre":"Fiction","read":true,"date_added":"2023-01-10"}]`},
		{"wrong read type", `[{"title":"Dune","author":"Frank Herbert","year":1965,"genre":"Fiction","read":"yes","date_added":"2023-01-10"}]`},
	}
	for _, tc := range testCases {
		t.Run("should fail: "+tc.name, func(t *testing.T) {
			books, err := DecodeBooks([]byte(tc.data))
			assert.Error(t, err)
			assert.Nil(t, books)
		})
	}
}
