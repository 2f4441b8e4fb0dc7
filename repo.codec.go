package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// booksSchema describes the stored collection document.
const booksSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["title", "author", "year", "genre", "read", "date_added"],
		"properties": {
			"title":      {"type": "string"},
			"author":     {"type": "string"},
			"year":       {"type": "integer"},
			"genre":      {"type": "string"},
			"read":       {"type": "boolean"},
			"date_added": {"type": "string"}
		}
	}
}`

var booksSchemaLoader = gojsonschema.NewStringLoader(booksSchema)

// EncodeBooks serializes the collection as an indented JSON array.
// An empty collection gives `[]`.
func EncodeBooks(books []BookRecord) ([]byte, error) {
	if books == nil {
		books = []BookRecord{}
	}
	return json.MarshalIndent(books, "", "    ")
}

// DecodeBooks checks the document against the collection schema
// before turning it into a list of books.
func DecodeBooks(data []byte) ([]BookRecord, error) {
	result, err := gojsonschema.Validate(booksSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid books document: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return nil, fmt.Errorf("books document does not match schema: %s", strings.Join(errs, "; "))
	}

	books := []BookRecord{}
	if err = json.Unmarshal(data, &books); err != nil {
		return nil, err
	}
	return books, nil
}
