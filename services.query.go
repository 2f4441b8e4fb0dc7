package main

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// SearchScope defines which fields a search term is matched against.
type SearchScope string

// Supported search scopes.
const (
	SearchTitle  SearchScope = "title"
	SearchAuthor SearchScope = "author"
	SearchBoth   SearchScope = "both"
)

// ParseSearchScope converts a client value into a scope. Unknown
// or empty values fall back to searching both title and author.
func ParseSearchScope(s string) SearchScope {
	switch SearchScope(strings.ToLower(strings.TrimSpace(s))) {
	case SearchTitle:
		return SearchTitle
	case SearchAuthor:
		return SearchAuthor
	}
	return SearchBoth
}

// ReadingStats summarizes the reading progress of the collection.
type ReadingStats struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completion_rate"`
}

// BookQuery is a read-only view over a snapshot of the collection.
type BookQuery struct {
	books []BookRecord
}

// NewBookQuery provides a query over the given books. The slice must
// not be modified afterwards.
func NewBookQuery(books []BookRecord) *BookQuery {
	return &BookQuery{books: books}
}

// All yields every book in collection order.
func (q *BookQuery) All() iter.Seq[BookRecord] {
	return slices.Values(q.books)
}

// Search yields the books whose title, author or both contain the term,
// ignoring case. An empty term matches every book.
func (q *BookQuery) Search(term string, scope SearchScope) iter.Seq[BookRecord] {
	term = strings.ToLower(term)
	return func(yield func(BookRecord) bool) {
		for _, b := range q.books {
			if matchTerm(b, term, scope) && !yield(b) {
				return
			}
		}
	}
}

// FilterByGenre yields the books of exactly that genre. AllGenres matches every book.
func (q *BookQuery) FilterByGenre(genre string) iter.Seq[BookRecord] {
	return func(yield func(BookRecord) bool) {
		for _, b := range q.books {
			if matchGenre(b, genre) && !yield(b) {
				return
			}
		}
	}
}

// Filter returns the books matching both the search term and the genre.
func (q *BookQuery) Filter(term string, scope SearchScope, genre string) []BookRecord {
	term = strings.ToLower(term)
	books := []BookRecord{}
	for _, b := range q.books {
		if matchTerm(b, term, scope) && matchGenre(b, genre) {
			books = append(books, b)
		}
	}
	return books
}

// DistinctGenres returns the genres present in the collection, sorted.
func (q *BookQuery) DistinctGenres() []string {
	set := make(map[string]struct{})
	for _, b := range q.books {
		set[b.Genre] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}

// Stats counts the books and the read ones.
func (q *BookQuery) Stats() ReadingStats {
	stats := ReadingStats{Total: len(q.books)}
	for _, b := range q.books {
		if b.Read {
			stats.Completed++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total) * 100
	}
	return stats
}

// GenreDistribution counts the books per genre. It returns nil for an empty collection.
func (q *BookQuery) GenreDistribution() map[string]int {
	if len(q.books) == 0 {
		return nil
	}
	dist := make(map[string]int)
	for _, b := range q.books {
		dist[b.Genre]++
	}
	return dist
}

// matchTerm expects an already lowercased term.
func matchTerm(b BookRecord, term string, scope SearchScope) bool {
	if term == "" {
		return true
	}
	switch scope {
	case SearchTitle:
		return strings.Contains(strings.ToLower(b.Title), term)
	case SearchAuthor:
		return strings.Contains(strings.ToLower(b.Author), term)
	}
	return strings.Contains(strings.ToLower(b.Title), term) ||
		strings.Contains(strings.ToLower(b.Author), term)
}

func matchGenre(b BookRecord, genre string) bool {
	return genre == AllGenres || b.Genre == genre
}
