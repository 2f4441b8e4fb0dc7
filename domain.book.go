package main

import (
	"strings"
	"time"
)

const (
	// MinPublicationYear is the oldest publication year accepted for a book.
	MinPublicationYear = 1800
	// DateAddedLayout is the layout of the `date_added` field.
	DateAddedLayout = "2006-01-02"
	// AllGenres is the genre filter value which matches every book.
	AllGenres = "All"
	// OtherGenre is used when no genre is provided.
	OtherGenre = "Other"
)

// DefaultGenres is the list of genres suggested to clients.
var DefaultGenres = []string{"Fiction", "Non-Fiction", "Science Fiction", "Mystery", "Romance", OtherGenre}

// BookRecord represents a book entity of the collection.
type BookRecord struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Year      int    `json:"year"`
	Genre     string `json:"genre"`
	Read      bool   `json:"read"`
	DateAdded string `json:"date_added"`
}

// BookUpdate holds the subset of mutable fields of a book. A nil
// field means the value was not supplied and must be left as is.
type BookUpdate struct {
	Title  *string `json:"title,omitempty"`
	Author *string `json:"author,omitempty"`
	Year   *int    `json:"year,omitempty"`
	Genre  *string `json:"genre,omitempty"`
	Read   *bool   `json:"read,omitempty"`
}

// NewBookRecord validates the provided values and builds a book
// added at the given time. Genre is free text; a blank one is
// stored as OtherGenre.
func NewBookRecord(title, author string, year int, genre string, read bool, now time.Time) (BookRecord, error) {
	if err := validateTitleAuthor(title, author); err != nil {
		return BookRecord{}, err
	}
	if err := validateYear(year, now); err != nil {
		return BookRecord{}, err
	}
	if strings.TrimSpace(genre) == "" {
		genre = OtherGenre
	}
	return BookRecord{
		Title:     title,
		Author:    author,
		Year:      year,
		Genre:     genre,
		Read:      read,
		DateAdded: now.Format(DateAddedLayout),
	}, nil
}

// HasTitle reports whether the book title matches the given one, ignoring case.
func (b BookRecord) HasTitle(title string) bool {
	return strings.EqualFold(b.Title, title)
}

// IsEmpty reports whether no field was supplied.
func (u BookUpdate) IsEmpty() bool {
	return u.Title == nil && u.Author == nil && u.Year == nil && u.Genre == nil && u.Read == nil
}

// Validate checks the supplied fields against the same rules used at creation.
func (u BookUpdate) Validate(now time.Time) error {
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return missingFieldError("title")
	}
	if u.Author != nil && strings.TrimSpace(*u.Author) == "" {
		return missingFieldError("author")
	}
	if u.Year != nil {
		return validateYear(*u.Year, now)
	}
	return nil
}

// ApplyTo merges the supplied fields into the book. DateAdded is never touched.
func (u BookUpdate) ApplyTo(b *BookRecord) {
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Author != nil {
		b.Author = *u.Author
	}
	if u.Year != nil {
		b.Year = *u.Year
	}
	if u.Genre != nil {
		b.Genre = *u.Genre
	}
	if u.Read != nil {
		b.Read = *u.Read
	}
}

func validateTitleAuthor(title, author string) error {
	if strings.TrimSpace(title) == "" {
		return missingFieldError("title")
	}
	if strings.TrimSpace(author) == "" {
		return missingFieldError("author")
	}
	return nil
}

func validateYear(year int, now time.Time) error {
	if year < MinPublicationYear || year > now.Year() {
		return &ValidationError{Field: "year", Reason: "must be between 1800 and the current year"}
	}
	return nil
}
