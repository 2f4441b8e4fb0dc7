package main

import (
	"context"
	"slices"
	"time"
)

// This file contains mocks definitions needed to perform unit tests.

type MockBookStorage struct {
	LoadFunc func(ctx context.Context) []BookRecord
	SaveFunc func(ctx context.Context, books []BookRecord) error
	saves    int
}

// Load mocks the behavior of reading the collection by the repository.
func (m *MockBookStorage) Load(ctx context.Context) []BookRecord {
	return m.LoadFunc(ctx)
}

// Save mocks the behavior of writing the collection by the repository.
func (m *MockBookStorage) Save(ctx context.Context, books []BookRecord) error {
	m.saves++
	return m.SaveFunc(ctx, books)
}

// NewMemoryBookStorage returns a mocked storage which keeps
// a copy of the last saved collection in memory.
func NewMemoryBookStorage(seed ...BookRecord) (*MockBookStorage, *[]BookRecord) {
	stored := slices.Clone(seed)
	if stored == nil {
		stored = []BookRecord{}
	}
	m := &MockBookStorage{
		LoadFunc: func(ctx context.Context) []BookRecord {
			return slices.Clone(stored)
		},
		SaveFunc: func(ctx context.Context, books []BookRecord) error {
			stored = slices.Clone(books)
			return nil
		},
	}
	return m, &stored
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock. This
// equals to `2023-07-02 00:00:00 +0000 UTC` in String format.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// MockUIDGenerator implements a fake UIDGenerator.
type MockUIDGenerator struct {
	MockedUID string
}

// NewMockUIDGenerator returns a mocked instance with predictable id.
func NewMockUIDGenerator(id string) *MockUIDGenerator {
	return &MockUIDGenerator{MockedUID: id}
}

// Generate constructs a predictable id to be used as mock.
func (muid *MockUIDGenerator) Generate(prefix string) string {
	return prefix + ":" + muid.MockedUID
}

func ptr[T any](v T) *T {
	return &v
}

// testBooks returns a small collection with duplicated titles.
func testBooks() []BookRecord {
	return []BookRecord{
		{Title: "Dune", Author: "Frank Herbert", Year: 1965, Genre: "Science Fiction", Read: true, DateAdded: "2023-01-10"},
		{Title: "Foundation", Author: "Isaac Asimov", Year: 1951, Genre: "Science Fiction", Read: false, DateAdded: "2023-02-11"},
		{Title: "Dune Messiah", Author: "Frank Herbert", Year: 1969, Genre: "Science Fiction", Read: false, DateAdded: "2023-03-12"},
		{Title: "DUNE", Author: "Someone Else", Year: 1970, Genre: "Fiction", Read: false, DateAdded: "2023-04-13"},
		{Title: "Gone Girl", Author: "Gillian Flynn", Year: 2012, Genre: "Mystery", Read: true, DateAdded: "2023-05-14"},
	}
}
