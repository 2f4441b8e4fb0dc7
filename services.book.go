package main

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"
)

var _ BookServiceProvider = (*BookService)(nil) // ensure BookService implements BookServiceProvider.

// BookServiceProvider defines the operations available on the books collection.
type BookServiceProvider interface {
	Add(ctx context.Context, title, author string, year int, genre string, read bool) (BookRecord, error)
	Delete(ctx context.Context, title string) (int, error)
	Update(ctx context.Context, title string, fields BookUpdate) (bool, error)
	GetAll(ctx context.Context) []BookRecord
	Query(ctx context.Context) *BookQuery
	Persist(ctx context.Context) error
}

// BookService owns the ordered collection of books. Every mutation
// is saved into the storage before the call returns. When the save
// fails, the in-memory change is kept and the error is returned.
type BookService struct {
	logger  *zap.Logger
	clock   Clocker
	storage BookStorage

	mu    sync.RWMutex
	books []BookRecord
}

// NewBookService loads the collection from the storage and provides a ready to use service.
func NewBookService(ctx context.Context, logger *zap.Logger, clock Clocker, storage BookStorage) *BookService {
	books := storage.Load(ctx)
	if books == nil {
		books = []BookRecord{}
	}
	logger.Info("service: books collection loaded", zap.Int("books.count", len(books)))
	return &BookService{
		logger:  logger,
		clock:   clock,
		storage: storage,
		books:   books,
	}
}

// Add appends a new book to the collection. Books sharing a title are allowed.
func (bs *BookService) Add(ctx context.Context, title, author string, year int, genre string, read bool) (BookRecord, error) {
	book, err := NewBookRecord(title, author, year, genre, read, bs.clock.Now())
	if err != nil {
		return BookRecord{}, err
	}

	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.books = append(bs.books, book)
	if err = bs.save(ctx); err != nil {
		return book, err
	}
	bs.logger.Info("service: book added", zap.String("book.title", book.Title), zap.String("book.author", book.Author))
	return book, nil
}

// Delete removes every book with the given title, ignoring case, and returns
// how many were removed. Nothing is saved when no book matched.
func (bs *BookService) Delete(ctx context.Context, title string) (int, error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	before := len(bs.books)
	kept := slices.DeleteFunc(slices.Clone(bs.books), func(b BookRecord) bool {
		return b.HasTitle(title)
	})
	removed := before - len(kept)
	if removed == 0 {
		return 0, nil
	}

	bs.books = kept
	if err := bs.save(ctx); err != nil {
		return removed, err
	}
	bs.logger.Info("service: books deleted", zap.String("book.title", title), zap.Int("books.removed", removed))
	return removed, nil
}

// Update merges the supplied fields into the first book with the given title,
// ignoring case. Other books with the same title are left untouched. It returns
// false without saving anything when no book matched.
func (bs *BookService) Update(ctx context.Context, title string, fields BookUpdate) (bool, error) {
	if err := fields.Validate(bs.clock.Now()); err != nil {
		return false, err
	}

	bs.mu.Lock()
	defer bs.mu.Unlock()
	idx := slices.IndexFunc(bs.books, func(b BookRecord) bool {
		return b.HasTitle(title)
	})
	if idx < 0 {
		return false, nil
	}

	fields.ApplyTo(&bs.books[idx])
	if err := bs.save(ctx); err != nil {
		return true, err
	}
	bs.logger.Info("service: book updated", zap.String("book.title", title), zap.Int("book.position", idx))
	return true, nil
}

// GetAll returns a copy of the collection in insertion order.
func (bs *BookService) GetAll(_ context.Context) []BookRecord {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return slices.Clone(bs.books)
}

// Query provides a read-only view over the current collection.
func (bs *BookService) Query(ctx context.Context) *BookQuery {
	return NewBookQuery(bs.GetAll(ctx))
}

// Persist saves the current collection. It is the way to retry
// after a mutation which failed to be saved.
func (bs *BookService) Persist(ctx context.Context) error {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.save(ctx)
}

// save must be called with the lock held. The write is not bound to the
// caller cancellation: once a mutation is applied in memory it is always saved.
func (bs *BookService) save(ctx context.Context) error {
	err := bs.storage.Save(context.WithoutCancel(ctx), bs.books)
	if err != nil {
		bs.logger.Error("service: failed to save books", zap.Int("books.count", len(bs.books)), zap.Error(err))
	}
	return err
}
