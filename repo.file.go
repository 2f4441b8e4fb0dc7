package main

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DefaultBooksFile is the collection file used when none is configured.
const DefaultBooksFile = "books.json"

type fileBookStorage struct {
	logger *zap.Logger
	path   string
}

// NewFileBookStorage provides an instance of json file-based book storage.
func NewFileBookStorage(logger *zap.Logger, path string) BookStorage {
	if path == "" {
		path = DefaultBooksFile
	}
	return &fileBookStorage{
		logger: logger,
		path:   path,
	}
}

// Load reads the whole collection from the file. A missing or malformed
// file is reported in logs and gives an empty collection.
func (fs *fileBookStorage) Load(_ context.Context) []BookRecord {
	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		fs.logger.Info("storage: no books file yet, starting empty", zap.String("storage.path", fs.path))
		return []BookRecord{}
	}
	if err == nil {
		var books []BookRecord
		if books, err = DecodeBooks(data); err == nil {
			return books
		}
	}
	fs.logger.Warn("storage: failed to load books, starting empty",
		zap.String("storage.path", fs.path),
		zap.Error(&StorageReadError{Backend: FileBackend, Err: err}),
	)
	return []BookRecord{}
}

// Save replaces the file content with the whole collection. Data is written
// into a temporary file of the same folder then renamed over the target, so
// readers see either the previous or the new content.
func (fs *fileBookStorage) Save(_ context.Context, books []BookRecord) error {
	data, err := EncodeBooks(books)
	if err != nil {
		return &StorageWriteError{Backend: FileBackend, Err: err}
	}
	if err = writeFileAtomic(fs.path, data, 0o644); err != nil {
		return &StorageWriteError{Backend: FileBackend, Err: err}
	}
	fs.logger.Debug("storage: books saved", zap.String("storage.path", fs.path), zap.Int("books.count", len(books)))
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed.

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
