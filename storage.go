package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Supported storage backends.
const (
	FileBackend  = "file"
	BoltBackend  = "bolt"
	RedisBackend = "redis"
)

// BookStorage reads and writes the full collection. Load never fails: a missing
// or undecodable store yields an empty collection. Save replaces the whole store
// and reports any failure as a *StorageWriteError.
type BookStorage interface {
	Load(ctx context.Context) []BookRecord
	Save(ctx context.Context, books []BookRecord) error
}

// NewBookStorage builds the storage backend selected in the configuration.
// The returned cleanup releases the backend resources.
func NewBookStorage(logger *zap.Logger, config *Config) (BookStorage, func(), error) {
	switch config.Storage.Backend {
	case FileBackend:
		return NewFileBookStorage(logger, config.Storage.FilePath), func() {}, nil

	case BoltBackend:
		if err := os.MkdirAll(filepath.Dir(config.BoltDB.FilePath), 0o700); err != nil {
			return nil, nil, fmt.Errorf("failed to create boltDB folder: %s", err)
		}
		client, err := GetBoltDBClient(config)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to boltDB: %s", err)
		}
		storage := NewBoltBookStorage(logger, &config.BoltDB, client)
		closer := func() {
			if cerr := storage.Close(); cerr != nil {
				logger.Error("failed to close boltDB", zap.Error(cerr))
			}
		}
		return storage, closer, nil

	case RedisBackend:
		client, err := GetRedisClient(config)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis server: %s", err)
		}
		closer := func() {
			if cerr := client.Close(); cerr != nil {
				logger.Error("failed to close redis client", zap.Error(cerr))
			}
		}
		return NewRedisBookStorage(logger, client, config.Redis.Key), closer, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", config.Storage.Backend)
}
