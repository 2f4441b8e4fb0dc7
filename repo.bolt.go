package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

var errBoltBucketMissing = errors.New("bucket does not exist")

var _ BookStorage = (*boltBookStorage)(nil)

type boltBookStorage struct {
	logger *zap.Logger
	client *bolt.DB
	config *BoltDBConfig
}

// GetBoltDBClient setup the database and the bucket then provides a ready to use client.
func GetBoltDBClient(config *Config) (*bolt.DB, error) {
	db, err := bolt.Open(config.BoltDB.FilePath, 0o600, &bolt.Options{Timeout: config.BoltDB.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open the database, %v", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, errB := tx.CreateBucketIfNotExists([]byte(config.BoltDB.BucketName)); errB != nil {
			return fmt.Errorf("failed to create %s bucket: %v", config.BoltDB.BucketName, errB)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set up bucket: %v", err)
	}
	return db, nil
}

// NewBoltBookStorage provides an instance of bolt-based book storage.
// The whole collection lives under a single key of the configured bucket.
func NewBoltBookStorage(logger *zap.Logger, boltConfig *BoltDBConfig, client *bolt.DB) *boltBookStorage {
	return &boltBookStorage{
		logger: logger,
		client: client,
		config: boltConfig,
	}
}

// Close shuts down the bolt-based book storage.
func (bs *boltBookStorage) Close() error {
	return bs.client.Close()
}

// Load retrieves the collection from boltdb store.
func (bs *boltBookStorage) Load(_ context.Context) []BookRecord {
	var books []BookRecord
	err := bs.client.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bs.config.BucketName))
		if bucket == nil {
			return errBoltBucketMissing
		}
		data := bucket.Get([]byte(bs.config.Key))
		if data == nil {
			books = []BookRecord{}
			return nil
		}
		var err error
		// data is only valid during the transaction, decoding copies it.
		books, err = DecodeBooks(data)
		return err
	})
	if err != nil {
		bs.logger.Warn("storage: failed to load books, starting empty",
			zap.String("storage.bucket", bs.config.BucketName),
			zap.Error(&StorageReadError{Backend: BoltBackend, Err: err}),
		)
		return []BookRecord{}
	}
	return books
}

// Save replaces the stored collection within a single transaction.
func (bs *boltBookStorage) Save(_ context.Context, books []BookRecord) error {
	data, err := EncodeBooks(books)
	if err != nil {
		return &StorageWriteError{Backend: BoltBackend, Err: err}
	}
	err = bs.client.Update(func(tx *bolt.Tx) error {
		bucket, errB := tx.CreateBucketIfNotExists([]byte(bs.config.BucketName))
		if errB != nil {
			return errB
		}
		return bucket.Put([]byte(bs.config.Key), data)
	})
	if err != nil {
		return &StorageWriteError{Backend: BoltBackend, Err: err}
	}
	return nil
}
