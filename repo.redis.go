package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultBooksKey is the redis key holding the collection.
const DefaultBooksKey string = "books"

type redisBookStorage struct {
	logger *zap.Logger
	client *redis.Client
	key    string
}

// NewRedisBookStorage provides an instance of redis-based book storage.
func NewRedisBookStorage(logger *zap.Logger, client *redis.Client, key string) BookStorage {
	if key == "" {
		key = DefaultBooksKey
	}
	return &redisBookStorage{
		logger: logger,
		client: client,
		key:    key,
	}
}

// GetRedisClient provides a ready to use redis client.
func GetRedisClient(config *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", config.Redis.Host, config.Redis.Port),
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
		PoolSize:     config.Redis.PoolSize,
		PoolTimeout:  config.Redis.PoolTimeout,
		Password:     config.Redis.Password,
		Username:     config.Redis.Username,
		DB:           config.Redis.DatabaseIndex,
	})

	// test connection.
	if pong, err := client.Ping(context.Background()).Result(); pong != "PONG" || err != nil {
		return client, fmt.Errorf("test connection failed: %v", err)
	}
	return client, nil
}

// Load retrieves the collection stored under the books key.
func (rs *redisBookStorage) Load(ctx context.Context) []BookRecord {
	data, err := rs.client.Get(ctx, rs.key).Bytes()
	if errors.Is(err, redis.Nil) {
		rs.logger.Info("storage: no books key yet, starting empty", zap.String("storage.key", rs.key))
		return []BookRecord{}
	}
	if err == nil {
		var books []BookRecord
		if books, err = DecodeBooks(data); err == nil {
			return books
		}
	}
	rs.logger.Warn("storage: failed to load books, starting empty",
		zap.String("storage.key", rs.key),
		zap.Error(&StorageReadError{Backend: RedisBackend, Err: err}),
	)
	return []BookRecord{}
}

// Save overwrites the books key with the whole collection.
func (rs *redisBookStorage) Save(ctx context.Context, books []BookRecord) error {
	data, err := EncodeBooks(books)
	if err != nil {
		return &StorageWriteError{Backend: RedisBackend, Err: err}
	}
	if err = rs.client.Set(ctx, rs.key, data, 0).Err(); err != nil {
		return &StorageWriteError{Backend: RedisBackend, Err: err}
	}
	return nil
}
