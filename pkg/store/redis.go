package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces graph documents in a shared Redis instance.
const keyPrefix = "nodedoc:doc:"

// RedisStore keeps documents in a Redis keyspace. Documents do not
// expire; Redis here is a shared store, not a cache.
type RedisStore struct {
	client *redis.Client
}

// RedisConfig configures a RedisStore.
type RedisConfig struct {
	Addr     string // host:port
	Password string
	DB       int
}

// NewRedisStore connects to Redis and verifies the connection with a
// ping before returning.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// Get retrieves a document.
func (s *RedisStore) Get(ctx context.Context, id string) (string, error) {
	doc, err := s.client.Get(ctx, keyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// Put stores a document.
func (s *RedisStore) Put(ctx context.Context, id, document string) error {
	if id == "" {
		return ErrInvalidID
	}
	if err := s.client.Set(ctx, keyPrefix+id, document, 0).Err(); err != nil {
		return fmt.Errorf("store document: %w", err)
	}
	return nil
}

// Delete removes a document.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, keyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all document IDs in sorted order.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var ids []string
	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), keyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan documents: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
