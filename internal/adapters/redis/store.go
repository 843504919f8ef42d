// Package redis provides a Redis-backed ports.Storage for deployments
// where multiple bot instances share persisted conversation and user
// state.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cascadebot/cascade/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.Storage using Redis. Documents are stored as
// JSON values; an index zset tracks committed keys for List.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the Store.
type Option func(*Store)

// WithTTL sets the expiration for state documents.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for state documents.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "cascade:state:",
		ttl:    0, // no expiration by default
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(scopeKey string) string {
	return s.prefix + scopeKey
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Write commits the document to Redis.
func (s *Store) Write(ctx context.Context, key string, document map[string]any) error {
	data, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("failed to marshal state document: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(key), data, s.ttl)

	// Index score = expiry time; far future when documents never expire.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: key,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Read retrieves the committed document.
func (s *Store) Read(ctx context.Context, key string) (map[string]any, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrScopeNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var document map[string]any
	if err := json.Unmarshal([]byte(val), &document); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state document: %w", err)
	}
	return document, nil
}

// Delete removes the document and its index entry.
func (s *Store) Delete(ctx context.Context, key string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(key))
	pipe.ZRem(ctx, s.indexKey(), key)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns committed scope keys, lazily pruning expired index
// entries first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired scopes: %w", err)
	}

	keys, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list scopes: %w", err)
	}
	return keys, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
