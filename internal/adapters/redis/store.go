// Package redis provides a Redis-backed TokenStore for instances that
// must survive process restarts.
package redis

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/espalier/pkg/domain"
)

// Store implements ports.TokenStore using Redis. Tokens are plain string
// values; instance IDs are additionally tracked in a ZSET index so List
// does not need a keyspace scan.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored tokens. Zero means no
// expiration.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for stored tokens.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "espalier:instance:",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(instanceID string) string {
	return s.prefix + instanceID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// indexScore is the ZSET score for an entry: its expiry time, or a fixed
// far-future timestamp when tokens never expire, so lazy pruning removes
// nothing.
func (s *Store) indexScore() float64 {
	if s.ttl == 0 {
		return 4102444800 // 2100-01-01
	}
	return float64(time.Now().Add(s.ttl).Unix())
}

// Save persists the token and registers the instance ID in the index.
func (s *Store) Save(ctx context.Context, instanceID, token string) error {
	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(instanceID), token, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  s.indexScore(),
		Member: instanceID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save token to redis: %w", err)
	}
	return nil
}

// Load retrieves the token for an instance ID.
func (s *Store) Load(ctx context.Context, instanceID string) (string, error) {
	token, err := s.client.Get(ctx, s.key(instanceID)).Result()
	if err != nil {
		if err == backend.Nil {
			return "", domain.ErrInstanceNotFound
		}
		return "", fmt.Errorf("failed to load token from redis: %w", err)
	}
	return token, nil
}

// Delete removes the token and its index entry.
func (s *Store) Delete(ctx context.Context, instanceID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(instanceID))
	pipe.ZRem(ctx, s.indexKey(), instanceID)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns the known instance IDs, lazily pruning index entries whose
// tokens have expired.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired instances: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}
	return ids, nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
