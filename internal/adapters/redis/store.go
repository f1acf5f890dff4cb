package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/shrdlite/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.WorldStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored worlds.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for worlds.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "shrdlite:world:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(worldID string) string {
	return s.prefix + worldID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the world to Redis.
func (s *Store) Save(ctx context.Context, worldID string, w *domain.WorldState) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("failed to marshal world: %w", err)
	}

	pipe := s.client.Pipeline()

	// 1. Save JSON with TTL (0 = no expiration).
	pipe.Set(ctx, s.key(worldID), data, s.ttl)

	// 2. Add to Index (ZSET). Score = Now + TTL; infinite TTLs get a
	// far-future score so lazy cleanup never removes them.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}

	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: worldID,
	})

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}

	return nil
}

// Load retrieves the world from Redis.
func (s *Store) Load(ctx context.Context, worldID string) (*domain.WorldState, error) {
	val, err := s.client.Get(ctx, s.key(worldID)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrWorldNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var w domain.WorldState
	if err := json.Unmarshal([]byte(val), &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal world: %w", err)
	}

	return &w, nil
}

// Delete removes the world.
func (s *Store) Delete(ctx context.Context, worldID string) error {
	pipe := s.client.Pipeline()

	pipe.Del(ctx, s.key(worldID))
	pipe.ZRem(ctx, s.indexKey(), worldID)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns stored world IDs with ZSET lazy cleanup of expired entries.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())

	// ZREMRANGEBYSCORE key -inf now)
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired worlds: %w", err)
	}

	worlds, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list worlds: %w", err)
	}

	return worlds, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
