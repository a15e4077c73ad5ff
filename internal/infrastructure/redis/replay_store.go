package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vzabara/nuvei-gateway/internal/middleware"
)

// ReplayStore caches HTTP responses for idempotency replay with a TTL.
type ReplayStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReplayStore creates a ReplayStore. Entries expire after ttl.
func NewReplayStore(client *redis.Client, ttl time.Duration) *ReplayStore {
	return &ReplayStore{client: client, ttl: ttl}
}

// Get returns the cached entry for key, or (nil, nil) when absent.
func (s *ReplayStore) Get(ctx context.Context, key string) (*middleware.ReplayEntry, error) {
	data, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get replay entry: %w", err)
	}

	var entry middleware.ReplayEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("decode replay entry: %w", err)
	}
	return &entry, nil
}

// Set stores entry under key with the configured TTL.
func (s *ReplayStore) Set(ctx context.Context, key string, entry *middleware.ReplayEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode replay entry: %w", err)
	}
	if err := s.client.Set(ctx, s.redisKey(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("set replay entry: %w", err)
	}
	return nil
}

func (s *ReplayStore) redisKey(key string) string {
	return "idempotency:" + key
}
