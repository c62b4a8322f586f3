package repository

import (
	"context"
	"time"
)

// CacheStore abstracts the short-TTL cache in front of leaderboard
// computation. Implementations: Redis (production) or in-memory
// (local dev / single instance).
type CacheStore interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Get returns nil with no error on a cache miss.
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
