// In file: internal/cache/cache.go

// Package cache is the shared, cross-process recommendation cache backed by
// Redis. The in-process LRU inside the engine serves one process; this layer
// lets a fleet of engine instances share finished recommendations, keyed by a
// version-aware hash so logic changes invalidate stale entries automatically.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dileep-u-k/pattern-engine/internal/pattern"
	"github.com/dileep-u-k/pattern-engine/internal/version"
)

const (
	// recommendationCachePrefix namespaces engine entries in a shared Redis.
	recommendationCachePrefix = "recocache"
	// recommendationCacheTTL bounds staleness for cached recommendations.
	recommendationCacheTTL = 24 * time.Hour
)

// Store is the Redis-backed recommendation cache.
type Store struct {
	redisClient *redis.Client
}

// New connects to Redis at addr and verifies the connection with a ping.
func New(addr string) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("could not connect to Redis: %w", err)
	}
	return &Store{redisClient: rdb}, nil
}

// key builds the versioned cache key for one requirement text. The text is
// normalized the same way the engine's own cache normalizes it, so the two
// layers agree on identity.
func (s *Store) key(text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	return version.GenerateVersionedCacheKey(recommendationCachePrefix, normalized)
}

// Check looks for a finished recommendation in Redis. Any Redis error is
// treated as a cache miss: the caller can always recompute.
func (s *Store) Check(ctx context.Context, text string) (pattern.Recommendation, bool) {
	val, err := s.redisClient.Get(ctx, s.key(text)).Bytes()
	if err == redis.Nil {
		return pattern.Recommendation{}, false
	} else if err != nil {
		log.Printf("Redis GET error for recommendation cache: %v", err)
		return pattern.Recommendation{}, false
	}

	var rec pattern.Recommendation
	if err := json.Unmarshal(val, &rec); err != nil {
		log.Printf("Error unmarshalling cached recommendation: %v", err)
		return pattern.Recommendation{}, false
	}
	return rec, true
}

// Set stores a finished recommendation. Failures are logged, never returned:
// the cache is an optimization, not a dependency.
func (s *Store) Set(ctx context.Context, text string, rec pattern.Recommendation) {
	payload, err := json.Marshal(rec)
	if err != nil {
		log.Printf("Error marshalling recommendation for cache: %v", err)
		return
	}
	if err := s.redisClient.Set(ctx, s.key(text), payload, recommendationCacheTTL).Err(); err != nil {
		log.Printf("Redis SET error for recommendation cache: %v", err)
	}
}

// Client exposes the underlying Redis client for components that share the
// connection, like the stats profiler.
func (s *Store) Client() *redis.Client {
	return s.redisClient
}
