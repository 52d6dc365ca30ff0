package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/joefancyai/localizedKWvolume/internal/models"
)

// locationCacheKey is the single key holding the serialized location list
const locationCacheKey = "locations:cache"

// RedisStore implements Store using Redis, for deployments where several
// operator sessions share one location cache. A single SET is the atomic
// replace; freshness is decided by the policy, so no TTL is set here.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed location cache store
func NewRedisStore(redisURL string) (Store, error) {
	return newRedisStore(redisURL)
}

// newRedisStore creates the concrete implementation
func newRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// Read loads the cached location list from Redis
func (r *RedisStore) Read(ctx context.Context) (*models.LocationCache, error) {
	data, err := r.client.Get(ctx, locationCacheKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, models.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var rec models.LocationCache
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached locations: %w", err)
	}

	if len(rec.Locations) == 0 {
		return nil, models.ErrCacheMiss
	}

	return &rec, nil
}

// Write replaces the cached location list in Redis
func (r *RedisStore) Write(ctx context.Context, rec *models.LocationCache) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal locations: %w", err)
	}

	if err := r.client.Set(ctx, locationCacheKey, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

// Close closes the Redis connection
func (r *RedisStore) Close() error {
	return r.client.Close()
}
