package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fortuna/courtside/internal/pbp"
)

// DefaultTTL keeps cached bundles around long enough for post-match
// traffic while letting corrections through within the hour.
const DefaultTTL = time.Hour

// RedisCache fronts the store for hot match reads.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis cache connection.
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    DefaultTTL,
	}, nil
}

// Close closes the Redis connection.
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Client returns the underlying Redis client.
func (rc *RedisCache) Client() *redis.Client {
	return rc.client
}

// HealthCheck pings Redis to verify the connection.
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

func bundleKey(matchID string) string {
	return "courtside:match:" + matchID
}

// SetBundle caches a replayed match bundle.
func (rc *RedisCache) SetBundle(ctx context.Context, bundle *pbp.Bundle) error {
	data, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("marshal bundle: %w", err)
	}
	return rc.client.Set(ctx, bundleKey(bundle.MatchID), data, rc.ttl).Err()
}

// GetBundle returns a cached bundle, or (nil, nil) on a miss.
func (rc *RedisCache) GetBundle(ctx context.Context, matchID string) (*pbp.Bundle, error) {
	data, err := rc.client.Get(ctx, bundleKey(matchID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var bundle pbp.Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("decode cached bundle: %w", err)
	}
	return &bundle, nil
}

// InvalidateBundle drops a cached match, e.g. after reprocessing.
func (rc *RedisCache) InvalidateBundle(ctx context.Context, matchID string) error {
	return rc.client.Del(ctx, bundleKey(matchID)).Err()
}
