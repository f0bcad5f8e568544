package courses

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/career-analyzer/internal/types"
)

// DefaultCacheTTL controls how long recommendations stay cached.
const DefaultCacheTTL = 30 * time.Minute

// ResourceCache stores enriched recommendations by key.
type ResourceCache interface {
	Get(ctx context.Context, key string) ([]types.LearningResource, bool, error)
	Set(ctx context.Context, key string, resources []types.LearningResource) error
}

// NopCache never stores anything.
type NopCache struct{}

// Get implements ResourceCache.
func (NopCache) Get(context.Context, string) ([]types.LearningResource, bool, error) {
	return nil, false, nil
}

// Set implements ResourceCache.
func (NopCache) Set(context.Context, string, []types.LearningResource) error {
	return nil
}

// RedisCache keeps recommendations in Redis with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache wraps an existing client. A non-positive ttl uses DefaultCacheTTL.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// DialRedis parses a redis:// URL, connects and pings the server.
func DialRedis(ctx context.Context, redisURL string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis unreachable at %s: %w", opts.Addr, err)
	}
	return NewRedisCache(client, ttl), nil
}

// Get implements ResourceCache. A missing key is not an error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]types.LearningResource, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var resources []types.LearningResource
	if err := json.Unmarshal(data, &resources); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	return resources, true, nil
}

// Set implements ResourceCache.
func (c *RedisCache) Set(ctx context.Context, key string, resources []types.LearningResource) error {
	data, err := json.Marshal(resources)
	if err != nil {
		return fmt.Errorf("failed to encode resources: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// CacheKey builds a deterministic key from a session id and the search terms.
// Terms are compared case-insensitively.
func CacheKey(sessionID string, terms []string) string {
	normalized := make([]string, len(terms))
	for i, term := range terms {
		normalized[i] = strings.ToLower(term)
	}
	hash := sha256.Sum256([]byte(strings.Join(normalized, "|")))
	if sessionID == "" {
		sessionID = "global"
	}
	return fmt.Sprintf("courses:%s:%x", sessionID, hash[:12])
}
