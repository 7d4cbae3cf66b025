package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/fhuszti/rated-posters-ms-go/internal/logger"
	"github.com/fhuszti/rated-posters-ms-go/internal/port"
	"github.com/redis/go-redis/v9"
)

// Cache keeps downloaded source posters in Redis, keyed by URL digest.
type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.SourceCache
var _ port.SourceCache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

// Ping checks the connection, used at boot.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) GetSource(ctx context.Context, url string) ([]byte, error) {
	logger.Debugf(ctx, "getting cached source poster %s...", url)

	val, err := c.client.Get(ctx, getCacheKey(url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) SetSource(ctx context.Context, url string, data []byte, ttl time.Duration) {
	if len(data) == 0 || ttl <= 0 {
		return
	}
	logger.Debugf(ctx, "caching source poster %s for %s...", url, ttl)

	if err := c.client.Set(ctx, getCacheKey(url), data, ttl).Err(); err != nil {
		logger.Warnf(ctx, "⚠️  failed to cache source poster %s: %v", url, err)
	}
}

func getCacheKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "poster:source:" + hex.EncodeToString(sum[:])
}
