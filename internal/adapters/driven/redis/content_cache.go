package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/folio-labs/folio-core/internal/core/domain"
	"github.com/folio-labs/folio-core/internal/core/ports/driven"
	"github.com/redis/go-redis/v9"
)

// Verify interface compliance
var _ driven.ContentCache = (*ContentCache)(nil)

// DefaultKey is the key the document is cached under
const DefaultKey = "portfolio-content"

// ContentCache implements driven.ContentCache using a single Redis string key.
// Entries never expire; the cache is only cleared by Remove.
type ContentCache struct {
	client *redis.Client
	key    string
}

// NewContentCache creates a new Redis-backed ContentCache.
// An empty key falls back to DefaultKey.
func NewContentCache(client *redis.Client, key string) *ContentCache {
	if key == "" {
		key = DefaultKey
	}
	return &ContentCache{client: client, key: key}
}

// Connect parses a redis:// URL and returns a client that has answered PING.
func Connect(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Get returns the cached payload
func (c *ContentCache) Get(ctx context.Context) (string, error) {
	payload, err := c.client.Get(ctx, c.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get cached content: %w", err)
	}
	return payload, nil
}

// Set replaces the cached payload
func (c *ContentCache) Set(ctx context.Context, payload string) error {
	if err := c.client.Set(ctx, c.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to cache content: %w", err)
	}
	return nil
}

// Remove deletes the cached payload
func (c *ContentCache) Remove(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to remove cached content: %w", err)
	}
	return nil
}

// Ping checks connectivity
func (c *ContentCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
