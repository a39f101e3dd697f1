package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/folio-labs/folio-core/internal/core/domain"
	"github.com/folio-labs/folio-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ContentCache = (*ContentCache)(nil)

// DefaultKey is the cache_key the document is stored under
const DefaultKey = "portfolio-content"

// ContentCache implements driven.ContentCache using PostgreSQL
type ContentCache struct {
	db  *DB
	key string
}

// NewContentCache creates a new ContentCache
func NewContentCache(db *DB, key string) *ContentCache {
	if key == "" {
		key = DefaultKey
	}
	return &ContentCache{db: db, key: key}
}

// Get retrieves the cached payload
func (c *ContentCache) Get(ctx context.Context) (string, error) {
	var value string
	err := c.db.QueryRowContext(ctx, `SELECT value FROM content_cache WHERE cache_key = $1`, c.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get cached content: %w", err)
	}
	return value, nil
}

// Set upserts the cached payload
func (c *ContentCache) Set(ctx context.Context, payload string) error {
	query := `
		INSERT INTO content_cache (cache_key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (cache_key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := c.db.ExecContext(ctx, query, c.key, payload); err != nil {
		return fmt.Errorf("failed to cache content: %w", err)
	}
	return nil
}

// Remove deletes the cached payload
func (c *ContentCache) Remove(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM content_cache WHERE cache_key = $1`, c.key); err != nil {
		return fmt.Errorf("failed to remove cached content: %w", err)
	}
	return nil
}

// Ping checks the database is reachable
func (c *ContentCache) Ping(ctx context.Context) error {
	return c.db.Ping(ctx)
}
