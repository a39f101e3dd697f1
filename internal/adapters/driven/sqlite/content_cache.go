// Package sqlite provides the default on-disk content cache.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/folio-labs/folio-core/internal/core/domain"
	"github.com/folio-labs/folio-core/internal/core/ports/driven"

	_ "modernc.org/sqlite"
)

// Verify interface compliance
var _ driven.ContentCache = (*ContentCache)(nil)

// DefaultKey is the row key the document is stored under
const DefaultKey = "portfolio-content"

const createTable = `
CREATE TABLE IF NOT EXISTS content_cache (
	cache_key  TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
)`

// ContentCache implements driven.ContentCache on a local SQLite file
type ContentCache struct {
	db  *sql.DB
	key string
}

// Open opens (creating if needed) the database at path and prepares the table.
// Use ":memory:" for a throwaway cache.
func Open(ctx context.Context, path, key string) (*ContentCache, error) {
	if key == "" {
		key = DefaultKey
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// single writer
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create content_cache table: %w", err)
	}

	return &ContentCache{db: db, key: key}, nil
}

// Get returns the cached payload
func (c *ContentCache) Get(ctx context.Context) (string, error) {
	var value string
	err := c.db.QueryRowContext(ctx, `SELECT value FROM content_cache WHERE cache_key = ?`, c.key).Scan(&value)
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
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO content_cache (cache_key, value) VALUES (?, ?)
		ON CONFLICT (cache_key) DO UPDATE SET
			value = excluded.value,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`,
		c.key, payload)
	if err != nil {
		return fmt.Errorf("failed to cache content: %w", err)
	}
	return nil
}

// Remove deletes the cached payload
func (c *ContentCache) Remove(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM content_cache WHERE cache_key = ?`, c.key); err != nil {
		return fmt.Errorf("failed to remove cached content: %w", err)
	}
	return nil
}

// Ping checks the database handle is usable
func (c *ContentCache) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close closes the database
func (c *ContentCache) Close() error {
	return c.db.Close()
}
