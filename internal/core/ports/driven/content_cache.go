package driven

import "context"

// ContentCache is the persistent key/value cache holding the last known
// document under a single fixed key (SQLite, Redis or PostgreSQL).
type ContentCache interface {
	// Get returns the cached payload or domain.ErrNotFound when empty
	Get(ctx context.Context) (string, error)

	// Set replaces the cached payload
	Set(ctx context.Context, payload string) error

	// Remove deletes the cached payload. Removing a missing entry is not an error.
	Remove(ctx context.Context) error

	// Ping checks the backing store is reachable
	Ping(ctx context.Context) error
}
