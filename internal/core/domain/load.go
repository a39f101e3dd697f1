package domain

import "time"

// Tier names for the load cascade, highest priority first.
const (
	TierRemote   = "remote"
	TierCache    = "cache"
	TierBundle   = "bundle"
	TierDefaults = "defaults"
)

// TierAttempt records one step of the load cascade.
type TierAttempt struct {
	Tier  string `json:"tier"`
	Error string `json:"error,omitempty"`
}

// LoadResult describes a completed load cascade.
type LoadResult struct {
	Source   string          `json:"source"`
	Attempts []TierAttempt   `json:"attempts"`
	LoadedAt time.Time       `json:"loaded_at"`
	Document ContentDocument `json:"-"`
}

// ContentStatus is a snapshot of store state for status endpoints.
type ContentStatus struct {
	Ready         bool       `json:"ready"`
	Source        string     `json:"source,omitempty"`
	LoadedAt      *time.Time `json:"loaded_at,omitempty"`
	Revision      int64      `json:"revision"`
	SavedRevision int64      `json:"saved_revision"`
	Dirty         bool       `json:"dirty"`
	LastSavedAt   *time.Time `json:"last_saved_at,omitempty"`
	CacheBytes    int        `json:"cache_bytes"`
	CacheQuota    int        `json:"cache_quota"`
	CacheUsage    float64    `json:"cache_usage_percent"`
	HistoryLength int        `json:"history_length"`
}
