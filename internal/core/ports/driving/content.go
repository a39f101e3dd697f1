package driving

import (
	"context"

	"github.com/folio-labs/folio-core/internal/core/domain"
)

// ContentService is the in-memory content store consumed by editing panels.
//
// Mutations never return Go errors: invalid targets are dropped and reported
// through domain.MutationResult. Reads are safe before the first load has
// finished and return the default document.
type ContentService interface {
	// Document returns a copy of the current document
	Document() domain.ContentDocument

	// Ready reports whether the initial load cascade has completed
	Ready() bool

	// Status returns store, persistence and history counters
	Status() domain.ContentStatus

	// Load runs the load cascade and installs the winning document.
	// It fails only when ctx ends first; nothing is installed then.
	Load(ctx context.Context) (domain.LoadResult, error)

	// Reload drains pending writes, clears the cache and re-runs the cascade.
	// A canceled reload keeps the current document.
	Reload(ctx context.Context) (domain.LoadResult, error)

	// Apply runs an explicit operation
	Apply(ctx context.Context, op domain.Operation) domain.MutationResult

	// SetField replaces a field, inferring its section
	SetField(ctx context.Context, field string, value any) domain.MutationResult

	// SetNestedField writes key or first.second under an object field
	SetNestedField(ctx context.Context, field, subPath string, value any) domain.MutationResult

	// SetArrayItem shallow-merges partial into the element at index
	SetArrayItem(ctx context.Context, field string, index int, partial any, hints ...domain.Section) domain.MutationResult

	// AppendArrayItem appends an item, creating the array if absent
	AppendArrayItem(ctx context.Context, field string, item any, hints ...domain.Section) domain.MutationResult

	// RemoveArrayItem removes the element at index
	RemoveArrayItem(ctx context.Context, field string, index int, hints ...domain.Section) domain.MutationResult

	// Save writes the whole document to the cache and the automation hook.
	// Returns false only when the cache write fails.
	Save(ctx context.Context) bool

	// LoadSavedChanges replaces the document with the cached copy, if any
	LoadSavedChanges(ctx context.Context) bool

	// ResetToDefault installs the default document and clears the cache
	ResetToDefault(ctx context.Context)

	// CleanImages blanks hot-linked social network image URLs
	CleanImages(ctx context.Context) []domain.MutationResult

	// Search finds string values containing query
	Search(query string) []domain.SearchMatch

	// History lists change-log entries, newest first, filtered by action substring
	History(filter string) []*domain.ChangeLogEntry

	// Record appends a panel-originated entry (uploads and similar)
	Record(action domain.ChangeAction, details string) *domain.ChangeLogEntry

	// Revert restores the document as it was before the given entry
	Revert(ctx context.Context, id string) (*domain.ChangeLogEntry, error)

	// Close drains pending writes and stops background work
	Close()
}
