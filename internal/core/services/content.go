package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/folio-labs/folio-core/internal/core/domain"
	"github.com/folio-labs/folio-core/internal/core/ports/driving"
)

// Ensure contentService implements ContentService
var _ driving.ContentService = (*contentService)(nil)

// contentService implements the ContentService interface.
//
// All document transitions happen under mu, including the persistence
// enqueue and the change-log append, so concurrent mutations are strictly
// ordered and the cache converges to the last one.
type contentService struct {
	loader  *Loader
	sink    *PersistenceSink
	tracker *ChangeTracker
	logger  *slog.Logger
	now     func() time.Time

	mu            sync.RWMutex
	doc           domain.ContentDocument
	ready         bool
	source        string
	loadedAt      *time.Time
	revision      int64
	savedRevision int64
	lastSavedAt   *time.Time
}

// ContentServiceConfig holds the collaborators of the content store.
type ContentServiceConfig struct {
	Loader  *Loader
	Sink    *PersistenceSink
	Tracker *ChangeTracker
	Logger  *slog.Logger

	// Initial is the document served before the first load (default: domain.DefaultDocument()).
	Initial domain.ContentDocument
}

// NewContentService creates a new ContentService
func NewContentService(cfg ContentServiceConfig) driving.ContentService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	loader := cfg.Loader
	if loader == nil {
		loader = NewLoader(LoaderConfig{Logger: logger})
	}

	sink := cfg.Sink
	if sink == nil {
		sink = NewPersistenceSink(SinkConfig{Logger: logger})
	}

	tracker := cfg.Tracker
	if tracker == nil {
		tracker = NewChangeTracker(domain.DefaultChangeLogCapacity)
	}

	initial := cfg.Initial
	if initial == nil {
		initial = domain.DefaultDocument()
	} else {
		initial = initial.Clone().Normalize()
	}

	return &contentService{
		loader:  loader,
		sink:    sink,
		tracker: tracker,
		logger:  logger,
		now:     time.Now,
		doc:     initial,
	}
}

// Document returns a copy of the current document
func (s *contentService) Document() domain.ContentDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Ready reports whether the initial load has completed
func (s *contentService) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Status returns store, persistence and history counters
func (s *contentService) Status() domain.ContentStatus {
	used, quota := s.sink.Usage()

	s.mu.RLock()
	defer s.mu.RUnlock()

	status := domain.ContentStatus{
		Ready:         s.ready,
		Source:        s.source,
		LoadedAt:      s.loadedAt,
		Revision:      s.revision,
		SavedRevision: s.savedRevision,
		Dirty:         s.revision != s.savedRevision,
		LastSavedAt:   s.lastSavedAt,
		CacheBytes:    used,
		CacheQuota:    quota,
		HistoryLength: s.tracker.Len(),
	}
	if quota > 0 {
		status.CacheUsage = float64(used) / float64(quota) * 100
	}
	return status
}

// Load runs the load cascade and installs the winning document. When ctx
// ends before the cascade finishes nothing is installed.
func (s *contentService) Load(ctx context.Context) (domain.LoadResult, error) {
	result, err := s.loader.Load(ctx)
	if err != nil {
		s.logger.Warn("content load abandoned", "error", err)
		return result, err
	}
	s.install(result)
	return result, nil
}

// Reload drains pending writes, clears the cache so it cannot shadow the
// remote tier, then re-runs the cascade. A canceled reload keeps the current
// document and writes it back to the cache.
func (s *contentService) Reload(ctx context.Context) (domain.LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.LoadResult{}, fmt.Errorf("reload canceled: %w", err)
	}

	s.lockDrained(ctx)
	before := s.doc
	if err := s.sink.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear cache before reload", "error", err)
	}
	s.mu.Unlock()

	result, err := s.loader.Load(ctx)
	if err != nil {
		s.mu.Lock()
		s.sink.Persist(s.doc)
		s.mu.Unlock()
		s.logger.Warn("content reload abandoned", "error", err)
		return result, err
	}

	s.install(result)
	s.tracker.Record(domain.ActionReload, fmt.Sprintf("Reloaded content from %s", result.Source), before)
	return result, nil
}

// lockDrained waits for pending writes and returns with mu held. The long
// drain runs unlocked; only writes queued meanwhile are drained under mu.
func (s *contentService) lockDrained(ctx context.Context) {
	s.mu.RLock()
	revision := s.revision
	s.mu.RUnlock()

	if err := s.sink.Flush(ctx); err != nil {
		s.logger.Warn("failed to drain pending writes", "error", err)
	}

	s.mu.Lock()
	if s.revision != revision {
		if err := s.sink.Flush(ctx); err != nil {
			s.logger.Warn("failed to drain pending writes", "error", err)
		}
	}
}

func (s *contentService) install(result domain.LoadResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loadedAt := result.LoadedAt
	s.doc = result.Document.Normalize()
	s.ready = true
	s.source = result.Source
	s.loadedAt = &loadedAt
	s.revision++
	s.savedRevision = s.revision
}

// Apply runs an explicit operation
func (s *contentService) Apply(ctx context.Context, op domain.Operation) domain.MutationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(op)
}

func (s *contentService) applyLocked(op domain.Operation) domain.MutationResult {
	before := s.doc
	next, section, err := domain.Apply(before, op)
	result := domain.MutationResult{Kind: op.Kind, Section: section, Field: op.Field}
	if err != nil {
		s.logger.Warn("content mutation dropped",
			"kind", op.Kind,
			"section", section,
			"field", op.Field,
			"error", err,
		)
		mutationsTotal.WithLabelValues(string(op.Kind), statusFailure).Inc()
		result.Reason = err.Error()
		return result
	}

	s.doc = next
	s.revision++

	replicated := op
	replicated.Section = section
	replicated.Value = domain.CloneValue(op.Value)
	replicated.Hints = nil
	s.sink.Persist(next, replicated)
	s.tracker.Record(op.Kind.Action(), op.Describe(section), before)

	mutationsTotal.WithLabelValues(string(op.Kind), statusSuccess).Inc()
	result.Applied = true
	return result
}

// SetField replaces a field, inferring its section
func (s *contentService) SetField(ctx context.Context, field string, value any) domain.MutationResult {
	return s.Apply(ctx, domain.SetField(field, value))
}

// SetNestedField writes key or first.second under an object field
func (s *contentService) SetNestedField(ctx context.Context, field, subPath string, value any) domain.MutationResult {
	return s.Apply(ctx, domain.SetNestedField(field, subPath, value))
}

// SetArrayItem shallow-merges partial into the element at index
func (s *contentService) SetArrayItem(ctx context.Context, field string, index int, partial any, hints ...domain.Section) domain.MutationResult {
	return s.Apply(ctx, domain.SetArrayItem(field, index, partial, hints...))
}

// AppendArrayItem appends an item, creating the array if absent
func (s *contentService) AppendArrayItem(ctx context.Context, field string, item any, hints ...domain.Section) domain.MutationResult {
	return s.Apply(ctx, domain.AppendArrayItem(field, item, hints...))
}

// RemoveArrayItem removes the element at index
func (s *contentService) RemoveArrayItem(ctx context.Context, field string, index int, hints ...domain.Section) domain.MutationResult {
	return s.Apply(ctx, domain.RemoveArrayItem(field, index, hints...))
}

// Save writes the whole document to the cache and the automation hook. The
// save is queued behind earlier mutations, so a later mutation always lands
// in the cache after it.
func (s *contentService) Save(ctx context.Context) bool {
	s.mu.RLock()
	doc := s.doc
	revision := s.revision
	saved := s.sink.queueSave(doc)
	s.mu.RUnlock()

	if !s.sink.awaitSave(ctx, doc, saved) {
		s.tracker.Record(domain.ActionError, "Failed to save content", doc)
		return false
	}

	now := s.now()
	s.mu.Lock()
	if revision > s.savedRevision {
		s.savedRevision = revision
	}
	s.lastSavedAt = &now
	s.mu.Unlock()

	s.tracker.Record(domain.ActionSave, "Saved all changes", doc)
	return true
}

// LoadSavedChanges replaces the document with the cached copy
func (s *contentService) LoadSavedChanges(ctx context.Context) bool {
	s.lockDrained(ctx)
	defer s.mu.Unlock()

	doc, err := s.sink.Read(ctx)
	if err != nil {
		s.logger.Warn("no saved changes to restore", "error", err)
		return false
	}

	before := s.doc
	s.doc = doc
	s.revision++
	s.savedRevision = s.revision
	s.tracker.Record(domain.ActionReload, "Restored saved changes", before)
	return true
}

// ResetToDefault installs the default document and clears the cache
func (s *contentService) ResetToDefault(ctx context.Context) {
	s.lockDrained(ctx)
	defer s.mu.Unlock()

	before := s.doc
	if err := s.sink.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear cache on reset", "error", err)
	}

	s.doc = domain.DefaultDocument()
	s.revision++
	s.savedRevision = s.revision
	s.tracker.Record(domain.ActionReset, "Reset content to defaults", before)
}

// CleanImages blanks hot-linked social network image URLs
func (s *contentService) CleanImages(ctx context.Context) []domain.MutationResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	ops := domain.ExternalImageOperations(s.doc)
	results := make([]domain.MutationResult, 0, len(ops))
	for _, op := range ops {
		results = append(results, s.applyLocked(op))
	}
	if len(ops) > 0 {
		s.logger.Info("removed external images", "count", len(ops))
	}
	return results
}

// Search finds string values containing query
func (s *contentService) Search(query string) []domain.SearchMatch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Search(s.doc, query)
}

// History lists change-log entries, newest first
func (s *contentService) History(filter string) []*domain.ChangeLogEntry {
	return s.tracker.Entries(filter)
}

// Record appends a panel-originated entry
func (s *contentService) Record(action domain.ChangeAction, details string) *domain.ChangeLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tracker.Record(action, details, s.doc)
}

// Revert restores the document as it was before the given entry. The
// restored document is persisted and every changed field is replicated.
func (s *contentService) Revert(ctx context.Context, id string) (*domain.ChangeLogEntry, error) {
	entry, ok := s.tracker.Get(id)
	if !ok {
		return nil, fmt.Errorf("change %s: %w", id, domain.ErrNotFound)
	}
	if !entry.Revertible() {
		return nil, fmt.Errorf("change %s cannot be reverted: %w", id, domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.doc
	restored := entry.Before
	s.doc = restored
	s.revision++

	s.sink.Persist(restored, domain.FieldChanges(current, restored)...)
	rec := s.tracker.Record(domain.ActionRevert,
		fmt.Sprintf("Reverted %s: %s", entry.Action, entry.Details), current)

	s.logger.Info("content reverted", "entry", id, "action", entry.Action)
	return rec, nil
}

// Close drains pending writes and stops background work
func (s *contentService) Close() {
	s.sink.Close()
}
