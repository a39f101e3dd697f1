package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/folio-labs/folio-core/internal/core/domain"
	"github.com/folio-labs/folio-core/internal/core/ports/driven"
)

// DefaultMaxCacheBytes mirrors the usual browser storage quota.
const DefaultMaxCacheBytes = 10 * 1024 * 1024

// PersistenceSink writes document snapshots to the cache and replicates
// individual operations to the remote content API.
//
// Persist never blocks: jobs go onto an unbounded FIFO drained by a single
// goroutine, so cache writes land in mutation order and the cache converges
// to the latest snapshot. Failures are logged and counted, never returned.
type PersistenceSink struct {
	cache      driven.ContentCache
	replicator driven.ContentReplicator
	publisher  driven.DocumentPublisher
	logger     *slog.Logger
	maxBytes   int

	mu        sync.Mutex
	queue     []persistJob
	closed    bool
	lastBytes int

	wake   chan struct{}
	stopCh chan struct{}
	doneCh chan struct{}
	once   sync.Once
}

// SinkConfig holds configuration for the persistence sink.
type SinkConfig struct {
	Cache         driven.ContentCache      // Optional: no cache writes when nil
	Replicator    driven.ContentReplicator // Optional: no remote replication when nil
	Publisher     driven.DocumentPublisher // Optional: bulk automation hook
	Logger        *slog.Logger
	MaxCacheBytes int // Largest payload written to the cache (default: 10MB)
}

type persistJob struct {
	doc  domain.ContentDocument
	ops  []domain.Operation
	done chan struct{}

	// saved receives the cache write result of a bulk save
	saved chan error
}

var errSinkClosed = errors.New("persistence sink closed")

// NewPersistenceSink creates a sink and starts its worker goroutine.
// Call Close to drain and stop it.
func NewPersistenceSink(cfg SinkConfig) *PersistenceSink {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	maxBytes := cfg.MaxCacheBytes
	if maxBytes == 0 {
		maxBytes = DefaultMaxCacheBytes
	}

	s := &PersistenceSink{
		cache:      cfg.Cache,
		replicator: cfg.Replicator,
		publisher:  cfg.Publisher,
		logger:     logger,
		maxBytes:   maxBytes,
		wake:       make(chan struct{}, 1),
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}

	go s.run()
	return s
}

// Persist queues a snapshot and the operations that produced it.
func (s *PersistenceSink) Persist(doc domain.ContentDocument, ops ...domain.Operation) {
	s.enqueue(persistJob{doc: doc, ops: ops})
}

// Flush waits until every job queued before the call has been processed.
func (s *PersistenceSink) Flush(ctx context.Context) error {
	done := make(chan struct{})
	if !s.enqueue(persistJob{done: done}) {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Save queues doc behind every pending write, waits for its cache write
// and publishes it to the automation hook. It returns false only when the
// cache write fails; publishing is best effort.
func (s *PersistenceSink) Save(ctx context.Context, doc domain.ContentDocument) bool {
	return s.awaitSave(ctx, doc, s.queueSave(doc))
}

// queueSave enqueues a bulk save. Callers that must order the save against
// their own mutations enqueue while holding their lock and wait afterwards.
func (s *PersistenceSink) queueSave(doc domain.ContentDocument) <-chan error {
	saved := make(chan error, 1)
	if !s.enqueue(persistJob{doc: doc, saved: saved}) {
		saved <- errSinkClosed
	}
	return saved
}

func (s *PersistenceSink) awaitSave(ctx context.Context, doc domain.ContentDocument, saved <-chan error) bool {
	var err error
	select {
	case err = <-saved:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err != nil {
		if isQuota(err) {
			s.logger.Error("content exceeds cache quota", "error", err)
		} else {
			s.logger.Error("failed to save content to cache", "error", err)
		}
		return false
	}

	if s.publisher != nil && s.publisher.Enabled() {
		if err := s.publisher.Publish(ctx, doc); err != nil {
			s.logger.Warn("failed to publish content", "error", err)
			persistOperationsTotal.WithLabelValues("publish", statusFailure).Inc()
		} else {
			persistOperationsTotal.WithLabelValues("publish", statusSuccess).Inc()
		}
	} else {
		s.logger.Debug("automation hook not configured, content saved locally only")
		persistOperationsTotal.WithLabelValues("publish", statusSkipped).Inc()
	}

	return true
}

// Read returns the cached payload as a document.
func (s *PersistenceSink) Read(ctx context.Context) (domain.ContentDocument, error) {
	if s.cache == nil {
		return nil, domain.ErrNotFound
	}
	payload, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	return domain.ParseDocument([]byte(payload))
}

// Clear removes the cached document.
func (s *PersistenceSink) Clear(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Remove(ctx); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	s.mu.Lock()
	s.lastBytes = 0
	s.mu.Unlock()
	cachePayloadBytes.Set(0)
	return nil
}

// Usage returns the size of the last cache payload and the quota
func (s *PersistenceSink) Usage() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastBytes, s.maxBytes
}

// Close drains queued jobs and stops the worker. Safe to call more than once.
func (s *PersistenceSink) Close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		close(s.stopCh)
		<-s.doneCh
	})
}

func (s *PersistenceSink) enqueue(job persistJob) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Warn("persistence sink closed, dropping write")
		return false
	}
	s.queue = append(s.queue, job)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return true
}

// run is the worker loop.
func (s *PersistenceSink) run() {
	defer close(s.doneCh)

	for {
		select {
		case <-s.wake:
			s.drain()
		case <-s.stopCh:
			s.drain()
			return
		}
	}
}

func (s *PersistenceSink) drain() {
	for {
		s.mu.Lock()
		batch := s.queue
		s.queue = nil
		s.mu.Unlock()

		if len(batch) == 0 {
			return
		}
		s.process(batch)
	}
}

// process handles one batch: the cache only needs the newest snapshot, but
// every operation is replicated in order. Flush markers and bulk saves are
// handled once everything queued before them is done.
func (s *PersistenceSink) process(batch []persistJob) {
	ctx := context.Background()

	start := 0
	for i, job := range batch {
		if job.done == nil && job.saved == nil {
			continue
		}
		s.processRun(ctx, batch[start:i])
		start = i + 1

		if job.done != nil {
			close(job.done)
			continue
		}
		var err error
		if s.cache != nil {
			err = s.writeCache(ctx, job.doc)
		}
		job.saved <- err
	}
	s.processRun(ctx, batch[start:])
}

func (s *PersistenceSink) processRun(ctx context.Context, jobs []persistJob) {
	var latest domain.ContentDocument
	for _, job := range jobs {
		if job.doc != nil {
			latest = job.doc
		}
	}
	if latest != nil && s.cache != nil {
		if err := s.writeCache(ctx, latest); err != nil {
			s.logger.Warn("failed to write content cache", "error", err)
		}
	}

	if s.replicator == nil {
		return
	}
	for _, job := range jobs {
		for _, op := range job.ops {
			if err := s.replicator.Replicate(ctx, op); err != nil {
				s.logger.Warn("failed to replicate content change",
					"kind", op.Kind,
					"section", op.Section,
					"field", op.Field,
					"error", err,
				)
				persistOperationsTotal.WithLabelValues("remote", statusFailure).Inc()
				continue
			}
			persistOperationsTotal.WithLabelValues("remote", statusSuccess).Inc()
		}
	}
}

func (s *PersistenceSink) writeCache(ctx context.Context, doc domain.ContentDocument) error {
	data, err := doc.Marshal()
	if err != nil {
		persistOperationsTotal.WithLabelValues("cache", statusFailure).Inc()
		return err
	}
	if len(data) > s.maxBytes {
		persistOperationsTotal.WithLabelValues("cache", statusFailure).Inc()
		return fmt.Errorf("%w: payload is %d bytes, limit %d", domain.ErrQuotaExceeded, len(data), s.maxBytes)
	}
	if err := s.cache.Set(ctx, string(data)); err != nil {
		persistOperationsTotal.WithLabelValues("cache", statusFailure).Inc()
		return fmt.Errorf("cache write: %w", err)
	}

	s.mu.Lock()
	s.lastBytes = len(data)
	s.mu.Unlock()
	cachePayloadBytes.Set(float64(len(data)))
	persistOperationsTotal.WithLabelValues("cache", statusSuccess).Inc()
	return nil
}

// isQuota reports whether err came from the cache size limit
func isQuota(err error) bool {
	return errors.Is(err, domain.ErrQuotaExceeded)
}
