package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/folio-labs/folio-core/internal/core/domain"
	"github.com/folio-labs/folio-core/internal/core/ports/driven"
)

// Loader resolves the content document through the tier cascade:
// remote content API, persistent cache, bundled document, defaults.
// The first tier that yields a valid document wins.
type Loader struct {
	remote driven.ContentSource
	cache  driven.ContentCache
	bundle driven.ContentSource
	logger *slog.Logger
	now    func() time.Time

	group singleflight.Group
}

// LoaderConfig holds the cascade tiers. Nil tiers are skipped.
type LoaderConfig struct {
	Remote driven.ContentSource
	Cache  driven.ContentCache
	Bundle driven.ContentSource
	Logger *slog.Logger
}

// NewLoader creates a new Loader
func NewLoader(cfg LoaderConfig) *Loader {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Loader{
		remote: cfg.Remote,
		cache:  cfg.Cache,
		bundle: cfg.Bundle,
		logger: logger,
		now:    time.Now,
	}
}

// Load runs the cascade. Tier failures never fail a load: when every tier
// is unavailable the default document is returned. The only error is the
// caller's context ending first, in which case the result is empty.
//
// Concurrent calls share one cascade run. The shared run is detached from
// any single caller's cancellation.
func (l *Loader) Load(ctx context.Context) (domain.LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.LoadResult{}, fmt.Errorf("load canceled: %w", err)
	}

	ch := l.group.DoChan("load", func() (interface{}, error) {
		return l.cascade(context.WithoutCancel(ctx)), nil
	})
	select {
	case res := <-ch:
		result := res.Val.(domain.LoadResult)
		result.Document = result.Document.Clone()
		return result, nil
	case <-ctx.Done():
		return domain.LoadResult{}, fmt.Errorf("load canceled: %w", ctx.Err())
	}
}

func (l *Loader) cascade(ctx context.Context) domain.LoadResult {
	start := l.now()
	result := domain.LoadResult{}

	type tier struct {
		name  string
		fetch func(context.Context) ([]byte, error)
	}
	var tiers []tier
	if l.remote != nil {
		tiers = append(tiers, tier{domain.TierRemote, l.remote.Fetch})
	}
	if l.cache != nil {
		tiers = append(tiers, tier{domain.TierCache, l.fetchCache})
	}
	if l.bundle != nil {
		tiers = append(tiers, tier{domain.TierBundle, l.bundle.Fetch})
	}

	for _, t := range tiers {
		doc, err := l.try(ctx, t.fetch)
		if err != nil {
			l.logger.Warn("content tier unavailable", "tier", t.name, "error", err)
			loadAttemptsTotal.WithLabelValues(t.name, statusFailure).Inc()
			result.Attempts = append(result.Attempts, domain.TierAttempt{Tier: t.name, Error: err.Error()})
			continue
		}

		loadAttemptsTotal.WithLabelValues(t.name, statusSuccess).Inc()
		result.Attempts = append(result.Attempts, domain.TierAttempt{Tier: t.name})
		return l.finish(result, t.name, doc, start)
	}

	loadAttemptsTotal.WithLabelValues(domain.TierDefaults, statusSuccess).Inc()
	result.Attempts = append(result.Attempts, domain.TierAttempt{Tier: domain.TierDefaults})
	return l.finish(result, domain.TierDefaults, domain.DefaultDocument(), start)
}

func (l *Loader) try(ctx context.Context, fetch func(context.Context) ([]byte, error)) (domain.ContentDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	return domain.ParseDocument(data)
}

func (l *Loader) fetchCache(ctx context.Context) ([]byte, error) {
	payload, err := l.cache.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("cache read: %w", err)
	}
	return []byte(payload), nil
}

func (l *Loader) finish(result domain.LoadResult, source string, doc domain.ContentDocument, start time.Time) domain.LoadResult {
	result.Source = source
	result.Document = doc
	result.LoadedAt = l.now()
	loadDurationHistogram.WithLabelValues(source).Observe(result.LoadedAt.Sub(start).Seconds())
	l.logger.Info("content loaded", "source", source, "attempts", len(result.Attempts))
	return result
}
