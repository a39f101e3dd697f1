package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/folio-labs/folio-core/internal/adapters/driven/bundle"
	"github.com/folio-labs/folio-core/internal/adapters/driven/contentapi"
	"github.com/folio-labs/folio-core/internal/adapters/driven/dispatch"
	"github.com/folio-labs/folio-core/internal/adapters/driven/postgres"
	redisadapter "github.com/folio-labs/folio-core/internal/adapters/driven/redis"
	"github.com/folio-labs/folio-core/internal/adapters/driven/sqlite"
	"github.com/folio-labs/folio-core/internal/config"
	"github.com/folio-labs/folio-core/internal/core/ports/driven"
	"github.com/folio-labs/folio-core/internal/core/ports/driving"
	"github.com/folio-labs/folio-core/internal/core/services"
)

// app holds the wired core and everything that must be closed on exit
type app struct {
	content driving.ContentService
	cache   driven.ContentCache // nil when caching is disabled
	closers []func() error
}

func (a *app) Close() {
	if a.content != nil {
		a.content.Close()
	}
	a.closeResources()
}

func (a *app) closeResources() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
	a.closers = nil
}

// openCache is replaced in tests.
var openCache = openContentCache

// openContentCache connects the configured cache backend
func openContentCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (driven.ContentCache, func() error, error) {
	switch backend := cfg.CacheBackend(); backend {
	case config.BackendRedis:
		client, err := redisadapter.Connect(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("content cache ready", "backend", backend)
		return redisadapter.NewContentCache(client, cfg.Cache.Key), client.Close, nil

	case config.BackendPostgres:
		db, err := postgres.Connect(ctx, postgres.DefaultConfig(cfg.Cache.DatabaseURL))
		if err != nil {
			return nil, nil, err
		}
		if err := db.InitSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("content cache ready", "backend", backend)
		return postgres.NewContentCache(db, cfg.Cache.Key), db.Close, nil

	case config.BackendSQLite:
		cache, err := sqlite.Open(ctx, cfg.Cache.SQLitePath, cfg.Cache.Key)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("content cache ready", "backend", backend, "path", cfg.Cache.SQLitePath)
		return cache, cache.Close, nil

	case config.BackendNone:
		logger.Warn("content cache disabled; edits are not kept across restarts")
		return nil, func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}

// buildApp wires adapters into the content service. Unconfigured tiers are
// left nil so the loader skips them.
func buildApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{}

	cache, closeCache, err := openCache(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open content cache: %w", err)
	}
	a.closers = append(a.closers, closeCache)

	loaderCfg := services.LoaderConfig{Logger: logger}
	sinkCfg := services.SinkConfig{Logger: logger, MaxCacheBytes: cfg.Content.MaxCacheBytes}

	if cache != nil {
		a.cache = cache
		loaderCfg.Cache = cache
		sinkCfg.Cache = cache
	}

	if cfg.Content.APIURL != "" {
		baseURL, err := contentapi.ValidateBaseURL(cfg.Content.APIURL)
		if err != nil {
			a.closeResources()
			return nil, fmt.Errorf("content api url: %w", err)
		}
		client := contentapi.NewClient(contentapi.Config{BaseURL: baseURL, Timeout: cfg.Content.APITimeout})
		loaderCfg.Remote = client
		sinkCfg.Replicator = client
	}

	if cfg.Content.BundleURL != "" {
		loaderCfg.Bundle = bundle.New(cfg.Content.BundleURL)
	}

	publisher := dispatch.NewPublisher(dispatch.Config{URL: cfg.Dispatch.URL, Token: cfg.Dispatch.Token})
	if publisher.Enabled() {
		sinkCfg.Publisher = publisher
	} else {
		logger.Debug("automation hook disabled")
	}

	a.content = services.NewContentService(services.ContentServiceConfig{
		Loader:  services.NewLoader(loaderCfg),
		Sink:    services.NewPersistenceSink(sinkCfg),
		Tracker: services.NewChangeTracker(0),
		Logger:  logger,
	})
	return a, nil
}
