package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/folio-labs/folio-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	content driving.ContentService
	editor  driving.EditorService

	// Infrastructure
	cache Pinger // content cache health check (optional)
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	Version        string
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           8080,
		Version:        "dev",
		AllowedOrigins: []string{"*"},
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	content driving.ContentService,
	editor driving.EditorService,
	cache Pinger, // can be nil
) *Server {
	s := &Server{
		router:  http.NewServeMux(),
		version: cfg.Version,
		content: content,
		editor:  editor,
		cache:   cache,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      Chain(s.router, cfg.AllowedOrigins),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// Handler returns the root handler including middleware
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health endpoints
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)
	s.router.Handle("GET /metrics", promhttp.Handler())
	s.router.HandleFunc("GET /api/v1/openapi.json", s.handleOpenAPI)

	// Content reads
	s.router.HandleFunc("GET /api/v1/content", s.handleGetContent)
	s.router.HandleFunc("GET /api/v1/content/status", s.handleContentStatus)
	s.router.HandleFunc("GET /api/v1/content/search", s.handleSearch)

	// Mutations
	s.router.HandleFunc("POST /api/v1/content/operations", s.handleApplyOperation)
	s.router.HandleFunc("PUT /api/v1/content/fields/{field}", s.handleSetField)
	s.router.HandleFunc("PUT /api/v1/content/fields/{field}/nested", s.handleSetNestedField)
	s.router.HandleFunc("POST /api/v1/content/fields/{field}/items", s.handleAppendArrayItem)
	s.router.HandleFunc("PUT /api/v1/content/fields/{field}/items/{index}", s.handleSetArrayItem)
	s.router.HandleFunc("DELETE /api/v1/content/fields/{field}/items/{index}", s.handleRemoveArrayItem)

	// Persistence
	s.router.HandleFunc("POST /api/v1/content/save", s.handleSave)
	s.router.HandleFunc("POST /api/v1/content/reload", s.handleReload)
	s.router.HandleFunc("POST /api/v1/content/reset", s.handleReset)
	s.router.HandleFunc("POST /api/v1/content/restore", s.handleRestore)
	s.router.HandleFunc("POST /api/v1/content/clean-images", s.handleCleanImages)

	// Change log
	s.router.HandleFunc("GET /api/v1/changes", s.handleListChanges)
	s.router.HandleFunc("POST /api/v1/changes", s.handleRecordChange)
	s.router.HandleFunc("POST /api/v1/changes/{id}/revert", s.handleRevertChange)

	// Editor session
	s.router.HandleFunc("GET /api/v1/editor", s.handleGetEditor)
	s.router.HandleFunc("POST /api/v1/editor/triggers", s.handleEditorTrigger)
	s.router.HandleFunc("POST /api/v1/editor/logo-click", s.handleLogoClick)
	s.router.HandleFunc("PUT /api/v1/editor/autosave", s.handleSetAutoSave)
	s.router.HandleFunc("POST /api/v1/editor/save", s.handleEditorSave)
}

// Start starts the HTTP server with graceful shutdown.
// It blocks until SIGINT/SIGTERM or ctx is done.
func (s *Server) Start(ctx context.Context) error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
