package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/folio-labs/folio-core/internal/core/domain"
	"github.com/folio-labs/folio-core/internal/core/ports/driving"
)

// DefaultAutoSaveInterval is how often an open editor saves unsaved changes.
const DefaultAutoSaveInterval = 30 * time.Second

// Ensure editorService implements EditorService
var _ driving.EditorService = (*editorService)(nil)

// editorService runs the editor session state machine. While the editor is
// open with autosave enabled, a ticker loop saves the document whenever it
// has unsaved changes.
type editorService struct {
	content  driving.ContentService
	logger   *slog.Logger
	interval time.Duration
	now      func() time.Time

	// loopMu serializes start/stop of the autosave loop
	loopMu  sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	mu      sync.Mutex
	session *domain.EditorSession
	clicks  *domain.ClickCounter
}

// EditorConfig holds configuration for the editor service.
type EditorConfig struct {
	Content          driving.ContentService
	Logger           *slog.Logger
	AutoSaveEnabled  bool
	AutoSaveInterval time.Duration // How often to autosave while open (default: 30s)
}

// NewEditorService creates a new EditorService
func NewEditorService(cfg EditorConfig) driving.EditorService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	interval := cfg.AutoSaveInterval
	if interval == 0 {
		interval = DefaultAutoSaveInterval
	}

	return &editorService{
		content:  cfg.Content,
		logger:   logger,
		interval: interval,
		now:      time.Now,
		session:  domain.NewEditorSession(cfg.AutoSaveEnabled),
		clicks:   domain.NewClickCounter(),
	}
}

// Session returns a copy of the current session state
func (s *editorService) Session() domain.EditorSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.session
}

// Handle applies a trigger to the session
func (s *editorService) Handle(ctx context.Context, trigger domain.EditorTrigger) (domain.EditorSession, error) {
	s.loopMu.Lock()
	defer s.loopMu.Unlock()

	s.mu.Lock()
	changed, err := s.session.Handle(trigger, s.now())
	if err != nil {
		s.mu.Unlock()
		return domain.EditorSession{}, err
	}
	if changed && s.session.IsOpen() {
		s.session.ID = uuid.NewString()
		s.logger.Info("editor opened", "session_id", s.session.ID, "trigger", trigger)
	} else if changed {
		s.logger.Info("editor closed", "session_id", s.session.ID, "trigger", trigger)
	}
	s.mu.Unlock()

	s.reconcileLocked()
	return s.Session(), nil
}

// LogoClick registers one logo click
func (s *editorService) LogoClick(ctx context.Context) domain.EditorSession {
	s.mu.Lock()
	completed := s.clicks.Click(s.now())
	s.mu.Unlock()

	if completed {
		session, err := s.Handle(ctx, domain.TriggerLogoClicks)
		if err == nil {
			return session
		}
	}
	return s.Session()
}

// SetAutoSave enables or disables the autosave loop
func (s *editorService) SetAutoSave(ctx context.Context, enabled bool) domain.EditorSession {
	s.loopMu.Lock()
	defer s.loopMu.Unlock()

	s.mu.Lock()
	s.session.AutoSave = enabled
	s.mu.Unlock()

	s.reconcileLocked()
	return s.Session()
}

// SaveAndClose saves the document. The editor stays open when the save fails.
func (s *editorService) SaveAndClose(ctx context.Context) (bool, domain.EditorSession) {
	if !s.content.Save(ctx) {
		return false, s.Session()
	}

	s.loopMu.Lock()
	defer s.loopMu.Unlock()

	now := s.now()
	s.mu.Lock()
	s.session.LastSavedAt = &now
	if s.session.IsOpen() {
		_, _ = s.session.Handle(domain.TriggerCloseControl, now)
		s.logger.Info("editor closed", "session_id", s.session.ID, "trigger", "save")
	}
	s.mu.Unlock()

	s.reconcileLocked()
	return true, s.Session()
}

// Stop closes the session and stops the autosave loop
func (s *editorService) Stop() {
	s.loopMu.Lock()
	defer s.loopMu.Unlock()

	s.mu.Lock()
	if s.session.IsOpen() {
		_, _ = s.session.Handle(domain.TriggerCloseControl, s.now())
	}
	s.mu.Unlock()

	s.reconcileLocked()
}

// reconcileLocked starts or stops the loop to match the session.
// Caller must hold loopMu.
func (s *editorService) reconcileLocked() {
	s.mu.Lock()
	want := s.session.IsOpen() && s.session.AutoSave
	s.mu.Unlock()

	switch {
	case want && !s.running:
		s.stopCh = make(chan struct{})
		s.doneCh = make(chan struct{})
		s.running = true
		go s.run(s.stopCh, s.doneCh)
		s.logger.Debug("autosave started", "interval", s.interval)
	case !want && s.running:
		close(s.stopCh)
		<-s.doneCh
		s.running = false
		s.logger.Debug("autosave stopped")
	}
}

// run is the autosave loop.
func (s *editorService) run(stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			s.autoSave(ctx)
		}
	}
}

func (s *editorService) autoSave(ctx context.Context) {
	if !s.content.Status().Dirty {
		return
	}
	if !s.content.Save(ctx) {
		s.logger.Warn("autosave failed")
		return
	}

	now := s.now()
	s.mu.Lock()
	s.session.LastSavedAt = &now
	s.mu.Unlock()
	s.logger.Info("autosaved content")
}
