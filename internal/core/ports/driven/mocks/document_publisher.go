package mocks

import (
	"context"
	"sync"

	"github.com/folio-labs/folio-core/internal/core/domain"
)

// MockDocumentPublisher records published documents for testing
type MockDocumentPublisher struct {
	mu        sync.RWMutex
	enabled   bool
	published []domain.ContentDocument

	// Err is returned from Publish when set
	Err error
}

// NewMockDocumentPublisher creates a publisher; disabled publishers reject every call
func NewMockDocumentPublisher(enabled bool) *MockDocumentPublisher {
	return &MockDocumentPublisher{enabled: enabled}
}

func (m *MockDocumentPublisher) Enabled() bool {
	return m.enabled
}

func (m *MockDocumentPublisher) Publish(ctx context.Context, doc domain.ContentDocument) error {
	if !m.enabled {
		return domain.ErrPublisherDisabled
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.published = append(m.published, doc)
	return nil
}

// Published returns every successfully published document
func (m *MockDocumentPublisher) Published() []domain.ContentDocument {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.ContentDocument, len(m.published))
	copy(out, m.published)
	return out
}
