package mocks

import (
	"context"
	"sync"

	"github.com/folio-labs/folio-core/internal/core/domain"
)

// MockContentReplicator records replicated operations for testing
type MockContentReplicator struct {
	mu  sync.RWMutex
	ops []domain.Operation

	// Err is returned from every Replicate call when set
	Err error
}

// NewMockContentReplicator creates a new MockContentReplicator
func NewMockContentReplicator() *MockContentReplicator {
	return &MockContentReplicator{}
}

func (m *MockContentReplicator) Replicate(ctx context.Context, op domain.Operation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, op)
	return m.Err
}

// Operations returns every operation passed to Replicate in order
func (m *MockContentReplicator) Operations() []domain.Operation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Operation, len(m.ops))
	copy(out, m.ops)
	return out
}
