package mocks

import (
	"context"
	"sync"

	"github.com/folio-labs/folio-core/internal/core/domain"
)

// MockContentCache is an in-memory ContentCache for testing
type MockContentCache struct {
	mu      sync.RWMutex
	payload *string
	writes  []string
	removes int

	// Error injection
	GetErr    error
	SetErr    error
	RemoveErr error
}

// NewMockContentCache creates an empty MockContentCache
func NewMockContentCache() *MockContentCache {
	return &MockContentCache{}
}

// NewMockContentCacheWith creates a MockContentCache holding payload
func NewMockContentCacheWith(payload string) *MockContentCache {
	return &MockContentCache{payload: &payload}
}

func (m *MockContentCache) Get(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetErr != nil {
		return "", m.GetErr
	}
	if m.payload == nil {
		return "", domain.ErrNotFound
	}
	return *m.payload, nil
}

func (m *MockContentCache) Set(ctx context.Context, payload string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.payload = &payload
	m.writes = append(m.writes, payload)
	return nil
}

func (m *MockContentCache) Remove(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	m.payload = nil
	m.removes++
	return nil
}

func (m *MockContentCache) Ping(ctx context.Context) error {
	return nil
}

// Payload returns the stored payload and whether one exists
func (m *MockContentCache) Payload() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.payload == nil {
		return "", false
	}
	return *m.payload, true
}

// Writes returns every successful Set payload in order
func (m *MockContentCache) Writes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.writes))
	copy(out, m.writes)
	return out
}

// Removes returns how many times Remove succeeded
func (m *MockContentCache) Removes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.removes
}
