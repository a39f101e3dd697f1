package mocks

import (
	"context"
	"sync"
)

// MockContentSource is a ContentSource returning fixed data for testing
type MockContentSource struct {
	mu    sync.Mutex
	name  string
	data  []byte
	err   error
	calls int
}

// NewMockContentSource creates a source that returns data
func NewMockContentSource(name string, data []byte) *MockContentSource {
	return &MockContentSource{name: name, data: data}
}

// NewFailingContentSource creates a source that always returns err
func NewFailingContentSource(name string, err error) *MockContentSource {
	return &MockContentSource{name: name, err: err}
}

func (m *MockContentSource) Name() string {
	return m.name
}

func (m *MockContentSource) Fetch(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.data, nil
}

// SetResponse replaces the data and error returned by Fetch
func (m *MockContentSource) SetResponse(data []byte, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	m.err = err
}

// Calls returns how many times Fetch was called
func (m *MockContentSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
