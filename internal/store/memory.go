package store

import (
	"context"
	"sync"
)

// Memory is an in-process Store for tests and local development.
// Data is lost on restart.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value for key or ErrNotFound.
func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

// Set stores a single key.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// SetMulti applies all writes under one lock acquisition.
func (m *Memory) SetMulti(_ context.Context, kv map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range kv {
		m.values[k] = v
	}
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// Snapshot copies current contents, for assertions in tests.
func (m *Memory) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}
