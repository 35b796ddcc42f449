package kvs

import (
	"context"
	"sync"
)

// MemoryStore keeps values in a map. Data is lost when the process exits,
// which makes it the backend of choice for tests and throwaway sessions.
type MemoryStore struct {
	namespace string
	items     map[string][]byte
	mu        sync.RWMutex
	closed    bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(namespace string) *MemoryStore {
	return &MemoryStore{
		namespace: namespace,
		items:     make(map[string][]byte),
	}
}

func (m *MemoryStore) key(key string) string {
	return m.namespace + key
}

// Get retrieves a copy of the value stored under key.
func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}

	value, ok := m.items[m.key(key)]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneBytes(value), nil
}

// Set stores a copy of value.
func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	return m.SetMany(ctx, map[string][]byte{key: value})
}

// SetMany stores all entries under one lock.
func (m *MemoryStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	for k, v := range entries {
		m.items[m.key(k)] = cloneBytes(v)
	}
	return nil
}

// Delete removes keys.
func (m *MemoryStore) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	for _, k := range keys {
		delete(m.items, m.key(k))
	}
	return nil
}

// Close drops all data.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.closed = true
	m.items = nil
	return nil
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
