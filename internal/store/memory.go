package store

import (
	"context"
	"sync"
)

// Memory is an in-process Store, used by tests and as the default backend for
// throwaway runs. Documents are copied on the way in and out so callers
// cannot alias the stored bytes.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{collections: make(map[string][]byte)}
}

func (m *Memory) Load(_ context.Context, collection string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.collections[collection]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *Memory) Save(_ context.Context, collection string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	m.collections[collection] = stored
	return nil
}
