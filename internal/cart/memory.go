package cart

import (
	"context"
	"sync"
)

// MemoryStorage is an in-process Storage used by tests and the sqlite local
// mode. Safe for concurrent use.
type MemoryStorage struct {
	mu      sync.RWMutex
	records map[string]string
}

// NewMemoryStorage builds an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{records: map[string]string{}}
}

func (m *MemoryStorage) Get(ctx context.Context, sessionID string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.records[sessionID]
	return payload, ok, nil
}

func (m *MemoryStorage) Set(ctx context.Context, sessionID, payload string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[sessionID] = payload
	return nil
}

func (m *MemoryStorage) Remove(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, sessionID)
	return nil
}
