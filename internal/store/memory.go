package store

import (
	"context"
	"sync"

	"BCVMonitor/internal/model"
)

// MemoryStore keeps the entry in process memory. It is used when no
// persistent backend is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	entry *model.CacheEntry
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Load(_ context.Context) (*model.CacheEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.entry == nil {
		return nil, nil
	}
	e := *m.entry
	return &e, nil
}

func (m *MemoryStore) Save(_ context.Context, entry *model.CacheEntry) error {
	e := *entry
	m.mu.Lock()
	m.entry = &e
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Ping(_ context.Context) error { return nil }
func (m *MemoryStore) Close() error                 { return nil }
