package shop

import (
	"context"
	"sync"

	"github.com/voicecart/voicecart-server/internal/storage"
)

// Manager hands out one Store per shopper session. Stores are created
// lazily and restored from durable storage on first use, so a shopper who
// returns after a restart gets their persisted cart back.
type Manager struct {
	mu      sync.Mutex
	storage storage.Storage
	stores  map[string]*Store
}

func NewManager(st storage.Storage) *Manager {
	return &Manager{
		storage: st,
		stores:  make(map[string]*Store),
	}
}

// Get returns the session's store, restoring it from storage on first use.
func (m *Manager) Get(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[sessionID]; ok {
		return store
	}

	store := NewStore(sessionID, m.storage)
	store.Load(ctx)
	m.stores[sessionID] = store
	return store
}

// Evict drops the in-memory store for a session. The durable snapshot is
// untouched; the next Get restores from it.
func (m *Manager) Evict(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, sessionID)
}
