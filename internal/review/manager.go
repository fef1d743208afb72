package review

import (
	"sync"
)

// Manager holds one Flow per (session, product) pair so a shopper's review
// page state survives across requests until they navigate away.
type Manager struct {
	mu     sync.Mutex
	api    BackendAPI
	tokens TokenSource
	flows  map[string]*Flow
}

func NewManager(api BackendAPI, tokens TokenSource) *Manager {
	return &Manager{
		api:    api,
		tokens: tokens,
		flows:  make(map[string]*Flow),
	}
}

func flowKey(sessionID, productID string) string {
	return sessionID + "|" + productID
}

// Get returns the flow for a session viewing a product, creating it on
// first use. The caller is responsible for loading it.
func (m *Manager) Get(sessionID, productID string) *Flow {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := flowKey(sessionID, productID)
	if flow, ok := m.flows[key]; ok {
		return flow
	}

	flow := NewFlow(m.api, m.tokens, sessionID, productID)
	m.flows[key] = flow
	return flow
}

// Evict drops the flow when the shopper leaves the product page. Any
// response still in flight is discarded by the flow's generation guard
// when the page is next loaded.
func (m *Manager) Evict(sessionID, productID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.flows, flowKey(sessionID, productID))
}
