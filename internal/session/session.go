package session

import (
	"context"
	"sync"

	"storefront-be/internal/cart"
	"storefront-be/internal/kvstore"
	"storefront-be/internal/notify"
	"storefront-be/internal/promo"

	"github.com/google/uuid"
)

// Manager hands out per-browser-session cart stores. Each session gets its
// own namespaced slice of the shared key-value store, mirroring
// localStorage-per-browser scoping, and its store lives for the process
// lifetime once constructed.
type Manager struct {
	kv       kvstore.Store
	registry *promo.Registry
	notifier notify.Notifier
	taxRate  float64

	mu     sync.Mutex
	stores map[string]*cart.Store
}

func NewManager(kv kvstore.Store, registry *promo.Registry, notifier notify.Notifier, taxRate float64) *Manager {
	return &Manager{
		kv:       kv,
		registry: registry,
		notifier: notifier,
		taxRate:  taxRate,
		stores:   make(map[string]*cart.Store),
	}
}

// Store returns the cart store for the session id, constructing and
// restoring it from persistence on first use.
func (m *Manager) Store(ctx context.Context, sessionID string) *cart.Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[sessionID]; ok {
		return s
	}

	s := cart.NewStore(ctx, kvstore.Namespaced(m.kv, "session:"+sessionID), m.registry, m.notifier, m.taxRate)
	m.stores[sessionID] = s
	return s
}

// NewID mints a fresh session identifier.
func NewID() string {
	return uuid.New().String()
}
