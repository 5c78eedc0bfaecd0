package session

import (
	"context"
	"path/filepath"
	"testing"

	"storefront-be/internal/kvstore"
	"storefront-be/internal/notify"
	"storefront-be/internal/product"
	"storefront-be/internal/promo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	kv, err := kvstore.OpenFile(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	return NewManager(kv, promo.DefaultRegistry(), notify.Nop(), 0.10)
}

func TestManager_SameSessionSameStore(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	a := m.Store(ctx, "sess-a")
	b := m.Store(ctx, "sess-a")

	assert.Same(t, a, b)
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	a := m.Store(ctx, "sess-a")
	b := m.Store(ctx, "sess-b")

	a.Add(ctx, product.Product{ID: 1, Title: "Tee", Price: 10, Stock: 5}, 1, "", "")

	assert.Len(t, a.Items(), 1)
	assert.Empty(t, b.Items())
}

func TestNewID(t *testing.T) {
	assert.NotEqual(t, NewID(), NewID())
	assert.Len(t, NewID(), 36)
}
