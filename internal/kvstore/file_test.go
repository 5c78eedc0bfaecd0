package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	ctx := context.Background()

	s, err := OpenFile(path)
	require.NoError(t, err)

	_, ok, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "cart", `[{"id":1}]`))
	require.NoError(t, s.Set(ctx, "promoCode", "SUMMER10"))

	v, ok, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, v)

	// A fresh store over the same file sees the flushed entries.
	reopened, err := OpenFile(path)
	require.NoError(t, err)
	v, ok, err = reopened.Get(ctx, "promoCode")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "SUMMER10", v)

	require.NoError(t, reopened.Remove(ctx, "promoCode"))
	_, ok, err = reopened.Get(ctx, "promoCode")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_MalformedFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := OpenFile(path)
	require.NoError(t, err)

	_, ok, err := s.Get(context.Background(), "cart")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNamespaced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	ctx := context.Background()

	base, err := OpenFile(path)
	require.NoError(t, err)

	a := Namespaced(base, "session:a")
	b := Namespaced(base, "session:b")

	require.NoError(t, a.Set(ctx, "cart", "[1]"))
	require.NoError(t, b.Set(ctx, "cart", "[2]"))

	v, ok, err := a.Get(ctx, "cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[1]", v)

	v, _, _ = b.Get(ctx, "cart")
	assert.Equal(t, "[2]", v)

	require.NoError(t, a.Remove(ctx, "cart"))
	_, ok, _ = a.Get(ctx, "cart")
	assert.False(t, ok)
	_, ok, _ = b.Get(ctx, "cart")
	assert.True(t, ok)
}
