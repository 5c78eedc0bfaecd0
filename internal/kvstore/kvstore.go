package kvstore

import "context"

// Store is the durable key-value persistence boundary. Values are textual,
// round-trippable blobs; each key is independently readable and writable.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

type namespaced struct {
	store  Store
	prefix string
}

// Namespaced wraps a store so every key is scoped under prefix, giving each
// browser session its own slice of the shared store.
func Namespaced(store Store, prefix string) Store {
	return &namespaced{store: store, prefix: prefix + ":"}
}

func (n *namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.store.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key, value string) error {
	return n.store.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Remove(ctx context.Context, key string) error {
	return n.store.Remove(ctx, n.prefix+key)
}
