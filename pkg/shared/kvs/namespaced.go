package kvs

import "context"

// NamespacedStore wraps a Store and prepends a prefix to all keys, so that
// several logical stores can share one physical backend.
//
// Example:
//
//	base, _ := kvs.New(cfg.Storage)
//	tokens := kvs.NewNamespacedStore(base, "tokens:")
type NamespacedStore struct {
	store  Store
	prefix string
}

// NewNamespacedStore creates a namespaced wrapper.
// An empty prefix returns store unchanged.
func NewNamespacedStore(store Store, prefix string) Store {
	if prefix == "" {
		return store
	}
	return &NamespacedStore{
		store:  store,
		prefix: prefix,
	}
}

func (n *NamespacedStore) key(key string) string {
	return n.prefix + key
}

// Get retrieves a value by key.
func (n *NamespacedStore) Get(ctx context.Context, key string) ([]byte, error) {
	return n.store.Get(ctx, n.key(key))
}

// Set stores a value.
func (n *NamespacedStore) Set(ctx context.Context, key string, value []byte) error {
	return n.store.Set(ctx, n.key(key), value)
}

// SetMany stores all entries through the underlying store's atomic write.
func (n *NamespacedStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	prefixed := make(map[string][]byte, len(entries))
	for k, v := range entries {
		prefixed[n.key(k)] = v
	}
	return n.store.SetMany(ctx, prefixed)
}

// Delete removes keys.
func (n *NamespacedStore) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = n.key(k)
	}
	return n.store.Delete(ctx, prefixed...)
}

// Close closes the underlying store.
//
// IMPORTANT: every wrapper sharing the same base store is closed with it.
// Close the base store once, from its owner.
func (n *NamespacedStore) Close() error {
	return n.store.Close()
}
