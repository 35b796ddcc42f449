package session

import "context"

type contextKey struct{}

// NewContext returns a copy of ctx carrying store.
func NewContext(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, contextKey{}, store)
}

// FromContext returns the store installed by NewContext. It panics with
// ErrNotInstalled when there is none, since every caller depends on it.
func FromContext(ctx context.Context) *Store {
	store, ok := ctx.Value(contextKey{}).(*Store)
	if !ok || store == nil {
		panic(ErrNotInstalled)
	}
	return store
}

// Lookup is FromContext without the panic.
func Lookup(ctx context.Context) (*Store, bool) {
	store, ok := ctx.Value(contextKey{}).(*Store)
	return store, ok && store != nil
}
