// Package tokenstore persists the identity/refresh token pair.
package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/ideamans/accountclient/pkg/shared/kvs"
)

const (
	// Namespace prefixes the token keys inside the shared KVS.
	Namespace = "tokens:"

	// IDTokenKey and RefreshTokenKey are the two fixed slots.
	IDTokenKey      = "id_token"
	RefreshTokenKey = "refresh_token"
)

// Pair is an identity/refresh token pair as issued by the account API.
type Pair struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
}

// Store reads and writes the pair. It performs no validation; decoding and
// expiry are the token package's concern.
type Store struct {
	kvs kvs.Store
}

// New creates a Store over base, isolated under Namespace.
func New(base kvs.Store) *Store {
	return &Store{kvs: kvs.NewNamespacedStore(base, Namespace)}
}

// Save overwrites both slots in a single write.
func (s *Store) Save(ctx context.Context, idToken, refreshToken string) error {
	err := s.kvs.SetMany(ctx, map[string][]byte{
		IDTokenKey:      []byte(idToken),
		RefreshTokenKey: []byte(refreshToken),
	})
	if err != nil {
		return fmt.Errorf("tokenstore: failed to save tokens: %w", err)
	}
	return nil
}

// Load returns both slots. A missing slot comes back as "" without error.
func (s *Store) Load(ctx context.Context) (idToken, refreshToken string, err error) {
	idToken, err = s.get(ctx, IDTokenKey)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = s.get(ctx, RefreshTokenKey)
	if err != nil {
		return "", "", err
	}
	return idToken, refreshToken, nil
}

// Clear deletes both slots.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kvs.Delete(ctx, IDTokenKey, RefreshTokenKey); err != nil {
		return fmt.Errorf("tokenstore: failed to clear tokens: %w", err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	value, err := s.kvs.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kvs.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("tokenstore: failed to load %s: %w", key, err)
	}
	return string(value), nil
}
