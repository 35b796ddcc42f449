package tokenstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideamans/accountclient/pkg/shared/kvs"
)

func TestStore_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	store := New(kvs.NewMemoryStore(""))

	require.NoError(t, store.Save(ctx, "id-1", "rf-1"))

	id, rf, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "id-1", id)
	assert.Equal(t, "rf-1", rf)
}

func TestStore_SaveOverwritesWholePair(t *testing.T) {
	ctx := context.Background()
	store := New(kvs.NewMemoryStore(""))

	require.NoError(t, store.Save(ctx, "id-1", "rf-1"))
	require.NoError(t, store.Save(ctx, "id-2", "rf-2"))

	id, rf, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Pair{IDToken: "id-2", RefreshToken: "rf-2"}, Pair{IDToken: id, RefreshToken: rf})
}

func TestStore_LoadEachSlotIndependently(t *testing.T) {
	ctx := context.Background()
	base := kvs.NewMemoryStore("")
	store := New(base)

	id, rf, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.Empty(t, rf)

	// Only the refresh slot present, e.g. the identity slot was removed by hand
	require.NoError(t, base.Set(ctx, Namespace+RefreshTokenKey, []byte("rf-only")))

	id, rf, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.Equal(t, "rf-only", rf)
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	store := New(kvs.NewMemoryStore(""))

	require.NoError(t, store.Save(ctx, "id", "rf"))
	require.NoError(t, store.Clear(ctx))

	id, rf, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.Empty(t, rf)
}

func TestStore_DurableAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store")

	first, err := kvs.NewLevelDBStore("", kvs.LevelDBConfig{Path: path})
	require.NoError(t, err)
	require.NoError(t, New(first).Save(ctx, "id", "rf"))
	require.NoError(t, first.Close())

	second, err := kvs.NewLevelDBStore("", kvs.LevelDBConfig{Path: path})
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	id, rf, err := New(second).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "id", id)
	assert.Equal(t, "rf", rf)
}

func TestStore_PropagatesBackendErrors(t *testing.T) {
	ctx := context.Background()
	base := kvs.NewMemoryStore("")
	store := New(base)
	require.NoError(t, base.Close())

	assert.ErrorIs(t, store.Save(ctx, "id", "rf"), kvs.ErrClosed)
	_, _, err := store.Load(ctx)
	assert.ErrorIs(t, err, kvs.ErrClosed)
	assert.ErrorIs(t, store.Clear(ctx), kvs.ErrClosed)
}
