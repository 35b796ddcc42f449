package kvs

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runContract runs the behaviour every backend must share against a fresh store
// produced by newStore.
func runContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("BasicGetSet", func(t *testing.T) {
		store := newStore(t)
		defer func() { _ = store.Close() }()
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "test-key", []byte("test-value")))

		val, err := store.Get(ctx, "test-key")
		require.NoError(t, err)
		assert.Equal(t, []byte("test-value"), val)
	})

	t.Run("GetNonExistent", func(t *testing.T) {
		store := newStore(t)
		defer func() { _ = store.Close() }()

		val, err := store.Get(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, val)
	})

	t.Run("OverwriteKey", func(t *testing.T) {
		store := newStore(t)
		defer func() { _ = store.Close() }()
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "k", []byte("v1")))
		require.NoError(t, store.Set(ctx, "k", []byte("v2")))

		val, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), val)
	})

	t.Run("SetMany", func(t *testing.T) {
		store := newStore(t)
		defer func() { _ = store.Close() }()
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "a", []byte("old")))
		require.NoError(t, store.SetMany(ctx, map[string][]byte{
			"a": []byte("new-a"),
			"b": []byte("new-b"),
		}))

		a, err := store.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("new-a"), a)

		b, err := store.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, []byte("new-b"), b)
	})

	t.Run("DeleteMultiple", func(t *testing.T) {
		store := newStore(t)
		defer func() { _ = store.Close() }()
		ctx := context.Background()

		require.NoError(t, store.SetMany(ctx, map[string][]byte{
			"a": []byte("1"),
			"b": []byte("2"),
			"c": []byte("3"),
		}))
		require.NoError(t, store.Delete(ctx, "a", "b", "never-existed"))

		_, err := store.Get(ctx, "a")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = store.Get(ctx, "b")
		assert.ErrorIs(t, err, ErrNotFound)

		c, err := store.Get(ctx, "c")
		require.NoError(t, err)
		assert.Equal(t, []byte("3"), c)
	})

	t.Run("OperationsAfterClose", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		require.NoError(t, store.Close())

		_, err := store.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrClosed)
		assert.ErrorIs(t, store.Set(ctx, "k", []byte("v")), ErrClosed)
		assert.ErrorIs(t, store.SetMany(ctx, map[string][]byte{"k": nil}), ErrClosed)
		assert.ErrorIs(t, store.Delete(ctx, "k"), ErrClosed)
		assert.ErrorIs(t, store.Close(), ErrClosed)
	})
}

func TestMemoryStoreContract(t *testing.T) {
	runContract(t, func(t *testing.T) Store {
		return NewMemoryStore("test:")
	})
}

func TestLevelDBStoreContract(t *testing.T) {
	runContract(t, func(t *testing.T) Store {
		store, err := NewLevelDBStore("test:", LevelDBConfig{
			Path: filepath.Join(t.TempDir(), "db"),
		})
		require.NoError(t, err)
		return store
	})
}

func TestRedisStoreContract(t *testing.T) {
	runContract(t, func(t *testing.T) Store {
		mr := miniredis.RunT(t)
		store, err := NewRedisStore("test", RedisConfig{Addr: mr.Addr()})
		require.NoError(t, err)
		return store
	})
}
