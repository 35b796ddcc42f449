package kvs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// DefaultLevelDBDir is the directory name used under the user's config dir
// when no explicit path is configured.
const DefaultLevelDBDir = "accountclient"

// LevelDBStore persists values on the local filesystem. It is the default
// backend: tokens survive restarts and stay private to the OS user.
type LevelDBStore struct {
	namespace string
	path      string
	db        *leveldb.DB
	writeOpts *opt.WriteOptions
	mu        sync.RWMutex
	closed    bool
}

// NewLevelDBStore opens (or creates) the database described by cfg.
func NewLevelDBStore(namespace string, cfg LevelDBConfig) (*LevelDBStore, error) {
	dbPath := cfg.Path
	if dbPath == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			base = os.TempDir()
		}
		dbPath = filepath.Join(base, DefaultLevelDBDir, "store")
	}

	// Token files must not be readable by other users
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("kvs/leveldb: failed to create directory: %w", err)
	}

	db, err := leveldb.OpenFile(dbPath, &opt.Options{Strict: opt.DefaultStrict})
	if err != nil {
		var corrupted *lerrors.ErrCorrupted
		if errors.As(err, &corrupted) {
			db, err = leveldb.RecoverFile(dbPath, nil)
		}
		if err != nil {
			return nil, fmt.Errorf("kvs/leveldb: failed to open database at %s: %w", dbPath, err)
		}
	}

	return &LevelDBStore{
		namespace: namespace,
		path:      dbPath,
		db:        db,
		writeOpts: &opt.WriteOptions{Sync: cfg.SyncWrites},
	}, nil
}

// Path returns the database directory.
func (l *LevelDBStore) Path() string {
	return l.path
}

func (l *LevelDBStore) key(key string) []byte {
	return []byte(l.namespace + key)
}

func (l *LevelDBStore) checkOpen() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return ErrClosed
	}
	return nil
}

// Get retrieves a value by key.
func (l *LevelDBStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := l.checkOpen(); err != nil {
		return nil, err
	}

	value, err := l.db.Get(l.key(key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("kvs/leveldb: get failed: %w", err)
	}
	return value, nil
}

// Set stores a single value.
func (l *LevelDBStore) Set(ctx context.Context, key string, value []byte) error {
	if err := l.checkOpen(); err != nil {
		return err
	}

	if err := l.db.Put(l.key(key), value, l.writeOpts); err != nil {
		return fmt.Errorf("kvs/leveldb: set failed: %w", err)
	}
	return nil
}

// SetMany writes all entries in a single batch.
func (l *LevelDBStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	if err := l.checkOpen(); err != nil {
		return err
	}

	batch := new(leveldb.Batch)
	for k, v := range entries {
		batch.Put(l.key(k), v)
	}
	if err := l.db.Write(batch, l.writeOpts); err != nil {
		return fmt.Errorf("kvs/leveldb: batch write failed: %w", err)
	}
	return nil
}

// Delete removes keys in a single batch.
func (l *LevelDBStore) Delete(ctx context.Context, keys ...string) error {
	if err := l.checkOpen(); err != nil {
		return err
	}

	batch := new(leveldb.Batch)
	for _, k := range keys {
		batch.Delete(l.key(k))
	}
	if err := l.db.Write(batch, l.writeOpts); err != nil {
		return fmt.Errorf("kvs/leveldb: delete failed: %w", err)
	}
	return nil
}

// Close closes the database.
func (l *LevelDBStore) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.closed = true
	l.mu.Unlock()

	if err := l.db.Close(); err != nil {
		return fmt.Errorf("kvs/leveldb: close failed: %w", err)
	}
	return nil
}
