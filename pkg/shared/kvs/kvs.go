// Package kvs provides the durable key-value surface the client keeps its
// credentials in, with Memory, LevelDB and Redis backends.
package kvs

import (
	"context"
	"errors"
)

// Store is a small key-value store. Values never expire on their own; anything
// with a lifetime (tokens) carries it inside the value.
// All implementations must be safe for concurrent use.
type Store interface {
	// Get retrieves a value by key.
	// Returns ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a single value, replacing any previous one.
	Set(ctx context.Context, key string, value []byte) error

	// SetMany stores all entries as one write. Backends apply it atomically
	// (LevelDB batch, Redis MULTI/EXEC, a single lock in memory), so readers
	// never observe half of the entries.
	SetMany(ctx context.Context, entries map[string][]byte) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Close releases resources. After Close, all operations return ErrClosed.
	Close() error
}

var (
	// ErrNotFound is returned when a key is not found.
	ErrNotFound = errors.New("kvs: key not found")

	// ErrClosed is returned when an operation is attempted on a closed store.
	ErrClosed = errors.New("kvs: store is closed")
)

// Config selects and configures a backend.
type Config struct {
	// Type is "memory", "leveldb" or "redis". Empty means leveldb.
	Type string `yaml:"type" json:"type"`

	// Namespace isolates this client's keys from anything else sharing
	// the backend (directory name for LevelDB, key prefix for Redis).
	Namespace string `yaml:"namespace" json:"namespace"`

	LevelDB LevelDBConfig `yaml:"leveldb" json:"leveldb"`
	Redis   RedisConfig   `yaml:"redis" json:"redis"`
}

// LevelDBConfig configures the LevelDB store.
type LevelDBConfig struct {
	// Path is the database directory. If empty, a directory under the
	// user's config dir is used.
	Path string `yaml:"path" json:"path"`

	// SyncWrites fsyncs every write.
	SyncWrites bool `yaml:"sync_writes" json:"sync_writes"`
}

// RedisConfig configures the Redis store.
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
	PoolSize int    `yaml:"pool_size" json:"pool_size"`
}

// New creates a store for cfg.
func New(cfg Config) (Store, error) {
	switch cfg.Type {
	case "leveldb", "":
		return NewLevelDBStore(cfg.Namespace, cfg.LevelDB)
	case "memory":
		return NewMemoryStore(cfg.Namespace), nil
	case "redis":
		return NewRedisStore(cfg.Namespace, cfg.Redis)
	default:
		return nil, errors.New("kvs: unsupported store type: " + cfg.Type)
	}
}
