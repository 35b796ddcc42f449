package kvs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps values in Redis under "namespace:" prefixed keys.
type RedisStore struct {
	prefix string
	client *redis.Client
	mu     sync.RWMutex
	closed bool
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(namespace string, cfg RedisConfig) (*RedisStore, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("kvs/redis: failed to connect to %s: %w", cfg.Addr, err)
	}

	prefix := ""
	if namespace != "" {
		prefix = namespace + ":"
	}

	return &RedisStore{
		prefix: prefix,
		client: client,
	}, nil
}

func (r *RedisStore) key(key string) string {
	return r.prefix + key
}

func (r *RedisStore) checkOpen() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return ErrClosed
	}
	return nil
}

// Get retrieves a value by key.
func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}

	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("kvs/redis: get failed: %w", err)
	}
	return value, nil
}

// Set stores a single value without expiry.
func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := r.checkOpen(); err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("kvs/redis: set failed: %w", err)
	}
	return nil
}

// SetMany writes all entries inside MULTI/EXEC.
func (r *RedisStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	if err := r.checkOpen(); err != nil {
		return err
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range entries {
			pipe.Set(ctx, r.key(k), v, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("kvs/redis: transaction failed: %w", err)
	}
	return nil
}

// Delete removes keys.
func (r *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if err := r.checkOpen(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	if err := r.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("kvs/redis: delete failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection pool.
func (r *RedisStore) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	r.closed = true
	r.mu.Unlock()

	if err := r.client.Close(); err != nil {
		return fmt.Errorf("kvs/redis: close failed: %w", err)
	}
	return nil
}
