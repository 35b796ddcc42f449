package config

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/ideamans/accountclient/pkg/shared/filewatcher"
	"github.com/ideamans/accountclient/pkg/shared/logging"
)

// DefaultReloadDelay debounces bursts of writes to the config file.
const DefaultReloadDelay = 100 * time.Millisecond

// Watcher reloads the configuration when its file changes and hands every
// new, valid configuration to the registered callbacks. Invalid or unchanged
// files are logged and skipped; the last good configuration stays current.
type Watcher struct {
	loader *FileLoader
	files  *filewatcher.Watcher
	logger logging.Logger

	mu        sync.RWMutex
	current   *Config
	lastHash  string
	callbacks []func(*Config)

	// reloaded is notified after each reload attempt; tests use it.
	reloaded chan struct{}
}

// NewWatcher creates a watcher over loader's file starting from initial.
func NewWatcher(loader *FileLoader, initial *Config, logger logging.Logger) (*Watcher, error) {
	hash, err := calculateConfigHash(initial)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate initial config hash: %w", err)
	}

	files, err := filewatcher.NewWatcher(loader.Path(), DefaultReloadDelay)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		loader:   loader,
		files:    files,
		logger:   logger.WithModule("config"),
		current:  initial,
		lastHash: hash,
	}
	files.AddListener(filewatcher.ListenerFunc(w.onFileChange))
	return w, nil
}

// OnChange registers fn to receive every reloaded configuration.
func (w *Watcher) OnChange(fn func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, fn)
}

// Current returns the last valid configuration.
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Watch blocks until ctx is cancelled or the watcher is closed. A cancelled
// context is a normal stop and returns nil.
func (w *Watcher) Watch(ctx context.Context) error {
	w.logger.Info("Watching configuration file", "path", w.files.Path())
	err := w.files.Start(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, filewatcher.ErrClosed) {
		w.logger.Info("Configuration watch stopped")
		return nil
	}
	return err
}

// Close releases the underlying file watcher.
func (w *Watcher) Close() error {
	return w.files.Close()
}

func (w *Watcher) onFileChange(event filewatcher.ChangeEvent) {
	defer w.notifyReloaded()

	if event.Error != nil {
		w.logger.Error("File watch error", "error", event.Error)
		return
	}

	cfg, err := w.loader.Load()
	if err != nil {
		w.logger.Error("Failed to load configuration", "error", err)
		return
	}

	hash, err := calculateConfigHash(cfg)
	if err != nil {
		w.logger.Error("Failed to calculate config hash", "error", err)
		return
	}

	w.mu.Lock()
	if hash == w.lastHash {
		w.mu.Unlock()
		w.logger.Debug("Configuration unchanged")
		return
	}
	w.current = cfg
	w.lastHash = hash
	callbacks := slices.Clone(w.callbacks)
	w.mu.Unlock()

	w.logger.Info("Configuration reloaded", "path", event.Path)
	for _, fn := range callbacks {
		fn(cfg)
	}
}

func (w *Watcher) notifyReloaded() {
	if w.reloaded == nil {
		return
	}
	select {
	case w.reloaded <- struct{}{}:
	default:
	}
}

// calculateConfigHash hashes the JSON form of cfg for change detection.
func calculateConfigHash(cfg *Config) (string, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash), nil
}
