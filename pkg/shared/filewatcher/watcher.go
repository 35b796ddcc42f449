// Package filewatcher reports debounced changes to a single file.
package filewatcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrClosed is returned by Start once the underlying fsnotify channels close.
var ErrClosed = errors.New("filewatcher: watcher closed")

// ChangeEvent represents a file change event
type ChangeEvent struct {
	Path      string    // Path to the changed file
	Timestamp time.Time // Time of the change
	Error     error     // Error reported by fsnotify, if any
}

// ChangeListener receives file change notifications
type ChangeListener interface {
	OnFileChange(event ChangeEvent)
}

// ListenerFunc adapts a function to ChangeListener.
type ListenerFunc func(event ChangeEvent)

// OnFileChange calls f(event).
func (f ListenerFunc) OnFileChange(event ChangeEvent) { f(event) }

// Watcher monitors one file and notifies listeners after writes settle.
//
// The parent directory is watched instead of the file itself: editors and
// config management tools often replace a file by renaming a temp file over
// it, which drops a watch placed on the old inode.
type Watcher struct {
	watcher       *fsnotify.Watcher
	listeners     []ChangeListener
	filePath      string
	debounceDelay time.Duration
	mu            sync.RWMutex
}

// NewWatcher creates a watcher for filePath with the given debounce delay.
func NewWatcher(filePath string, debounceDelay time.Duration) (*Watcher, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if err := fsWatcher.Add(filepath.Dir(absPath)); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch directory of %s: %w", absPath, err)
	}

	return &Watcher{
		watcher:       fsWatcher,
		filePath:      absPath,
		debounceDelay: debounceDelay,
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.filePath
}

// AddListener adds a listener to receive file change notifications
func (w *Watcher) AddListener(listener ChangeListener) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, listener)
}

// Start blocks, dispatching events until ctx is cancelled or the watcher is closed.
func (w *Watcher) Start(ctx context.Context) error {
	var (
		timer   *time.Timer
		timerMu sync.Mutex
	)
	defer func() {
		timerMu.Lock()
		if timer != nil {
			timer.Stop()
		}
		timerMu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return ErrClosed
			}

			eventPath, err := filepath.Abs(event.Name)
			if err != nil || eventPath != w.filePath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			timerMu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounceDelay, func() {
				w.notify(ChangeEvent{Path: w.filePath, Timestamp: time.Now()})
			})
			timerMu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return ErrClosed
			}
			w.notify(ChangeEvent{Path: w.filePath, Timestamp: time.Now(), Error: err})
		}
	}
}

// Close stops the watcher and releases resources
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// notify calls every listener in registration order on the caller's goroutine.
func (w *Watcher) notify(event ChangeEvent) {
	w.mu.RLock()
	listeners := append([]ChangeListener(nil), w.listeners...)
	w.mu.RUnlock()

	for _, listener := range listeners {
		listener.OnFileChange(event)
	}
}
