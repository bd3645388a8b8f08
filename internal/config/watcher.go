package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher emits a debounced notification whenever the config file changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	events   chan struct{}
	errors   chan error
	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
	watching bool
}

// NewWatcher creates a watcher for path. Call Start to begin watching.
func NewWatcher(ctx context.Context, path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	watcherCtx, cancel := context.WithCancel(ctx)
	return &Watcher{
		watcher: fsw,
		path:    filepath.Clean(path),
		events:  make(chan struct{}, 1),
		errors:  make(chan error, 1),
		ctx:     watcherCtx,
		cancel:  cancel,
	}, nil
}

// Start watches the parent directory so editors that replace the file on
// save are still picked up.
func (w *Watcher) Start(debounce time.Duration) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watching {
		return errors.New("watcher already started")
	}
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.watching = true
	go w.loop(debounce)
	return nil
}

// loop is the only sender on events and errors, so closing them on return
// is safe.
func (w *Watcher) loop(debounce time.Duration) {
	defer close(w.events)
	defer close(w.errors)

	// armed on the first change
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(debounce)

		case <-timer.C:
			select {
			case w.events <- struct{}{}:
			default:
				// one change already pending
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			case <-w.ctx.Done():
				return
			}
		}
	}
}

// Events receives one value per debounced change
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Stop ends the watch and closes both channels
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cancel()
	w.watching = false
	return w.watcher.Close()
}

// Watch reloads the config on every change and passes the result to onChange.
// Files that fail to load are reported to onError and otherwise ignored. It
// returns when ctx is done.
func Watch(ctx context.Context, path string, defaults Config, debounce time.Duration, onChange func(Config), onError func(error)) error {
	w, err := NewWatcher(ctx, path)
	if err != nil {
		return err
	}
	if err := w.Start(debounce); err != nil {
		_ = w.Stop()
		return err
	}
	go func() {
		defer w.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-w.Events():
				if !ok {
					return
				}
				cfg, err := Load(path, defaults)
				if err != nil {
					onError(err)
					continue
				}
				onChange(cfg)
			case err, ok := <-w.Errors():
				if !ok {
					return
				}
				onError(err)
			}
		}
	}()
	return nil
}
