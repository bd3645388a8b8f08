package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherDetectsChange(t *testing.T) {
	path := writeConfig(t, "[ui]\nnotification_seconds = 5\n")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	w, err := NewWatcher(ctx, path)
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.Start(50*time.Millisecond))
	assert.Error(t, w.Start(50*time.Millisecond), "second start")

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("[ui]\nnotification_seconds = 9\n"), 0o644))

	select {
	case <-w.Events():
	case err := <-w.Errors():
		t.Fatalf("watcher error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change event")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	path := writeConfig(t, "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	w, err := NewWatcher(ctx, path)
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.Start(50*time.Millisecond))

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.toml"), []byte("x"), 0o644))

	select {
	case <-w.Events():
		t.Fatal("unexpected event for unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchReloadsConfig(t *testing.T) {
	path := writeConfig(t, "[ui]\nnotification_seconds = 5\n")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan Config, 1)
	errs := make(chan error, 1)
	require.NoError(t, Watch(ctx, path, Default(testPaths()), 50*time.Millisecond,
		func(c Config) { changes <- c },
		func(err error) { errs <- err },
	))

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("[ui]\nnotification_seconds = 2\n"), 0o644))

	select {
	case cfg := <-changes:
		assert.Equal(t, 2*time.Second, cfg.UI.NotificationTTL())
	case err := <-errs:
		t.Fatalf("reload error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for reload")
	}
}

func TestWatcherCoalescesBursts(t *testing.T) {
	path := writeConfig(t, "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	w, err := NewWatcher(ctx, path)
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.Start(150*time.Millisecond))

	time.Sleep(100 * time.Millisecond)
	for i := range 3 {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0o644))
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case <-w.Events():
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change event")
	}
	select {
	case <-w.Events():
		t.Fatal("burst produced a second event")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcherStopWithPendingChange(t *testing.T) {
	path := writeConfig(t, "")

	w, err := NewWatcher(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, w.Start(100*time.Millisecond))

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, w.Stop())

	// the channel closes without a send after the debounce would have fired
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-w.Events():
			if !ok {
				time.Sleep(200 * time.Millisecond)
				return
			}
		case <-deadline:
			t.Fatal("events channel not closed after Stop")
		}
	}
}
