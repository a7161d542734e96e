package reader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func waitForChange(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change callback")
	}
}

func TestWatcher_FiresOnSourceChange(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "core.clj"), []byte("(ns a)\n"), 0644))

	changed := make(chan struct{}, 1)
	w, err := NewWatcher(root, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(root, "core.clj"), []byte("(ns a)\n(def x 1)\n"), 0644))
	waitForChange(t, changed)
}

func TestWatcher_IgnoresUnrecognizedFiles(t *testing.T) {
	root := t.TempDir()

	changed := make(chan struct{}, 1)
	w, err := NewWatcher(root, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0644))
	select {
	case <-changed:
		t.Fatal("callback fired for an unrecognized file")
	case <-time.After(1 * time.Second):
	}
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), func() {})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Stop blocked with no watch goroutine running")
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	root := t.TempDir()
	w, err := NewWatcher(root, func() {})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	w.Stop()
	w.Stop()
}
