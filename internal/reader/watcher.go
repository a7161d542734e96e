package reader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher watches a source root and invokes a callback, debounced,
// when analyzable files change. The callback typically re-runs
// ReadNamespaces and rewrites the output.
type Watcher struct {
	root         string
	watcher      *fsnotify.Watcher
	onChange     func()
	debounceTime time.Duration
	stopCh       chan struct{}
	doneCh       chan struct{}
	started      bool
	stopOnce     sync.Once
}

// NewWatcher creates a watcher over root. onChange runs on the watch
// goroutine after changes settle.
func NewWatcher(root string, onChange func()) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		root:         root,
		watcher:      fsWatcher,
		onChange:     onChange,
		debounceTime: 500 * time.Millisecond,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
	if err := w.addDirectoriesRecursively(root); err != nil {
		fsWatcher.Close()
		return nil, err
	}
	return w, nil
}

// Start begins watching for file changes. Call at most once, before
// Stop.
func (w *Watcher) Start(ctx context.Context) {
	w.started = true
	go w.watch(ctx)
}

// Stop stops the watcher and waits for the watch goroutine, if one was
// started.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		if w.started {
			<-w.doneCh
		}
		w.watcher.Close()
	})
}

func (w *Watcher) watch(ctx context.Context) {
	defer close(w.doneCh)

	var debounceTimer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.shouldProcessEvent(event) {
				continue
			}
			// New directories get watched so files created inside
			// them are seen.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addDirectoriesRecursively(event.Name); err != nil {
						log.Warn("failed to watch new directory", "dir", event.Name, "err", err)
					}
				}
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(w.debounceTime)
			timerCh = debounceTimer.C

		case <-timerCh:
			timerCh = nil
			w.onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("watch error", "err", err)
		}
	}
}

// shouldProcessEvent keeps events for analyzable files and directory
// creations; everything else is noise.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if strings.HasSuffix(event.Name, ".clj") || strings.HasSuffix(event.Name, ".cljc") {
		return true
	}
	if event.Op&fsnotify.Create != 0 {
		info, err := os.Stat(event.Name)
		return err == nil && info.IsDir()
	}
	return false
}

func (w *Watcher) addDirectoriesRecursively(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if name := info.Name(); name != "." && strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}
