// Package watcher reports documents that appear or change in a directory.
//
// It wraps fsnotify and coalesces the bursts of events editors and copy
// tools produce, so each settled file is reported once.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/orderform-cli/internal/logger"
)

// DefaultDebounce is how long a file must be quiet before it is reported.
const DefaultDebounce = 300 * time.Millisecond

// ErrNotDirectory indicates the watched path is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Watcher watches one directory, non-recursively.
type Watcher struct {
	dir        string
	extensions map[string]bool
	debounce   time.Duration

	mu      sync.Mutex
	watcher *fsnotify.Watcher
}

// New creates a watcher for dir that reports files with one of the given
// extensions. An empty list accepts every file.
func New(dir string, extensions []string) *Watcher {
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		exts[strings.ToLower(e)] = true
	}
	return &Watcher{
		dir:        dir,
		extensions: exts,
		debounce:   DefaultDebounce,
	}
}

// WithDebounce overrides the quiet period.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// Watch starts watching and returns a channel of settled file paths.
// The channel is closed when ctx is cancelled or the watcher fails.
func (w *Watcher) Watch(ctx context.Context) (<-chan string, error) {
	info, err := os.Stat(w.dir)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", w.dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch %s: %w", w.dir, ErrNotDirectory)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", w.dir, err)
	}

	w.mu.Lock()
	w.watcher = fsw
	w.mu.Unlock()

	out := make(chan string)
	go w.loop(ctx, fsw, out)
	return out, nil
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	w.watcher = nil
	return err
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, out chan<- string) {
	defer close(out)
	defer w.Close()

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if w.accept(event) {
				pending[event.Name] = time.Now()
			} else if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				delete(pending, event.Name)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher: %v", err)

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < w.debounce {
					continue
				}
				delete(pending, path)
				select {
				case out <- path:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// accept reports whether event announces new or changed content in a
// visible regular file with a wanted extension.
func (w *Watcher) accept(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
		return false
	}
	if len(w.extensions) > 0 && !w.extensions[strings.ToLower(filepath.Ext(name))] {
		return false
	}
	info, err := os.Stat(event.Name)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
