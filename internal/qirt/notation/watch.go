package notation

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ReloadFunc is called after every reload attempt. On failure t is nil and the
// process-wide table is left untouched.
type ReloadFunc func(t *Table, err error)

// Watch reloads the notation file whenever it changes and installs the result with
// Replace. It blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, onReload ReloadFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create notation watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve notation path: %w", err)
	}

	// Watch the directory so that atomic saves (write + rename) are seen
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			t, err := Load(abs)
			if err == nil {
				Replace(t)
			}
			if onReload != nil {
				onReload(t, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if onReload != nil {
				onReload(nil, err)
			}
		}
	}
}
