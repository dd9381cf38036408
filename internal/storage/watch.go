package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the store whenever its settings file is written on disk.
// The directory is watched rather than the file so editors that save by
// renaming a temp file are picked up too. Watching stops when ctx is done.
func Watch(ctx context.Context, store *Store) error {
	path := filepath.Clean(store.Path())
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch config directory: %w", err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				reload(store, path)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				store.logger.Warn("settings watcher", "error", err)
			}
		}
	}()

	return nil
}

// reload pushes the file contents into the store. A missing or empty file is
// an editor mid-save, not a request to reset to defaults.
func reload(store *Store, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			store.logger.Warn("reload settings", "path", path, "error", err)
		}
		return
	}
	if len(bytes.TrimSpace(data)) == 0 {
		store.logger.Debug("settings file empty, skipping reload", "path", path)
		return
	}
	settings, err := parseSettings(data)
	if err != nil {
		store.logger.Warn("reload settings", "path", path, "error", err)
		return
	}
	store.Replace(settings)
}
