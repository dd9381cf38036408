package storage

import (
	"io"
	"log/slog"
	"slices"
	"sync"

	"droplet/internal/core/model"
)

// Store is the process-wide settings service. The timer engine reads it at
// every phase start; the preferences window and the file watcher write it.
type Store struct {
	mu        sync.RWMutex
	path      string
	settings  model.Settings
	listeners []func(model.Settings)
	logger    *slog.Logger
}

// NewStore wraps already loaded settings that persist to path.
func NewStore(path string, settings model.Settings, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		path:     path,
		settings: settings.Normalize(),
		logger:   logger.With("component", "settings"),
	}
}

// OpenStore loads settings from path and wraps them in a Store.
func OpenStore(path string, logger *slog.Logger) (*Store, error) {
	settings, err := LoadSettings(path)
	if err != nil {
		return nil, err
	}
	return NewStore(path, settings, logger), nil
}

// Path returns the backing settings file.
func (store *Store) Path() string {
	return store.path
}

// Settings returns the current settings.
func (store *Store) Settings() model.Settings {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.settings
}

// OnChange registers a listener called after every effective change.
func (store *Store) OnChange(listener func(model.Settings)) {
	store.mu.Lock()
	store.listeners = append(store.listeners, listener)
	store.mu.Unlock()
}

// Update persists new settings and notifies listeners.
func (store *Store) Update(settings model.Settings) error {
	settings = settings.Normalize()
	if err := SaveSettings(store.path, settings); err != nil {
		return err
	}
	store.Replace(settings)
	return nil
}

// Replace swaps the in-memory settings without writing the file.
// Identical settings are ignored so a save echoed back by the watcher is silent.
func (store *Store) Replace(settings model.Settings) {
	settings = settings.Normalize()

	store.mu.Lock()
	if store.settings == settings {
		store.mu.Unlock()
		return
	}
	store.settings = settings
	listeners := slices.Clone(store.listeners)
	store.mu.Unlock()

	store.logger.Info("settings changed",
		"work_minutes", settings.WorkMinutes,
		"short_break_minutes", settings.ShortBreakMinutes,
		"long_break_minutes", settings.LongBreakMinutes,
		"workflow_count", settings.WorkflowCount,
		"auto_start", settings.AutoStartNextSession,
	)
	for _, listener := range listeners {
		listener(settings)
	}
}
