package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

// InstanceGuard holds the single-instance lock.
type InstanceGuard struct {
	lock *flock.Flock
}

// AcquireSingleInstance takes a non-blocking exclusive lock on
// <dir>/<app>.lock. The lock is released by the OS if the process dies.
func AcquireSingleInstance(dir, appName string) (*InstanceGuard, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, slugName(appName)+".lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire instance lock: %w", err)
	}
	if !locked {
		return nil, ErrAlreadyRunning
	}
	return &InstanceGuard{lock: lock}, nil
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.lock == nil {
		return nil
	}
	return guard.lock.Unlock()
}

// Path returns the lock file location.
func (guard *InstanceGuard) Path() string {
	if guard == nil || guard.lock == nil {
		return ""
	}
	return guard.lock.Path()
}
