// Package cli wires the timer engine, settings and front ends into the droplet
// command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"droplet/internal/platform"
	"droplet/internal/storage"
)

const appName = "droplet"

var (
	configPath string
	verbose    bool

	// newService is replaced in tests.
	newService = platform.NewService
)

var rootCmd = &cobra.Command{
	Use:   "droplet",
	Short: "A small Pomodoro focus timer",
	Long: `Droplet counts down work sessions and breaks.

Every workflow is a work session followed by a short break; after the
configured number of workflows the short break becomes a long break.

Running droplet without a subcommand opens the desktop window and tray icon.
Use "droplet tui" to run the same timer in the terminal.`,
	SilenceUsage: true,
	RunE:         runGUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default <user config dir>/droplet/settings.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		// Error already printed by cobra
		return 1
	}
	return 0
}

func settingsPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return storage.DefaultPath(appName)
}

func appDir() (string, error) {
	dir, err := platform.AppConfigDir(newService(), appName)
	if err != nil {
		return "", fmt.Errorf("resolve app directory: %w", err)
	}
	return dir, nil
}

// newLogger builds the process logger. LOG_LEVEL selects the level and
// --verbose forces debug.
func newLogger(w io.Writer) *slog.Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("run", uuid.NewString())
}

func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openLogFile opens the append-only log used when stdout belongs to the
// terminal UI.
func openLogFile() (*os.File, error) {
	dir, err := appDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(filepath.Join(dir, appName+".log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}

// acquireInstance makes sure only one timer runs per user.
func acquireInstance() (*platform.InstanceGuard, error) {
	dir, err := appDir()
	if err != nil {
		return nil, err
	}
	guard, err := platform.AcquireSingleInstance(dir, appName)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", appName, err)
	}
	return guard, nil
}

func openStore(logger *slog.Logger) (*storage.Store, error) {
	path, err := settingsPath()
	if err != nil {
		return nil, err
	}
	store, err := storage.OpenStore(path, logger)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	logger.Debug("settings loaded", "path", path)
	return store, nil
}
