package cli

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"droplet/internal/core/model"
	"droplet/internal/platform"
	"droplet/internal/storage"
)

type fakeService struct {
	configDir string
	enabled   map[string]string
}

func (service *fakeService) GetConfigDir() (string, error) {
	return service.configDir, nil
}

func (service *fakeService) EnableAutostart(appName, execPath string) error {
	service.enabled[appName] = execPath
	return nil
}

func (service *fakeService) DisableAutostart(appName string) error {
	delete(service.enabled, appName)
	return nil
}

func (service *fakeService) AutostartEnabled(appName string) (bool, error) {
	_, ok := service.enabled[appName]
	return ok, nil
}

// execute runs the root command against a temp settings file and a fake
// platform service.
func execute(t *testing.T, service *fakeService, args ...string) (string, error) {
	t.Helper()

	previous := newService
	newService = func() platform.Service { return service }
	t.Cleanup(func() {
		newService = previous
		configPath = ""
		verbose = false
		configInitForce = false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func newFakeService(t *testing.T) *fakeService {
	return &fakeService{configDir: t.TempDir(), enabled: map[string]string{}}
}

func TestConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	out, err := execute(t, newFakeService(t), "config", "path", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, path, strings.TrimSpace(out))
}

func TestConfigShowPrintsDefaultsForMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	out, err := execute(t, newFakeService(t), "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "work_minutes: 25")
	assert.Contains(t, out, "workflow_count: 4")
	assert.NoFileExists(t, path)
}

func TestConfigInitWritesDefaultsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	service := newFakeService(t)

	out, err := execute(t, service, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	loaded, err := storage.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), loaded)

	_, err = execute(t, service, "config", "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, service, "config", "init", "--force", "--config", path)
	require.NoError(t, err)
}

func TestAutostartEnableRecordsSetting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	service := newFakeService(t)

	out, err := execute(t, service, "autostart", "enable", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "launch at login enabled")
	assert.Contains(t, service.enabled, appName)

	loaded, err := storage.LoadSettings(path)
	require.NoError(t, err)
	assert.True(t, loaded.LaunchAtLogin)

	out, err = execute(t, service, "autostart", "status", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "enabled", strings.TrimSpace(out))

	_, err = execute(t, service, "autostart", "disable", "--config", path)
	require.NoError(t, err)
	assert.Empty(t, service.enabled)

	loaded, err = storage.LoadSettings(path)
	require.NoError(t, err)
	assert.False(t, loaded.LaunchAtLogin)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for input, want := range tests {
		assert.Equal(t, want, parseLevel(input), "input %q", input)
	}
}

func TestNewLoggerTagsRun(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")

	var out bytes.Buffer
	logger := newLogger(&out)
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "shown")
	assert.Contains(t, out.String(), "run=")
}

func TestAcquireInstanceUsesAppDirectory(t *testing.T) {
	service := newFakeService(t)
	previous := newService
	newService = func() platform.Service { return service }
	t.Cleanup(func() { newService = previous })

	guard, err := acquireInstance()
	require.NoError(t, err)
	defer guard.Release()

	assert.Equal(t, filepath.Join(service.configDir, appName, appName+".lock"), guard.Path())
	_, err = os.Stat(guard.Path())
	assert.NoError(t, err)

	_, err = acquireInstance()
	assert.ErrorIs(t, err, platform.ErrAlreadyRunning)
}
