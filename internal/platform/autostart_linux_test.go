//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDesktopEntryQuotesPathsWithSpaces(t *testing.T) {
	entry := buildDesktopEntry("droplet", "/opt/my apps/droplet")
	assert.Contains(t, entry, `Exec="/opt/my apps/droplet"`)
	assert.Contains(t, entry, "Name=droplet")
	assert.Contains(t, entry, "X-GNOME-Autostart-enabled=true")
}

func TestAutostartRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	service := NewService()

	enabled, err := service.AutostartEnabled("droplet")
	require.NoError(t, err)
	assert.False(t, enabled)

	require.NoError(t, service.EnableAutostart("droplet", "/usr/bin/droplet"))
	enabled, err = service.AutostartEnabled("droplet")
	require.NoError(t, err)
	assert.True(t, enabled)

	configDir, err := service.GetConfigDir()
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(configDir, "autostart", "droplet.desktop"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Exec=/usr/bin/droplet")

	require.NoError(t, service.DisableAutostart("droplet"))
	require.NoError(t, service.DisableAutostart("droplet"))
	enabled, err = service.AutostartEnabled("droplet")
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestAutostartRejectsEmptyArguments(t *testing.T) {
	service := NewService()
	assert.Error(t, service.EnableAutostart("", "/usr/bin/droplet"))
	assert.Error(t, service.EnableAutostart("droplet", ""))
	assert.Error(t, service.DisableAutostart(""))
}

func TestAppConfigDir(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)

	dir, err := AppConfigDir(NewService(), "droplet")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "droplet"), dir)
}
