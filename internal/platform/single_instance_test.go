package platform

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireSingleInstance(t *testing.T) {
	dir := t.TempDir()

	first, err := AcquireSingleInstance(dir, "Droplet Test")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "droplet-test.lock"), first.Path())

	second, err := AcquireSingleInstance(dir, "Droplet Test")
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	assert.Nil(t, second)

	require.NoError(t, first.Release())

	third, err := AcquireSingleInstance(dir, "Droplet Test")
	require.NoError(t, err)
	require.NoError(t, third.Release())
}

func TestReleaseNilGuard(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Path())
}

func TestSlugName(t *testing.T) {
	assert.Equal(t, "droplet", slugName(""))
	assert.Equal(t, "my-timer", slugName(" My Timer "))
}
