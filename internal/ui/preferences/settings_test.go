package preferences

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"droplet/internal/core/model"
)

func TestFieldsRoundTrip(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Theme = "Teal"
	settings.LaunchAtLogin = true

	applied, err := FieldsFrom(settings).Apply(model.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, settings, applied)
}

func TestApplyRejectsInvalidNumbers(t *testing.T) {
	base := model.DefaultSettings()
	fields := FieldsFrom(base)
	fields.WorkMinutes = "abc"
	fields.ShortBreakMinutes = "-3"
	fields.LongBreakMinutes = " 20 "
	fields.WorkflowCount = ""
	fields.EnableGlow = true

	settings, err := fields.Apply(base)
	require.ErrorIs(t, err, ErrInvalidField)
	assert.Equal(t, "Work, Short break, Workflows before long break: must be a positive whole number", err.Error())
	assert.Equal(t, base, settings)
}

func TestApplyTrimsNumbers(t *testing.T) {
	fields := FieldsFrom(model.DefaultSettings())
	fields.LongBreakMinutes = " 20 "

	settings, err := fields.Apply(model.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, 20, settings.LongBreakMinutes)
}

func TestApplyClampsOutOfRangeValues(t *testing.T) {
	fields := FieldsFrom(model.DefaultSettings())
	fields.WorkMinutes = "900"
	fields.WorkflowCount = "40"
	fields.TimerFontSize = 500

	settings, err := fields.Apply(model.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, model.MaxDurationMinutes, settings.WorkMinutes)
	assert.Equal(t, model.MaxWorkflowCount, settings.WorkflowCount)
	assert.Equal(t, float64(model.MaxTimerFontSize), settings.TimerFontSize)
}

func TestApplyCopiesToggles(t *testing.T) {
	fields := FieldsFrom(model.DefaultSettings())
	fields.AutoStartNextSession = false
	fields.ShowMenuBarTimer = false
	fields.EnableGlow = true
	fields.AlwaysOnTop = true

	settings, err := fields.Apply(model.DefaultSettings())
	require.NoError(t, err)
	assert.False(t, settings.AutoStartNextSession)
	assert.False(t, settings.ShowMenuBarTimer)
	assert.True(t, settings.EnableGlow)
	assert.True(t, settings.AlwaysOnTop)
}
