package preferences

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"droplet/internal/core/model"
)

func TestWindowShowsStoredSettings(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	settings := model.DefaultSettings()
	settings.WorkMinutes = 50
	settings.Theme = "plum"
	prefs := New(app, settings, nil)

	assert.Equal(t, "50", prefs.workMin.Text)
	assert.Equal(t, "Plum", prefs.themes.Selected)
	assert.Equal(t, settings.TimerFontSize, prefs.fontSize.Value)
	assert.True(t, prefs.autoStart.Checked)
}

func TestSaveSubmitsEditedSettings(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var saved []model.Settings
	prefs := New(app, model.DefaultSettings(), func(settings model.Settings) error {
		saved = append(saved, settings)
		return nil
	})

	prefs.workMin.SetText("45")
	prefs.workflows.SetText("6")
	prefs.glow.SetChecked(true)
	prefs.themes.SetSelected("Noir")
	prefs.handleSave()

	require.Len(t, saved, 1)
	assert.Equal(t, 45, saved[0].WorkMinutes)
	assert.Equal(t, 6, saved[0].WorkflowCount)
	assert.True(t, saved[0].EnableGlow)
	assert.Equal(t, "Noir", saved[0].Theme)
	assert.Equal(t, saved[0], prefs.settings)
}

func TestSaveErrorKeepsPreviousSettings(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	prefs := New(app, model.DefaultSettings(), func(model.Settings) error {
		return errors.New("disk full")
	})
	prefs.workMin.SetText("45")
	prefs.handleSave()

	assert.Equal(t, model.DefaultSettings(), prefs.settings)
	assert.Equal(t, "45", prefs.workMin.Text)
}

func TestSaveRejectsInvalidNumbers(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	calls := 0
	prefs := New(app, model.DefaultSettings(), func(model.Settings) error {
		calls++
		return nil
	})
	prefs.workMin.SetText("soon")
	prefs.handleSave()

	assert.Zero(t, calls)
	assert.Equal(t, model.DefaultSettings(), prefs.settings)
	assert.Equal(t, "soon", prefs.workMin.Text)
}
