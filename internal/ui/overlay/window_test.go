package overlay

import (
	"testing"

	"droplet/internal/core/model"
	"droplet/internal/core/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderShowsSnapshot(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	overlay := New(app, Callbacks{})
	defer overlay.Close()

	settings := model.DefaultSettings()
	settings.WorkflowCount = 6
	settings.TimerFontSize = 30
	overlay.render(settings, timer.Snapshot{
		Phase:              timer.PhaseWork,
		Status:             timer.StatusPaused,
		RemainingSeconds:   605,
		TotalSeconds:       1500,
		CompletedWorkflows: 2,
	})

	assert.Equal(t, "10:05", overlay.timerLabel.Text)
	assert.Equal(t, float32(30), overlay.timerLabel.TextSize)
	assert.Equal(t, "Work · paused", overlay.phaseLabel.Text)
	assert.Len(t, overlay.dotBox.Objects, 6)
	assert.InDelta(t, 895.0/1500.0, overlay.panel.progress, 1e-6)
	assert.False(t, overlay.toggleButton.Disabled())
	assert.True(t, overlay.continueButton.Disabled())
	assert.False(t, overlay.pulse.Running())
}

func TestRenderAwaitingConfirmEnablesContinue(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	overlay := New(app, Callbacks{})
	defer overlay.Close()

	overlay.render(model.DefaultSettings(), timer.Snapshot{
		Phase:              timer.PhaseShortBreak,
		Status:             timer.StatusAwaitingConfirm,
		TotalSeconds:       300,
		CompletedWorkflows: 1,
	})

	assert.Equal(t, "00:00", overlay.timerLabel.Text)
	assert.Equal(t, "Break · press space", overlay.phaseLabel.Text)
	assert.True(t, overlay.toggleButton.Disabled())
	assert.False(t, overlay.continueButton.Disabled())
	assert.True(t, overlay.pulse.Running())
}

func TestHandleKeyDispatchesCallbacks(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var calls []string
	record := func(name string) func() {
		return func() { calls = append(calls, name) }
	}
	overlay := New(app, Callbacks{
		OnActivate:    record("activate"),
		OnContinue:    record("continue"),
		OnReset:       record("reset"),
		OnEnd:         record("end"),
		OnPreferences: record("preferences"),
	})
	defer overlay.Close()

	for _, key := range []fyne.KeyName{fyne.KeySpace, fyne.KeyReturn, fyne.KeyN, fyne.KeyR, fyne.KeyE, fyne.KeyComma, fyne.KeyX} {
		overlay.handleKey(&fyne.KeyEvent{Name: key})
	}

	assert.Equal(t, []string{"activate", "continue", "continue", "reset", "end", "preferences"}, calls)
}

func TestDotsLayout(t *testing.T) {
	layout := &dotsLayout{}
	objects := []fyne.CanvasObject{canvas.NewCircle(nil), canvas.NewCircle(nil), canvas.NewCircle(nil)}

	size := layout.MinSize(objects)
	assert.Equal(t, fyne.NewSize(3*dotDiameter+2*dotSpacing, dotDiameter), size)

	layout.Layout(objects, size)
	require.Len(t, objects, 3)
	assert.Equal(t, fyne.NewPos(2*(dotDiameter+dotSpacing), 0), objects[2].Position())
	assert.Equal(t, fyne.NewSize(0, dotDiameter), layout.MinSize(nil))
}

func TestTimerLayoutScalesProgressFill(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	objects := []fyne.CanvasObject{
		canvas.NewText("Work", nil),
		canvas.NewText("25:00", nil),
		canvas.NewRectangle(nil),
		canvas.NewRectangle(nil),
		canvas.NewRectangle(nil),
		canvas.NewRectangle(nil),
	}
	layout := &timerLayout{progress: 0.25}
	layout.Layout(objects, fyne.NewSize(240, 170))

	track := objects[2].Size()
	fill := objects[3].Size()
	assert.Equal(t, float32(200), track.Width)
	assert.InDelta(t, 50, fill.Width, 1e-4)

	layout.progress = 2
	layout.Layout(objects, fyne.NewSize(240, 170))
	assert.Equal(t, track.Width, objects[3].Size().Width)
}

func TestPhaseCaption(t *testing.T) {
	assert.Equal(t, "Long Break", phaseCaption(timer.Snapshot{Phase: timer.PhaseLongBreak, Status: timer.StatusRunning}))
	assert.Equal(t, "Work", phaseCaption(timer.Snapshot{Phase: timer.PhaseWork, Status: timer.StatusIdle}))
}
