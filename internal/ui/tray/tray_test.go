package tray

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"droplet/internal/core/model"
	"droplet/internal/core/timer"
)

type fakeTray struct {
	desktop.App
	menus []*fyne.Menu
}

func (fake *fakeTray) SetSystemTrayMenu(menu *fyne.Menu) {
	fake.menus = append(fake.menus, menu)
}

func (fake *fakeTray) last() *fyne.Menu {
	return fake.menus[len(fake.menus)-1]
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		name      string
		snapshot  timer.Snapshot
		showTimer bool
		want      string
	}{
		{"running with timer", timer.Snapshot{Phase: timer.PhaseWork, Status: timer.StatusRunning, RemainingSeconds: 754}, true, "Work 12:34"},
		{"running without timer", timer.Snapshot{Phase: timer.PhaseWork, Status: timer.StatusRunning, RemainingSeconds: 754}, false, "Work"},
		{"paused break", timer.Snapshot{Phase: timer.PhaseShortBreak, Status: timer.StatusPaused, RemainingSeconds: 60}, true, "Break 01:00 (paused)"},
		{"awaiting long break", timer.Snapshot{Phase: timer.PhaseLongBreak, Status: timer.StatusAwaitingConfirm}, false, "Long Break (waiting)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusLabel(tt.snapshot, tt.showTimer))
		})
	}
}

func TestUpdateRefreshesMenuOnlyOnChange(t *testing.T) {
	app := &fakeTray{}
	manager := New(app, Callbacks{})
	require.Len(t, app.menus, 1)

	settings := model.DefaultSettings()
	running := timer.Snapshot{Phase: timer.PhaseWork, Status: timer.StatusRunning, RemainingSeconds: 1499, TotalSeconds: 1500}
	manager.Update(running, settings)
	manager.Update(running, settings)
	require.Len(t, app.menus, 2)
	assert.Equal(t, "Work 24:59", manager.Status())
	assert.Equal(t, "Pause", manager.toggleItem.Label)
	assert.True(t, manager.continueItem.Disabled)

	awaiting := timer.Snapshot{Phase: timer.PhaseShortBreak, Status: timer.StatusAwaitingConfirm, TotalSeconds: 300, CompletedWorkflows: 1}
	manager.Update(awaiting, settings)
	require.Len(t, app.menus, 3)
	assert.Equal(t, "Start", manager.toggleItem.Label)
	assert.True(t, manager.toggleItem.Disabled)
	assert.False(t, manager.continueItem.Disabled)
}

func TestMenuItemsInvokeCallbacks(t *testing.T) {
	var calls []string
	record := func(name string) func() {
		return func() { calls = append(calls, name) }
	}
	app := &fakeTray{}
	New(app, Callbacks{
		OnToggle:      record("toggle"),
		OnContinue:    record("continue"),
		OnReset:       record("reset"),
		OnEnd:         record("end"),
		OnShow:        record("show"),
		OnPreferences: record("preferences"),
		OnQuit:        record("quit"),
	})

	for _, item := range app.last().Items {
		if item.Action != nil {
			item.Action()
		}
	}
	assert.Equal(t, []string{"toggle", "continue", "reset", "end", "show", "preferences", "quit"}, calls)

	quit := app.last().Items[len(app.last().Items)-1]
	assert.True(t, quit.IsQuit)
}

func TestNilAppIsAllowed(t *testing.T) {
	manager := New(nil, Callbacks{})
	manager.Update(timer.Snapshot{Phase: timer.PhaseWork, Status: timer.StatusIdle, RemainingSeconds: 1500}, model.DefaultSettings())
	assert.Equal(t, "Work 25:00", manager.Status())
}
