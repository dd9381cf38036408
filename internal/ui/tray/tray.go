package tray

import (
	"fmt"

	"droplet/internal/core/model"
	"droplet/internal/core/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnToggle      func()
	OnReset       func()
	OnContinue    func()
	OnEnd         func()
	OnShow        func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app          desktop.App
	callbacks    Callbacks
	statusItem   *fyne.MenuItem
	toggleItem   *fyne.MenuItem
	continueItem *fyne.MenuItem
	resetItem    *fyne.MenuItem
	endItem      *fyne.MenuItem
	statusLabel  string
}

// New creates a tray manager with the provided callbacks. app may be nil when
// the driver has no system tray.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Droplet", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("Start", action(callbacks.OnToggle))
	manager.continueItem = fyne.NewMenuItem("Continue", action(callbacks.OnContinue))
	manager.continueItem.Disabled = true
	manager.resetItem = fyne.NewMenuItem("Reset", action(callbacks.OnReset))
	manager.endItem = fyne.NewMenuItem("End session", action(callbacks.OnEnd))

	manager.refreshMenu()
	return manager
}

// Update reflects the engine state in the menu.
func (manager *Manager) Update(snapshot timer.Snapshot, settings model.Settings) {
	status := StatusLabel(snapshot, settings.ShowMenuBarTimer)
	toggle := "Start"
	switch snapshot.Status {
	case timer.StatusRunning:
		toggle = "Pause"
	case timer.StatusPaused:
		toggle = "Resume"
	}
	pulsing := snapshot.Pulsing()
	if status == manager.statusLabel && toggle == manager.toggleItem.Label && pulsing == manager.toggleItem.Disabled {
		return
	}

	manager.statusLabel = status
	manager.statusItem.Label = status
	manager.toggleItem.Label = toggle
	manager.toggleItem.Disabled = pulsing
	manager.continueItem.Disabled = !pulsing
	manager.refreshMenu()
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.statusLabel
}

// StatusLabel is the text shown at the top of the tray menu. The countdown is
// included only when the menu bar timer is enabled.
func StatusLabel(snapshot timer.Snapshot, showTimer bool) string {
	label := snapshot.Phase.Label()
	if showTimer {
		label = fmt.Sprintf("%s %s", label, snapshot.FormattedTime())
	}
	switch snapshot.Status {
	case timer.StatusPaused:
		label += " (paused)"
	case timer.StatusAwaitingConfirm:
		label += " (waiting)"
	}
	return label
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	callbacks := manager.callbacks
	quit := fyne.NewMenuItem("Quit", action(callbacks.OnQuit))
	quit.IsQuit = true
	manager.app.SetSystemTrayMenu(fyne.NewMenu("Droplet",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		manager.continueItem,
		manager.resetItem,
		manager.endItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show timer", action(callbacks.OnShow)),
		fyne.NewMenuItem("Preferences", action(callbacks.OnPreferences)),
		quit,
	))
}

func action(handler func()) func() {
	return func() {
		if handler != nil {
			handler()
		}
	}
}
