package cli

import (
	"context"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"

	"droplet/internal/core/model"
	"droplet/internal/core/timer"
	"droplet/internal/notify"
	"droplet/internal/platform"
	"droplet/internal/storage"
	"droplet/internal/ui/overlay"
	"droplet/internal/ui/preferences"
	"droplet/internal/ui/tray"
	"droplet/resources"
)

func runGUI(cmd *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr)

	guard, err := acquireInstance()
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	store, err := openStore(logger)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if err := storage.Watch(ctx, store); err != nil {
		logger.Warn("settings hot reload disabled", "error", err)
	}

	fyneApp := app.NewWithID("com.droplet.app")
	fyneApp.SetIcon(resources.AppIcon())

	notifier := notify.NewFanout(logger, notify.NewDesktop(fyneApp, logger))
	engine := timer.New(store, notifier, timer.Config{Logger: logger})

	var prefsWindow *preferences.Window
	timerWindow := overlay.New(fyneApp, overlay.Callbacks{
		OnActivate:    engine.Activate,
		OnToggle:      engine.ToggleStartPause,
		OnReset:       engine.ResetCurrentPhase,
		OnContinue:    engine.ContinueToNextPhase,
		OnEnd:         engine.EndCurrentSession,
		OnPreferences: func() { prefsWindow.Show() },
	})
	prefsWindow = preferences.New(fyneApp, store.Settings(), store.Update)

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnToggle:      engine.ToggleStartPause,
			OnReset:       engine.ResetCurrentPhase,
			OnContinue:    engine.ContinueToNextPhase,
			OnEnd:         engine.EndCurrentSession,
			OnShow:        timerWindow.Show,
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(resources.TrayIcon())
		timerWindow.SetCloseIntercept(timerWindow.Hide)
	} else {
		logger.Info("system tray unsupported, closing the window quits")
	}

	render := func(snapshot timer.Snapshot) {
		settings := store.Settings()
		timerWindow.Update(snapshot, settings)
		if trayManager != nil {
			fyne.Do(func() {
				trayManager.Update(snapshot, settings)
			})
		}
	}

	service := newService()
	syncAutostart(service, store.Settings(), logger)
	store.OnChange(func(settings model.Settings) {
		engine.ApplySettings()
		syncAutostart(service, settings, logger)
		fyne.Do(func() {
			prefsWindow.UpdateSettings(settings)
		})
		render(engine.Snapshot())
	})

	events := engine.Subscribe(8)
	go func() {
		for event := range events {
			render(event.Snapshot)
		}
	}()

	engine.Start()
	render(engine.Snapshot())
	timerWindow.Show()
	fyneApp.Run()

	engine.Stop()
	timerWindow.Close()
	return nil
}

// syncAutostart registers or removes the login item when it disagrees with
// the settings.
func syncAutostart(service platform.Service, settings model.Settings, logger *slog.Logger) {
	enabled, err := service.AutostartEnabled(appName)
	if err == nil && enabled == settings.LaunchAtLogin {
		return
	}
	if err := platform.SyncAutostart(service, appName, settings.LaunchAtLogin); err != nil {
		logger.Warn("update launch at login", "enabled", settings.LaunchAtLogin, "error", err)
		return
	}
	logger.Info("launch at login updated", "enabled", settings.LaunchAtLogin)
}
