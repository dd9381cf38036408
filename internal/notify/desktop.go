package notify

import (
	"io"
	"log/slog"

	"droplet/internal/core/timer"

	"fyne.io/fyne/v2"
)

// Desktop sends system notifications through the fyne app.
type Desktop struct {
	app    fyne.App
	logger *slog.Logger
}

// NewDesktop creates a desktop notifier.
func NewDesktop(app fyne.App, logger *slog.Logger) *Desktop {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Desktop{app: app, logger: logger.With("component", "notify")}
}

// PhaseEnded queues the notification on the UI thread and returns at once.
func (desktop *Desktop) PhaseEnded(phase timer.Phase) {
	message := MessageFor(phase)
	fyne.Do(func() {
		defer func() {
			if recovered := recover(); recovered != nil {
				desktop.logger.Error("send notification", "phase", phase, "panic", recovered)
			}
		}()
		desktop.app.SendNotification(fyne.NewNotification(message.Title, message.Body))
	})
}
