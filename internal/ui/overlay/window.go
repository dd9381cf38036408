package overlay

import (
	"context"
	"image/color"

	"droplet/internal/core/model"
	"droplet/internal/core/timer"
	"droplet/internal/ui/animation"
	"droplet/internal/ui/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	fynetheme "fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Callbacks defines the timer actions triggered from the window.
type Callbacks struct {
	OnActivate    func()
	OnToggle      func()
	OnReset       func()
	OnContinue    func()
	OnEnd         func()
	OnPreferences func()
}

// Window is the small floating timer.
type Window struct {
	window         fyne.Window
	background     *canvas.Rectangle
	timerLabel     *canvas.Text
	phaseLabel     *canvas.Text
	progressTrack  *canvas.Rectangle
	progressFill   *canvas.Rectangle
	dotBox         *fyne.Container
	toggleButton   *widget.Button
	continueButton *widget.Button
	panel          *timerLayout
	pulse          *animation.Pulse
	callbacks      Callbacks

	palette  theme.Palette
	settings model.Settings
	snapshot timer.Snapshot
	opacity  float64
}

const (
	minWindowWidth  = float32(240)
	minWindowHeight = float32(170)
	dotDiameter     = float32(8)
	dotSpacing      = float32(6)
	progressHeight  = float32(4)
)

// New creates the timer window.
func New(app fyne.App, callbacks Callbacks) *Window {
	window := app.NewWindow("Droplet")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.Black)
	background.CornerRadius = 12

	timerLabel := canvas.NewText("--:--", color.White)
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Monospace: true}

	phaseLabel := canvas.NewText("", color.White)
	phaseLabel.Alignment = fyne.TextAlignCenter
	phaseLabel.TextSize = 12

	progressTrack := canvas.NewRectangle(color.Transparent)
	progressTrack.CornerRadius = progressHeight / 2
	progressFill := canvas.NewRectangle(color.Transparent)
	progressFill.CornerRadius = progressHeight / 2

	dotBox := container.New(&dotsLayout{})

	overlay := &Window{
		window:        window,
		background:    background,
		timerLabel:    timerLabel,
		phaseLabel:    phaseLabel,
		progressTrack: progressTrack,
		progressFill:  progressFill,
		dotBox:        dotBox,
		panel:         &timerLayout{},
		callbacks:     callbacks,
		opacity:       1,
	}

	overlay.toggleButton = widget.NewButtonWithIcon("", fynetheme.MediaPlayIcon(), func() {
		overlay.invoke(overlay.callbacks.OnToggle)
	})
	resetButton := widget.NewButtonWithIcon("", fynetheme.MediaReplayIcon(), func() {
		overlay.invoke(overlay.callbacks.OnReset)
	})
	overlay.continueButton = widget.NewButtonWithIcon("", fynetheme.MediaSkipNextIcon(), func() {
		overlay.invoke(overlay.callbacks.OnContinue)
	})
	endButton := widget.NewButtonWithIcon("", fynetheme.MediaStopIcon(), func() {
		overlay.invoke(overlay.callbacks.OnEnd)
	})
	settingsButton := widget.NewButtonWithIcon("", fynetheme.SettingsIcon(), func() {
		overlay.invoke(overlay.callbacks.OnPreferences)
	})
	buttons := container.NewHBox(overlay.toggleButton, resetButton, overlay.continueButton, endButton, settingsButton)

	panel := container.New(overlay.panel, phaseLabel, timerLabel, progressTrack, progressFill, dotBox, container.NewCenter(buttons))
	window.SetContent(container.NewStack(background, panel))
	window.Resize(fyne.NewSize(minWindowWidth, minWindowHeight))
	window.Canvas().SetOnTypedKey(overlay.handleKey)

	overlay.pulse = animation.New(animation.DefaultConfig(), overlay.setOpacity)
	overlay.render(model.DefaultSettings(), timer.Snapshot{Phase: timer.PhaseWork, Status: timer.StatusIdle})
	return overlay
}

// Show brings the window to the front.
func (overlay *Window) Show() {
	overlay.window.Show()
	overlay.window.RequestFocus()
	overlay.applyAlwaysOnTop(overlay.settings.AlwaysOnTop)
}

// Hide hides the window without stopping the timer.
func (overlay *Window) Hide() {
	overlay.window.Hide()
}

// SetCloseIntercept replaces the default close behaviour.
func (overlay *Window) SetCloseIntercept(handler func()) {
	overlay.window.SetCloseIntercept(handler)
}

// Update redraws the window for a new engine state or settings change.
// It is safe to call from any goroutine.
func (overlay *Window) Update(snapshot timer.Snapshot, settings model.Settings) {
	fyne.Do(func() {
		overlay.render(settings, snapshot)
	})
}

// Close stops the pulse animation.
func (overlay *Window) Close() {
	overlay.pulse.Stop()
}

func (overlay *Window) render(settings model.Settings, snapshot timer.Snapshot) {
	if settings.AlwaysOnTop != overlay.settings.AlwaysOnTop {
		overlay.applyAlwaysOnTop(settings.AlwaysOnTop)
	}
	overlay.settings = settings
	overlay.snapshot = snapshot
	overlay.palette = theme.Parse(settings.Theme)

	text := theme.ParseHex(overlay.palette.Text)
	accent := theme.ParseHex(overlay.palette.Accent(snapshot.Phase))

	overlay.background.FillColor = theme.WithAlpha(theme.ParseHex(overlay.palette.Background), 0.95)
	if settings.EnableGlow {
		overlay.background.StrokeColor = theme.WithAlpha(accent, 0.6)
		overlay.background.StrokeWidth = 2
	} else {
		overlay.background.StrokeWidth = 0
	}
	overlay.background.Refresh()

	overlay.timerLabel.Text = snapshot.FormattedTime()
	overlay.timerLabel.TextSize = float32(settings.TimerFontSize)
	overlay.timerLabel.Color = theme.WithAlpha(text, overlay.opacity)
	overlay.timerLabel.Refresh()

	overlay.phaseLabel.Text = phaseCaption(snapshot)
	overlay.phaseLabel.Color = theme.WithAlpha(text, 0.7)
	overlay.phaseLabel.Refresh()

	overlay.progressTrack.FillColor = theme.WithAlpha(text, 0.2)
	overlay.progressTrack.Refresh()
	overlay.progressFill.FillColor = accent
	overlay.progressFill.Refresh()
	overlay.panel.progress = float32(snapshot.Progress())

	overlay.renderDots(theme.Dots(snapshot, settings.WorkflowCount), text, accent)

	if snapshot.Status == timer.StatusRunning {
		overlay.toggleButton.SetIcon(fynetheme.MediaPauseIcon())
	} else {
		overlay.toggleButton.SetIcon(fynetheme.MediaPlayIcon())
	}
	if snapshot.Pulsing() {
		overlay.toggleButton.Disable()
		overlay.continueButton.Enable()
	} else {
		overlay.toggleButton.Enable()
		overlay.continueButton.Disable()
	}

	overlay.pulse.SetRunning(context.Background(), snapshot.Pulsing())
	overlay.window.Content().Refresh()
}

func (overlay *Window) renderDots(states []theme.DotState, text, accent color.NRGBA) {
	if len(overlay.dotBox.Objects) != len(states) {
		objects := make([]fyne.CanvasObject, len(states))
		for index := range objects {
			objects[index] = canvas.NewCircle(color.Transparent)
		}
		overlay.dotBox.Objects = objects
	}
	for index, state := range states {
		circle := overlay.dotBox.Objects[index].(*canvas.Circle)
		circle.StrokeWidth = 0
		switch state {
		case theme.DotDone:
			circle.FillColor = accent
		case theme.DotCurrent:
			circle.FillColor = theme.WithAlpha(text, 0.3)
			circle.StrokeColor = accent
			circle.StrokeWidth = 1.5
		default:
			circle.FillColor = theme.WithAlpha(text, 0.3)
		}
		circle.Refresh()
	}
	overlay.dotBox.Refresh()
}

func (overlay *Window) setOpacity(opacity float64) {
	fyne.Do(func() {
		overlay.opacity = opacity
		overlay.timerLabel.Color = theme.WithAlpha(theme.ParseHex(overlay.palette.Text), opacity)
		overlay.timerLabel.Refresh()
	})
}

func (overlay *Window) handleKey(event *fyne.KeyEvent) {
	switch event.Name {
	case fyne.KeySpace:
		overlay.invoke(overlay.callbacks.OnActivate)
	case fyne.KeyReturn, fyne.KeyEnter, fyne.KeyN:
		overlay.invoke(overlay.callbacks.OnContinue)
	case fyne.KeyR:
		overlay.invoke(overlay.callbacks.OnReset)
	case fyne.KeyE:
		overlay.invoke(overlay.callbacks.OnEnd)
	case fyne.KeyComma:
		overlay.invoke(overlay.callbacks.OnPreferences)
	}
}

func (overlay *Window) invoke(handler func()) {
	if handler != nil {
		handler()
	}
}

func phaseCaption(snapshot timer.Snapshot) string {
	switch snapshot.Status {
	case timer.StatusPaused:
		return snapshot.Phase.Label() + " · paused"
	case timer.StatusAwaitingConfirm:
		return snapshot.Phase.Label() + " · press space"
	default:
		return snapshot.Phase.Label()
	}
}

// timerLayout stacks the phase caption, time, progress bar, dots and buttons.
type timerLayout struct {
	progress float32
}

func (layout *timerLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 6 {
		return
	}
	phase := objects[0]
	timerText := objects[1]
	track := objects[2]
	fill := objects[3]
	dots := objects[4]
	buttons := objects[5]

	pad := float32(12)
	width := size.Width - pad*2
	if width < 0 {
		width = 0
	}

	y := pad
	phaseSize := phase.MinSize()
	phase.Move(fyne.NewPos(pad, y))
	phase.Resize(fyne.NewSize(width, phaseSize.Height))
	y += phaseSize.Height

	timerSize := timerText.MinSize()
	timerText.Move(fyne.NewPos(pad, y))
	timerText.Resize(fyne.NewSize(width, timerSize.Height))
	y += timerSize.Height + 6

	barInset := pad + 8
	barWidth := size.Width - barInset*2
	if barWidth < 0 {
		barWidth = 0
	}
	track.Move(fyne.NewPos(barInset, y))
	track.Resize(fyne.NewSize(barWidth, progressHeight))
	fill.Move(fyne.NewPos(barInset, y))
	fill.Resize(fyne.NewSize(barWidth*clampRatio(layout.progress), progressHeight))
	y += progressHeight + 8

	dotsSize := dots.MinSize()
	dots.Move(fyne.NewPos((size.Width-dotsSize.Width)/2, y))
	dots.Resize(dotsSize)

	buttonsSize := buttons.MinSize()
	buttonsY := size.Height - pad - buttonsSize.Height
	if buttonsY < y+dotsSize.Height {
		buttonsY = y + dotsSize.Height + 4
	}
	buttons.Move(fyne.NewPos(pad, buttonsY))
	buttons.Resize(fyne.NewSize(width, buttonsSize.Height))
}

func (layout *timerLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 6 {
		return fyne.NewSize(0, 0)
	}
	phaseSize := objects[0].MinSize()
	timerSize := objects[1].MinSize()
	dotsSize := objects[4].MinSize()
	buttonsSize := objects[5].MinSize()

	width := timerSize.Width
	for _, candidate := range []float32{phaseSize.Width, dotsSize.Width, buttonsSize.Width} {
		if candidate > width {
			width = candidate
		}
	}
	height := phaseSize.Height + timerSize.Height + 6 + progressHeight + 8 + dotsSize.Height + 4 + buttonsSize.Height
	return fyne.NewSize(width+24, height+24)
}

// dotsLayout places fixed-size circles in a single row.
type dotsLayout struct{}

func (layout *dotsLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	x := float32(0)
	y := (size.Height - dotDiameter) / 2
	for _, object := range objects {
		object.Move(fyne.NewPos(x, y))
		object.Resize(fyne.NewSize(dotDiameter, dotDiameter))
		x += dotDiameter + dotSpacing
	}
}

func (layout *dotsLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) == 0 {
		return fyne.NewSize(0, dotDiameter)
	}
	count := float32(len(objects))
	return fyne.NewSize(count*dotDiameter+(count-1)*dotSpacing, dotDiameter)
}

func clampRatio(value float32) float32 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
