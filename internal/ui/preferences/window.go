package preferences

import (
	"fmt"

	"droplet/internal/core/model"
	"droplet/internal/ui/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window    fyne.Window
	settings  model.Settings
	onSave    func(model.Settings) error
	workMin   *widget.Entry
	shortMin  *widget.Entry
	longMin   *widget.Entry
	workflows *widget.Entry
	autoStart *widget.Check
	onTop     *widget.Check
	atLogin   *widget.Check
	menuTimer *widget.Check
	glow      *widget.Check
	themes    *widget.Select
	fontSize  *widget.Slider
	fontLabel *widget.Label
}

// New creates a preferences window. onSave persists the edited settings; a
// returned error is shown to the user and keeps the window open.
func New(app fyne.App, settings model.Settings, onSave func(model.Settings) error) *Window {
	window := app.NewWindow("Droplet Settings")

	prefs := &Window{
		window:    window,
		settings:  settings,
		onSave:    onSave,
		workMin:   widget.NewEntry(),
		shortMin:  widget.NewEntry(),
		longMin:   widget.NewEntry(),
		workflows: widget.NewEntry(),
		autoStart: widget.NewCheck("Auto-start next session", nil),
		onTop:     widget.NewCheck("Always on top", nil),
		atLogin:   widget.NewCheck("Launch at login", nil),
		menuTimer: widget.NewCheck("Show timer in menu bar", nil),
		glow:      widget.NewCheck("Enable glow", nil),
		themes:    widget.NewSelect(theme.Names(), nil),
		fontSize:  widget.NewSlider(model.MinTimerFontSize, model.MaxTimerFontSize),
		fontLabel: widget.NewLabel(""),
	}
	prefs.fontSize.Step = 1
	prefs.fontSize.OnChanged = func(value float64) {
		prefs.fontLabel.SetText(fmt.Sprintf("%.0f pt", value))
	}

	form := container.NewVBox(
		widget.NewLabelWithStyle("Durations", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Work"), prefs.workMin, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Short break"), prefs.shortMin, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break"), prefs.longMin, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Workflows before long break"), prefs.workflows),
		prefs.autoStart,
		widget.NewLabelWithStyle("Appearance", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Theme"), prefs.themes),
		container.NewBorder(nil, nil, widget.NewLabel("Timer size"), prefs.fontLabel, prefs.fontSize),
		prefs.glow,
		prefs.onTop,
		widget.NewLabelWithStyle("System", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.menuTimer,
		prefs.atLogin,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 520))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	fields := FieldsFrom(settings)
	prefs.workMin.SetText(fields.WorkMinutes)
	prefs.shortMin.SetText(fields.ShortBreakMinutes)
	prefs.longMin.SetText(fields.LongBreakMinutes)
	prefs.workflows.SetText(fields.WorkflowCount)
	prefs.autoStart.SetChecked(fields.AutoStartNextSession)
	prefs.onTop.SetChecked(fields.AlwaysOnTop)
	prefs.atLogin.SetChecked(fields.LaunchAtLogin)
	prefs.menuTimer.SetChecked(fields.ShowMenuBarTimer)
	prefs.glow.SetChecked(fields.EnableGlow)
	prefs.themes.SetSelected(theme.Parse(fields.Theme).Name)
	prefs.fontSize.SetValue(fields.TimerFontSize)
}

func (prefs *Window) fields() Fields {
	return Fields{
		WorkMinutes:          prefs.workMin.Text,
		ShortBreakMinutes:    prefs.shortMin.Text,
		LongBreakMinutes:     prefs.longMin.Text,
		WorkflowCount:        prefs.workflows.Text,
		AutoStartNextSession: prefs.autoStart.Checked,
		AlwaysOnTop:          prefs.onTop.Checked,
		LaunchAtLogin:        prefs.atLogin.Checked,
		ShowMenuBarTimer:     prefs.menuTimer.Checked,
		EnableGlow:           prefs.glow.Checked,
		Theme:                prefs.themes.Selected,
		TimerFontSize:        prefs.fontSize.Value,
	}
}

func (prefs *Window) handleSave() {
	settings, err := prefs.fields().Apply(prefs.settings)
	if err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}
	if prefs.onSave != nil {
		if err := prefs.onSave(settings); err != nil {
			dialog.ShowError(err, prefs.window)
			return
		}
	}
	prefs.UpdateSettings(settings)
	prefs.window.Hide()
}
