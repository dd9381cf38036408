package preferences

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"droplet/internal/core/model"
)

// Fields holds the form values as the user typed them.
type Fields struct {
	WorkMinutes       string
	ShortBreakMinutes string
	LongBreakMinutes  string
	WorkflowCount     string

	AutoStartNextSession bool
	AlwaysOnTop          bool
	LaunchAtLogin        bool
	ShowMenuBarTimer     bool
	EnableGlow           bool

	Theme         string
	TimerFontSize float64
}

// FieldsFrom fills the form from stored settings.
func FieldsFrom(settings model.Settings) Fields {
	return Fields{
		WorkMinutes:          strconv.Itoa(settings.WorkMinutes),
		ShortBreakMinutes:    strconv.Itoa(settings.ShortBreakMinutes),
		LongBreakMinutes:     strconv.Itoa(settings.LongBreakMinutes),
		WorkflowCount:        strconv.Itoa(settings.WorkflowCount),
		AutoStartNextSession: settings.AutoStartNextSession,
		AlwaysOnTop:          settings.AlwaysOnTop,
		LaunchAtLogin:        settings.LaunchAtLogin,
		ShowMenuBarTimer:     settings.ShowMenuBarTimer,
		EnableGlow:           settings.EnableGlow,
		Theme:                settings.Theme,
		TimerFontSize:        settings.TimerFontSize,
	}
}

// ErrInvalidField reports a duration or count that is not a positive whole
// number.
var ErrInvalidField = errors.New("must be a positive whole number")

// Apply merges the form into base. Numbers that do not parse are reported
// together and leave base untouched; parsed values are clamped by Normalize.
func (fields Fields) Apply(base model.Settings) (model.Settings, error) {
	settings := base

	numbers := []struct {
		label  string
		value  string
		target *int
	}{
		{"Work", fields.WorkMinutes, &settings.WorkMinutes},
		{"Short break", fields.ShortBreakMinutes, &settings.ShortBreakMinutes},
		{"Long break", fields.LongBreakMinutes, &settings.LongBreakMinutes},
		{"Workflows before long break", fields.WorkflowCount, &settings.WorkflowCount},
	}
	var invalid []string
	for _, number := range numbers {
		value, ok := parsePositiveInt(number.value)
		if !ok {
			invalid = append(invalid, number.label)
			continue
		}
		*number.target = value
	}
	if len(invalid) > 0 {
		return base, fmt.Errorf("%s: %w", strings.Join(invalid, ", "), ErrInvalidField)
	}

	settings.AutoStartNextSession = fields.AutoStartNextSession
	settings.AlwaysOnTop = fields.AlwaysOnTop
	settings.LaunchAtLogin = fields.LaunchAtLogin
	settings.ShowMenuBarTimer = fields.ShowMenuBarTimer
	settings.EnableGlow = fields.EnableGlow
	if fields.Theme != "" {
		settings.Theme = fields.Theme
	}
	if fields.TimerFontSize > 0 {
		settings.TimerFontSize = fields.TimerFontSize
	}

	return settings.Normalize(), nil
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
