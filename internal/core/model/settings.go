package model

import "time"

const (
	MinDurationMinutes = 1
	MaxDurationMinutes = 180

	MinWorkflowCount = 2
	MaxWorkflowCount = 12

	MinTimerFontSize = 12
	MaxTimerFontSize = 96
)

// Settings contains every user preference of droplet.
type Settings struct {
	WorkMinutes          int
	ShortBreakMinutes    int
	LongBreakMinutes     int
	WorkflowCount        int
	AutoStartNextSession bool

	AlwaysOnTop      bool
	LaunchAtLogin    bool
	ShowMenuBarTimer bool
	Theme            string
	TimerFontSize    float64
	EnableGlow       bool
}

// DefaultSettings returns default settings for droplet.
func DefaultSettings() Settings {
	return Settings{
		WorkMinutes:          25,
		ShortBreakMinutes:    5,
		LongBreakMinutes:     15,
		WorkflowCount:        4,
		AutoStartNextSession: true,
		ShowMenuBarTimer:     true,
		Theme:                "Dark",
		TimerFontSize:        42,
	}
}

// Normalize clamps out-of-range values so the timer always has positive durations
// and at least two workflows per long break.
func (settings Settings) Normalize() Settings {
	settings.WorkMinutes = clampInt(settings.WorkMinutes, MinDurationMinutes, MaxDurationMinutes)
	settings.ShortBreakMinutes = clampInt(settings.ShortBreakMinutes, MinDurationMinutes, MaxDurationMinutes)
	settings.LongBreakMinutes = clampInt(settings.LongBreakMinutes, MinDurationMinutes, MaxDurationMinutes)
	settings.WorkflowCount = clampInt(settings.WorkflowCount, MinWorkflowCount, MaxWorkflowCount)

	if settings.TimerFontSize < MinTimerFontSize {
		settings.TimerFontSize = MinTimerFontSize
	}
	if settings.TimerFontSize > MaxTimerFontSize {
		settings.TimerFontSize = MaxTimerFontSize
	}
	if settings.Theme == "" {
		settings.Theme = DefaultSettings().Theme
	}
	return settings
}

// WorkDuration returns the configured work interval.
func (settings Settings) WorkDuration() time.Duration {
	return time.Duration(settings.WorkMinutes) * time.Minute
}

// ShortBreakDuration returns the configured short break.
func (settings Settings) ShortBreakDuration() time.Duration {
	return time.Duration(settings.ShortBreakMinutes) * time.Minute
}

// LongBreakDuration returns the configured long break.
func (settings Settings) LongBreakDuration() time.Duration {
	return time.Duration(settings.LongBreakMinutes) * time.Minute
}

func clampInt(value, minValue, maxValue int) int {
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}
	return value
}
