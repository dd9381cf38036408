package timer

import (
	"fmt"
	"time"
)

// Phase is the timed interval the engine is counting down.
type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// Label returns the human readable phase name.
func (phase Phase) Label() string {
	switch phase {
	case PhaseWork:
		return "Work"
	case PhaseShortBreak:
		return "Break"
	case PhaseLongBreak:
		return "Long Break"
	default:
		return string(phase)
	}
}

// IsBreak reports whether the phase is a short or long break.
func (phase Phase) IsBreak() bool {
	return phase == PhaseShortBreak || phase == PhaseLongBreak
}

// Status is the countdown status within the current phase.
type Status string

const (
	StatusIdle            Status = "idle"
	StatusRunning         Status = "running"
	StatusPaused          Status = "paused"
	StatusAwaitingConfirm Status = "awaiting_confirm"
)

// Snapshot is an immutable copy of the engine state.
type Snapshot struct {
	Phase              Phase
	Status             Status
	RemainingSeconds   int
	TotalSeconds       int
	CompletedWorkflows int
}

// Remaining returns the remaining time as a duration.
func (snapshot Snapshot) Remaining() time.Duration {
	return time.Duration(snapshot.RemainingSeconds) * time.Second
}

// Progress returns the elapsed fraction of the current phase in [0, 1].
func (snapshot Snapshot) Progress() float64 {
	if snapshot.TotalSeconds <= 0 {
		return 0
	}
	progress := float64(snapshot.TotalSeconds-snapshot.RemainingSeconds) / float64(snapshot.TotalSeconds)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// FormattedTime renders the remaining time as MM:SS.
func (snapshot Snapshot) FormattedTime() string {
	return FormatSeconds(snapshot.RemainingSeconds)
}

// Pulsing reports whether the engine is holding at a phase boundary.
func (snapshot Snapshot) Pulsing() bool {
	return snapshot.Status == StatusAwaitingConfirm
}

// FormatSeconds renders whole seconds as zero padded MM:SS.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// EventType defines the type of engine event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventPhaseEnded  EventType = "phase_ended"
)

// Event carries a snapshot taken right after a mutation.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	// Ended is set for EventPhaseEnded.
	Ended Phase
	At    time.Time
}
