// Package notify turns "phase ended" events from the timer into messages for
// the user. Delivery is fire-and-forget: failures are logged here and never
// reach the timer.
package notify

import (
	"io"
	"log/slog"

	"droplet/internal/core/timer"
)

// Message is the text shown when a phase ends.
type Message struct {
	Title string
	Body  string
}

// MessageFor selects the message variant by the phase that just completed.
func MessageFor(phase timer.Phase) Message {
	switch phase {
	case timer.PhaseShortBreak:
		return Message{Title: "Break Over!", Body: "Ready to focus again?"}
	case timer.PhaseLongBreak:
		return Message{Title: "Long Break Over!", Body: "Great job! Ready for another workflow?"}
	default:
		return Message{Title: "Work Session Complete!", Body: "Time for a break. You've earned it!"}
	}
}

// Func adapts a plain function to timer.Notifier.
type Func func(phase timer.Phase)

// PhaseEnded calls fn.
func (fn Func) PhaseEnded(phase timer.Phase) {
	fn(phase)
}

// Fanout delivers to several notifiers; a panicking one does not stop the rest.
type Fanout struct {
	notifiers []timer.Notifier
	logger    *slog.Logger
}

// NewFanout creates a Fanout. Nil notifiers are skipped.
func NewFanout(logger *slog.Logger, notifiers ...timer.Notifier) *Fanout {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	fanout := &Fanout{logger: logger.With("component", "notify")}
	for _, notifier := range notifiers {
		if notifier != nil {
			fanout.notifiers = append(fanout.notifiers, notifier)
		}
	}
	return fanout
}

// PhaseEnded forwards the phase to every notifier.
func (fanout *Fanout) PhaseEnded(phase timer.Phase) {
	fanout.logger.Debug("phase ended", "phase", phase, "title", MessageFor(phase).Title)
	for _, notifier := range fanout.notifiers {
		fanout.deliver(notifier, phase)
	}
}

func (fanout *Fanout) deliver(notifier timer.Notifier, phase timer.Phase) {
	defer func() {
		if recovered := recover(); recovered != nil {
			fanout.logger.Error("deliver notification", "phase", phase, "panic", recovered)
		}
	}()
	notifier.PhaseEnded(phase)
}
