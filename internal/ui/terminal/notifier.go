package terminal

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"droplet/internal/core/timer"
)

// Sender is implemented by *tea.Program.
type Sender interface {
	Send(msg tea.Msg)
}

// Notifier forwards phase endings into a running program as PhaseEndedMsg.
// The engine may finish a phase before the program is attached; those
// endings are dropped.
type Notifier struct {
	mu     sync.Mutex
	sender Sender
}

// Attach sets the program that receives notifications.
func (notifier *Notifier) Attach(sender Sender) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.sender = sender
}

// PhaseEnded implements timer.Notifier. Delivery happens on its own goroutine
// because Program.Send blocks until the event loop accepts the message.
func (notifier *Notifier) PhaseEnded(phase timer.Phase) {
	notifier.mu.Lock()
	sender := notifier.sender
	notifier.mu.Unlock()
	if sender == nil {
		return
	}
	go sender.Send(PhaseEndedMsg{Phase: phase})
}
