// Package terminal is the bubbletea front end of the timer.
package terminal

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"droplet/internal/core/model"
	"droplet/internal/core/timer"
	"droplet/internal/notify"
)

// pulseInterval is the blink rate of the clock while a phase waits for
// confirmation.
const pulseInterval = 500 * time.Millisecond

// Engine is the subset of the timer engine the terminal drives.
type Engine interface {
	Snapshot() timer.Snapshot
	Activate()
	ContinueToNextPhase()
	ResetCurrentPhase()
	EndCurrentSession()
}

// Model is the bubbletea model for the terminal timer.
type Model struct {
	engine   Engine
	settings timer.SettingsSource
	events   <-chan timer.Event
	snapshot timer.Snapshot

	banner      *notify.Message
	pulseActive bool
	dim         bool

	keys     KeyMap
	help     help.Model
	progress progress.Model
	width    int
}

// New creates the terminal model. events may be nil, in which case the view
// only refreshes after key presses.
func New(engine Engine, settings timer.SettingsSource, events <-chan timer.Event) Model {
	return Model{
		engine:   engine,
		settings: settings,
		events:   events,
		snapshot: engine.Snapshot(),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithoutPercentage(), progress.WithWidth(32)),
	}
}

// eventMsg carries an engine event into the update loop.
type eventMsg timer.Event

// eventsClosedMsg is sent when the engine stops and closes the subscription.
type eventsClosedMsg struct{}

// pulseMsg advances the confirm blink.
type pulseMsg time.Time

// PhaseEndedMsg announces a completed phase. The terminal notifier sends it.
type PhaseEndedMsg struct {
	Phase timer.Phase
}

// Init starts listening for engine events.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.listenForEvents(),
		tea.SetWindowTitle("Droplet"),
	)
}

func (m Model) listenForEvents() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(event)
	}
}

func pulse() tea.Cmd {
	return tea.Tick(pulseInterval, func(t time.Time) tea.Msg {
		return pulseMsg(t)
	})
}

// pulseIfNeeded starts the blink chain when a confirmation is pending and no
// chain is running yet.
func (m *Model) pulseIfNeeded() tea.Cmd {
	if m.pulseActive || !m.snapshot.Pulsing() {
		return nil
	}
	m.pulseActive = true
	return pulse()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case eventMsg:
		// Key handlers may already have shown a newer state than the
		// queued event, so the engine is the source of truth.
		m.snapshot = m.engine.Snapshot()
		cmd := tea.Batch(m.listenForEvents(), m.pulseIfNeeded())
		return m, cmd

	case eventsClosedMsg:
		return m, tea.Quit

	case PhaseEndedMsg:
		message := notify.MessageFor(msg.Phase)
		m.banner = &message
		m.snapshot = m.engine.Snapshot()
		cmd := m.pulseIfNeeded()
		return m, cmd

	case pulseMsg:
		if !m.snapshot.Pulsing() {
			m.pulseActive = false
			m.dim = false
			return m, nil
		}
		m.dim = !m.dim
		return m, pulse()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Activate):
		m.engine.Activate()
	case key.Matches(msg, m.keys.Continue):
		m.engine.ContinueToNextPhase()
	case key.Matches(msg, m.keys.Reset):
		m.engine.ResetCurrentPhase()
	case key.Matches(msg, m.keys.End):
		m.engine.EndCurrentSession()
	default:
		return m, nil
	}
	m.banner = nil
	m.snapshot = m.engine.Snapshot()
	cmd := m.pulseIfNeeded()
	return m, cmd
}

// View renders the timer.
func (m Model) View() string {
	return m.renderView(m.currentSettings())
}

func (m Model) currentSettings() model.Settings {
	if m.settings == nil {
		return model.DefaultSettings()
	}
	return m.settings.Settings().Normalize()
}
