package timer

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"droplet/internal/core/model"
)

// SettingsSource supplies the configuration read whenever a phase begins.
type SettingsSource interface {
	Settings() model.Settings
}

// Notifier is told about every phase that reaches its end. Implementations
// must return quickly and handle their own delivery failures.
type Notifier interface {
	PhaseEnded(phase Phase)
}

// Config contains runtime options for the Engine.
type Config struct {
	TickInterval time.Duration
	Logger       *slog.Logger
}

// Engine is the focus timer state machine. All mutations go through one mutex,
// held for a single transition; the tick loop and commands share it.
type Engine struct {
	mu       sync.Mutex
	settings SettingsSource
	notifier Notifier
	options  Config
	logger   *slog.Logger
	state    Snapshot
	events   []chan Event
	stopCh   chan struct{}
	loop     sync.WaitGroup
	running  bool
}

// New creates an idle Engine at the start of a work phase.
func New(settings SettingsSource, notifier Notifier, options Config) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	engine := &Engine{
		settings: settings,
		notifier: notifier,
		options:  options,
		logger:   logger.With("component", "timer"),
	}
	engine.state = Snapshot{Phase: PhaseWork, Status: StatusIdle}
	engine.loadPhaseLocked(engine.readSettings())
	return engine
}

// Snapshot returns a copy of the current state.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.state
}

// Subscribe registers a new observer channel. When the buffer is full the
// oldest pending event is dropped so the newest state is always delivered.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	engine.events = append(engine.events, ch)
	engine.mu.Unlock()
	return ch
}

// Start launches the one-second tick loop.
func (engine *Engine) Start() {
	engine.mu.Lock()
	if engine.running {
		engine.mu.Unlock()
		return
	}
	engine.running = true
	engine.stopCh = make(chan struct{})
	stopCh := engine.stopCh
	engine.loop.Add(1)
	engine.mu.Unlock()

	go engine.run(stopCh)
}

// Stop terminates the tick loop and closes observers.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	if !engine.running {
		engine.mu.Unlock()
		return
	}
	close(engine.stopCh)
	engine.running = false
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	engine.loop.Wait()
	for _, ch := range events {
		close(ch)
	}
}

// ToggleStartPause starts an idle or paused countdown, or pauses a running one.
// It does nothing while awaiting confirmation.
func (engine *Engine) ToggleStartPause() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.toggleLocked()
}

// Activate is the single-click action: it confirms a pending phase, otherwise
// it toggles between running and paused.
func (engine *Engine) Activate() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.state.Status == StatusAwaitingConfirm {
		engine.continueLocked()
		return
	}
	engine.toggleLocked()
}

func (engine *Engine) toggleLocked() {
	switch engine.state.Status {
	case StatusIdle:
		engine.loadPhaseLocked(engine.readSettings())
		engine.state.Status = StatusRunning
	case StatusPaused:
		engine.state.Status = StatusRunning
	case StatusRunning:
		engine.state.Status = StatusPaused
	default:
		return
	}
	engine.logger.Debug("status changed", "phase", engine.state.Phase, "status", engine.state.Status)
	engine.emitLocked(EventStateChange, "")
}

// ResetCurrentPhase rewinds the current phase to its full duration and goes idle.
func (engine *Engine) ResetCurrentPhase() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	engine.state.RemainingSeconds = engine.state.TotalSeconds
	engine.state.Status = StatusIdle
	engine.logger.Debug("phase reset", "phase", engine.state.Phase)
	engine.emitLocked(EventStateChange, "")
}

// ContinueToNextPhase arms the countdown of the phase the engine is holding at.
func (engine *Engine) ContinueToNextPhase() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.state.Status != StatusAwaitingConfirm {
		return
	}
	engine.continueLocked()
}

func (engine *Engine) continueLocked() {
	settings := engine.readSettings()
	engine.loadPhaseLocked(settings)
	if settings.AutoStartNextSession {
		engine.state.Status = StatusRunning
	} else {
		engine.state.Status = StatusIdle
	}
	engine.logger.Debug("continued", "phase", engine.state.Phase, "status", engine.state.Status)
	engine.emitLocked(EventStateChange, "")
}

// EndCurrentSession completes the current phase immediately.
func (engine *Engine) EndCurrentSession() {
	engine.mu.Lock()
	ended := engine.finishPhaseLocked()
	engine.mu.Unlock()

	engine.notify(ended)
}

// ApplySettings re-reads the duration of an idle phase so a settings change is
// visible before the countdown starts. Active countdowns are left alone, but
// the completed workflow count is clamped below a lowered workflow count in
// every status.
func (engine *Engine) ApplySettings() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	settings := engine.readSettings()
	changed := false
	if limit := settings.WorkflowCount - 1; engine.state.CompletedWorkflows > limit {
		engine.state.CompletedWorkflows = limit
		changed = true
	}
	if engine.state.Status == StatusIdle {
		total := engine.state.TotalSeconds
		engine.loadPhaseLocked(settings)
		changed = changed || engine.state.TotalSeconds != total
	}
	if changed {
		engine.emitLocked(EventStateChange, "")
	}
}

// Tick advances a running countdown by one second.
func (engine *Engine) Tick() {
	engine.mu.Lock()
	if engine.state.Status != StatusRunning {
		engine.mu.Unlock()
		return
	}
	if engine.state.RemainingSeconds > 0 {
		engine.state.RemainingSeconds--
	}
	if engine.state.RemainingSeconds > 0 {
		engine.emitLocked(EventTick, "")
		engine.mu.Unlock()
		return
	}
	ended := engine.finishPhaseLocked()
	engine.mu.Unlock()

	engine.notify(ended)
}

func (engine *Engine) run(stopCh <-chan struct{}) {
	defer engine.loop.Done()
	ticker := time.NewTicker(engine.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			select {
			case <-stopCh:
				return
			default:
			}
			engine.Tick()
		}
	}
}

// finishPhaseLocked moves to the next phase and returns the phase that ended.
func (engine *Engine) finishPhaseLocked() Phase {
	ended := engine.state.Phase
	settings := engine.readSettings()

	switch ended {
	case PhaseWork:
		if engine.state.CompletedWorkflows+1 >= settings.WorkflowCount {
			engine.state.Phase = PhaseLongBreak
			engine.state.CompletedWorkflows = 0
		} else {
			engine.state.Phase = PhaseShortBreak
			engine.state.CompletedWorkflows++
		}
	case PhaseShortBreak:
		engine.state.Phase = PhaseWork
	default:
		engine.state.Phase = PhaseWork
		engine.state.CompletedWorkflows = 0
	}

	engine.loadPhaseLocked(settings)
	if settings.AutoStartNextSession {
		engine.state.Status = StatusRunning
	} else {
		engine.state.RemainingSeconds = 0
		engine.state.Status = StatusAwaitingConfirm
	}

	engine.logger.Info("phase ended",
		"ended", ended,
		"next", engine.state.Phase,
		"status", engine.state.Status,
		"completed_workflows", engine.state.CompletedWorkflows,
	)
	engine.emitLocked(EventPhaseEnded, ended)
	return ended
}

func (engine *Engine) loadPhaseLocked(settings model.Settings) {
	engine.state.TotalSeconds = phaseSeconds(settings, engine.state.Phase)
	engine.state.RemainingSeconds = engine.state.TotalSeconds
}

func (engine *Engine) readSettings() model.Settings {
	if engine.settings == nil {
		return model.DefaultSettings()
	}
	return engine.settings.Settings().Normalize()
}

func (engine *Engine) notify(phase Phase) {
	if engine.notifier == nil {
		return
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			engine.logger.Error("notifier panicked", "phase", phase, "panic", recovered)
		}
	}()
	engine.notifier.PhaseEnded(phase)
}

func (engine *Engine) emitLocked(eventType EventType, ended Phase) {
	event := Event{
		Type:     eventType,
		Snapshot: engine.state,
		Ended:    ended,
		At:       time.Now(),
	}
	for _, ch := range engine.events {
		select {
		case ch <- event:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- event:
		default:
		}
	}
}

func phaseSeconds(settings model.Settings, phase Phase) int {
	switch phase {
	case PhaseShortBreak:
		return int(settings.ShortBreakDuration() / time.Second)
	case PhaseLongBreak:
		return int(settings.LongBreakDuration() / time.Second)
	default:
		return int(settings.WorkDuration() / time.Second)
	}
}
