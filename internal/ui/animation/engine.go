package animation

import (
	"context"
	"math"
	"sync"
	"time"
)

// Config contains pulse timing values.
type Config struct {
	// Period is one full bright-dim-bright cycle.
	Period time.Duration
	// Frame is the delay between opacity updates.
	Frame time.Duration

	MinOpacity float64
	MaxOpacity float64
}

// Normalize fills zero values from DefaultConfig and orders the bounds.
func (config Config) Normalize() Config {
	defaults := DefaultConfig()
	if config.Period <= 0 {
		config.Period = defaults.Period
	}
	if config.Frame <= 0 {
		config.Frame = defaults.Frame
	}
	if config.MinOpacity == 0 && config.MaxOpacity == 0 {
		config.MinOpacity = defaults.MinOpacity
		config.MaxOpacity = defaults.MaxOpacity
	}
	if config.MinOpacity > config.MaxOpacity {
		config.MinOpacity, config.MaxOpacity = config.MaxOpacity, config.MinOpacity
	}
	config.MinOpacity = clamp01(config.MinOpacity)
	config.MaxOpacity = clamp01(config.MaxOpacity)
	return config
}

// Opacity returns the eased opacity at the given point in the cycle.
// The cycle starts and ends at MaxOpacity and reaches MinOpacity halfway.
func (config Config) Opacity(elapsed time.Duration) float64 {
	config = config.Normalize()
	if elapsed < 0 {
		elapsed = 0
	}
	phase := float64(elapsed%config.Period) / float64(config.Period)
	// Cosine ease: 1 at phase 0, 0 at phase 0.5.
	weight := (math.Cos(2*math.Pi*phase) + 1) / 2
	return config.MinOpacity + (config.MaxOpacity-config.MinOpacity)*weight
}

// Pulse drives a repeating opacity animation on a background goroutine.
type Pulse struct {
	mu      sync.Mutex
	config  Config
	apply   func(float64)
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// New creates a pulse that reports opacity values to apply.
func New(config Config, apply func(float64)) *Pulse {
	return &Pulse{
		config: config.Normalize(),
		apply:  apply,
	}
}

// Start begins pulsing. Calling Start while running is a no-op.
func (pulse *Pulse) Start(ctx context.Context) {
	pulse.mu.Lock()
	defer pulse.mu.Unlock()
	if pulse.running {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	pulse.cancel = cancel
	pulse.done = make(chan struct{})
	pulse.running = true

	go pulse.run(runCtx, pulse.done)
}

// Stop halts the animation and restores full opacity.
func (pulse *Pulse) Stop() {
	pulse.mu.Lock()
	if !pulse.running {
		pulse.mu.Unlock()
		return
	}
	cancel := pulse.cancel
	done := pulse.done
	pulse.cancel = nil
	pulse.done = nil
	pulse.running = false
	pulse.mu.Unlock()

	cancel()
	<-done
	pulse.report(pulse.config.MaxOpacity)
}

// Running reports whether the animation goroutine is active.
func (pulse *Pulse) Running() bool {
	pulse.mu.Lock()
	defer pulse.mu.Unlock()
	return pulse.running
}

// SetRunning starts or stops the pulse to match active.
func (pulse *Pulse) SetRunning(ctx context.Context, active bool) {
	if active {
		pulse.Start(ctx)
		return
	}
	pulse.Stop()
}

func (pulse *Pulse) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	start := time.Now()
	for {
		pulse.report(pulse.config.Opacity(time.Since(start)))
		if !sleepWithContext(ctx, pulse.config.Frame) {
			return
		}
	}
}

func (pulse *Pulse) report(opacity float64) {
	if pulse.apply != nil {
		pulse.apply(opacity)
	}
}

func clamp01(value float64) float64 {
	return math.Max(0, math.Min(1, value))
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
