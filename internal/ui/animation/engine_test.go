package animation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpacityCycle(t *testing.T) {
	config := Config{Period: time.Second, Frame: time.Millisecond, MinOpacity: 0.5, MaxOpacity: 1}

	assert.InDelta(t, 1.0, config.Opacity(0), 1e-9)
	assert.InDelta(t, 0.75, config.Opacity(250*time.Millisecond), 1e-9)
	assert.InDelta(t, 0.5, config.Opacity(500*time.Millisecond), 1e-9)
	assert.InDelta(t, 1.0, config.Opacity(time.Second), 1e-9)
	assert.InDelta(t, 1.0, config.Opacity(-time.Second), 1e-9)
}

func TestNormalize(t *testing.T) {
	config := Config{}.Normalize()
	assert.Equal(t, DefaultConfig(), config)

	swapped := Config{MinOpacity: 2, MaxOpacity: 0.2}.Normalize()
	assert.InDelta(t, 0.2, swapped.MinOpacity, 1e-9)
	assert.InDelta(t, 1.0, swapped.MaxOpacity, 1e-9)
}

type opacityRecorder struct {
	mu     sync.Mutex
	values []float64
}

func (recorder *opacityRecorder) apply(value float64) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.values = append(recorder.values, value)
}

func (recorder *opacityRecorder) snapshot() []float64 {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return append([]float64(nil), recorder.values...)
}

func TestPulseStartStop(t *testing.T) {
	recorder := &opacityRecorder{}
	pulse := New(Config{Period: 40 * time.Millisecond, Frame: 2 * time.Millisecond, MinOpacity: 0.5, MaxOpacity: 1}, recorder.apply)

	pulse.Start(context.Background())
	pulse.Start(context.Background())
	assert.True(t, pulse.Running())

	require.Eventually(t, func() bool {
		for _, value := range recorder.snapshot() {
			if value < 0.9 {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)

	pulse.Stop()
	assert.False(t, pulse.Running())

	values := recorder.snapshot()
	require.NotEmpty(t, values)
	assert.InDelta(t, 1.0, values[len(values)-1], 1e-9)
	for _, value := range values {
		assert.GreaterOrEqual(t, value, 0.5-1e-9)
		assert.LessOrEqual(t, value, 1.0+1e-9)
	}

	count := len(values)
	time.Sleep(10 * time.Millisecond)
	assert.Len(t, recorder.snapshot(), count)
}

func TestPulseStopWhenIdle(t *testing.T) {
	recorder := &opacityRecorder{}
	pulse := New(DefaultConfig(), recorder.apply)
	pulse.Stop()
	assert.Empty(t, recorder.snapshot())
}

func TestPulseSetRunning(t *testing.T) {
	pulse := New(Config{Frame: time.Millisecond}, nil)
	pulse.SetRunning(context.Background(), true)
	assert.True(t, pulse.Running())
	pulse.SetRunning(context.Background(), false)
	assert.False(t, pulse.Running())
}
