package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"droplet/internal/core/timer"
)

func TestMessageFor(t *testing.T) {
	tests := []struct {
		phase timer.Phase
		title string
		body  string
	}{
		{timer.PhaseWork, "Work Session Complete!", "Time for a break. You've earned it!"},
		{timer.PhaseShortBreak, "Break Over!", "Ready to focus again?"},
		{timer.PhaseLongBreak, "Long Break Over!", "Great job! Ready for another workflow?"},
	}

	for _, tt := range tests {
		t.Run(string(tt.phase), func(t *testing.T) {
			message := MessageFor(tt.phase)
			assert.Equal(t, tt.title, message.Title)
			assert.Equal(t, tt.body, message.Body)
		})
	}
}

func TestFanoutSurvivesPanickingNotifier(t *testing.T) {
	var got []timer.Phase
	fanout := NewFanout(nil,
		Func(func(timer.Phase) { panic("boom") }),
		nil,
		Func(func(phase timer.Phase) { got = append(got, phase) }),
	)

	assert.NotPanics(t, func() {
		fanout.PhaseEnded(timer.PhaseWork)
		fanout.PhaseEnded(timer.PhaseLongBreak)
	})
	assert.Equal(t, []timer.Phase{timer.PhaseWork, timer.PhaseLongBreak}, got)
}

func TestFanoutWithEngine(t *testing.T) {
	var got []timer.Phase
	engine := timer.New(nil, NewFanout(nil, Func(func(phase timer.Phase) {
		got = append(got, phase)
	})), timer.Config{})

	engine.EndCurrentSession()
	assert.Equal(t, []timer.Phase{timer.PhaseWork}, got)
}
