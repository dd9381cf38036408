package theme

import "droplet/internal/core/timer"

// DotState is how a single workflow dot is drawn.
type DotState int

const (
	DotPending DotState = iota
	DotCurrent
	DotDone
)

// Dots returns one state per workflow in the cycle.
//
// While working, finished workflows are done and the one in progress is
// current. During a short break only finished workflows are lit. During a long
// break the whole cycle is lit: the counter has already reset but the cycle
// that earned the break is complete.
func Dots(snapshot timer.Snapshot, workflowCount int) []DotState {
	if workflowCount <= 0 {
		return nil
	}
	dots := make([]DotState, workflowCount)
	for index := range dots {
		switch {
		case snapshot.Phase == timer.PhaseLongBreak:
			dots[index] = DotDone
		case index < snapshot.CompletedWorkflows:
			dots[index] = DotDone
		case snapshot.Phase == timer.PhaseWork && index == snapshot.CompletedWorkflows:
			dots[index] = DotCurrent
		default:
			dots[index] = DotPending
		}
	}
	return dots
}
