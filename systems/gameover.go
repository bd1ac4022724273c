package systems

import "time"

// Phase is the session state.
type Phase uint8

const (
	PhasePlaying Phase = iota
	PhaseGameOver
)

// String returns the display name for a Phase.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// GameOverMonitor debounces the over-line condition.
type GameOverMonitor struct {
	Line  float64       // a piece whose top is above this y is over the line
	Grace time.Duration // continuous over-line time tolerated
}

// OverLine reports whether any live piece pokes above the line.
func (m GameOverMonitor) OverLine(live []Live) bool {
	for _, l := range live {
		if l.Pos.Y-l.Species.Radius < m.Line {
			return true
		}
	}
	return false
}

// Evaluate advances the over-line timer by dt and reports whether the
// condition held this step and whether the grace period has been exceeded.
// The timer resets to zero on any step where the condition does not hold.
func (m GameOverMonitor) Evaluate(live []Live, dt time.Duration, timer *time.Duration) (overLine, tripped bool) {
	if !m.OverLine(live) {
		*timer = 0
		return false, false
	}
	*timer += dt
	return true, *timer > m.Grace
}
