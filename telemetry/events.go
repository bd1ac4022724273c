// Package telemetry provides gameplay stats, perf timing, bookmarks and snapshots.
package telemetry

import "github.com/pthm-cable/zoodrop/species"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventDrop EventType = iota
	EventMerge
	EventGameOver
	EventRestart
)

// String returns the snake_case name of the event type.
func (t EventType) String() string {
	switch t {
	case EventDrop:
		return "drop"
	case EventMerge:
		return "merge"
	case EventGameOver:
		return "game_over"
	case EventRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Event represents a single telemetry event.
type Event struct {
	Type    EventType
	Tick    int32
	Species species.Name
	Rank    int

	// Optional fields depending on event type
	Points int  // score awarded (merge) or final score (game over)
	Chain  bool // merge consumed at least one merge product
}

// NewDropEvent creates a drop event.
func NewDropEvent(tick int32, sp *species.Species) Event {
	return Event{
		Type:    EventDrop,
		Tick:    tick,
		Species: sp.Name,
		Rank:    sp.Rank,
	}
}

// NewMergeEvent creates a merge event for a piece evolving into sp.
func NewMergeEvent(tick int32, sp *species.Species, points int, chain bool) Event {
	return Event{
		Type:    EventMerge,
		Tick:    tick,
		Species: sp.Name,
		Rank:    sp.Rank,
		Points:  points,
		Chain:   chain,
	}
}

// NewGameOverEvent creates a game-over event carrying the final score.
func NewGameOverEvent(tick int32, finalScore int) Event {
	return Event{
		Type:   EventGameOver,
		Tick:   tick,
		Points: finalScore,
		Rank:   -1,
	}
}

// NewRestartEvent creates a restart event.
func NewRestartEvent(tick int32) Event {
	return Event{
		Type: EventRestart,
		Tick: tick,
		Rank: -1,
	}
}
