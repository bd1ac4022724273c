package game

import (
	"time"

	"github.com/pthm-cable/zoodrop/physics"
	"github.com/pthm-cable/zoodrop/species"
	"github.com/pthm-cable/zoodrop/systems"
)

// PieceView is one piece as the renderer sees it.
type PieceView struct {
	Pos    physics.Vec
	Radius float64
	Color  species.RGB
	Name   species.Name
}

// Snapshot is the read-only per-frame view handed to the renderer.
type Snapshot struct {
	Pieces       []PieceView
	Walls        []physics.Segment
	LineY        float64
	Score        int
	HighScore    int
	Next         *species.Species
	Preview      physics.Vec // where Next would spawn at the current pointer
	Phase        systems.Phase
	GameOver     bool
	NewHighScore bool
	Tick         int32

	OverLineTimer time.Duration
	Grace         time.Duration
	Paused        bool
}

// Snapshot returns the current render view.
func (g *Game) Snapshot() Snapshot {
	g.live = g.registry.AllLive(g.live[:0])

	pieces := make([]PieceView, len(g.live))
	for i, l := range g.live {
		pieces[i] = PieceView{
			Pos:    l.Pos,
			Radius: l.Species.Radius,
			Color:  l.Species.Color,
			Name:   l.Species.Name,
		}
	}

	return Snapshot{
		Pieces:       pieces,
		Walls:        g.engine.Walls(),
		LineY:        g.monitor.Line,
		Score:        g.session.Score.Score(),
		HighScore:    g.session.HighScore,
		Next:         g.session.Next,
		Preview:      g.spawner.SpawnPoint(g.pointerX, g.session.Next),
		Phase:        g.session.Phase,
		GameOver:     g.session.Phase == systems.PhaseGameOver,
		NewHighScore: g.session.NewHighScore,
		Tick:         g.tick,

		OverLineTimer: g.session.OverLineTimer,
		Grace:         g.monitor.Grace,
		Paused:        g.paused,
	}
}
