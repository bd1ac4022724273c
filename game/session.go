package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/zoodrop/species"
	"github.com/pthm-cable/zoodrop/systems"
	"github.com/pthm-cable/zoodrop/telemetry"
)

// Session is the state of one game from first drop to game over.
// HighScore outlives sessions; everything else is reset on restart.
type Session struct {
	Phase         systems.Phase
	OverLineTimer time.Duration
	HighScore     int
	NewHighScore  bool
	Next          *species.Species
	Score         *systems.ScoreTracker
}

func newSession(score *systems.ScoreTracker, highScore int) Session {
	return Session{
		Phase:     systems.PhasePlaying,
		HighScore: highScore,
		Score:     score,
	}
}

// reset starts a new session, keeping the high score.
func (s *Session) reset(next *species.Species) {
	s.Phase = systems.PhasePlaying
	s.OverLineTimer = 0
	s.NewHighScore = false
	s.Next = next
	s.Score.Reset()
}

// Drop spawns the next piece above the arena at x, clamped inside the walls.
// Ignored unless a session is being played.
func (g *Game) Drop(x float64) bool {
	if g.session.Phase != systems.PhasePlaying {
		return false
	}

	sp := g.session.Next
	g.registry.SetTick(g.tick)
	g.registry.Spawn(g.spawner.SpawnPoint(x, sp), sp)
	g.emit(telemetry.NewDropEvent(g.tick, sp))

	g.session.Next = g.spawner.Next()
	return true
}

// Restart clears the board and starts a new session.
// Ignored unless the current session is over.
func (g *Game) Restart() bool {
	if g.session.Phase != systems.PhaseGameOver {
		return false
	}

	cleared := g.registry.Clear()
	g.plan.Reset()
	// Contacts buffered against cleared bodies are stale
	g.contacts = g.engine.DrainContacts(g.contacts[:0])

	g.session.reset(g.spawner.Next())
	g.collector.BeginSession(g.tick)
	g.emit(telemetry.NewRestartEvent(g.tick))

	slog.Info("session_restart",
		"session", g.collector.Session(),
		"tick", g.tick,
		"cleared", cleared,
		"high_score", g.session.HighScore,
	)
	return true
}

// enterGameOver ends the session, persisting a new high score.
func (g *Game) enterGameOver() {
	s := &g.session
	s.Phase = systems.PhaseGameOver

	final := s.Score.Score()
	if final > s.HighScore {
		s.HighScore = final
		s.NewHighScore = true
		if err := g.store.Save(final); err != nil {
			slog.Warn("high_score_save_failed", "score", final, "error", err)
		} else {
			slog.Info("high_score_saved", "score", final)
		}
	}

	g.emit(telemetry.NewGameOverEvent(g.tick, final))
	slog.Info("game_over",
		"session", g.collector.Session(),
		"tick", g.tick,
		"score", final,
		"high_score", s.HighScore,
		"new_high_score", s.NewHighScore,
	)

	rec := g.collector.EndSession(g.tick, g.rngSeed, final, s.HighScore, s.NewHighScore)
	if sp, ok := g.catalog.At(rec.MaxRank); ok {
		rec.MaxSpecies = string(sp.Name)
	}
	g.sessions = append(g.sessions, rec)

	if g.logStats {
		slog.Info("session", "record", rec)
	}
	if err := g.outputManager.WriteSession(rec); err != nil {
		slog.Error("failed to write session", "error", err)
	}
}
