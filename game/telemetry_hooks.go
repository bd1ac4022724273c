package game

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/pthm-cable/zoodrop/components"
	"github.com/pthm-cable/zoodrop/physics"
	"github.com/pthm-cable/zoodrop/species"
	"github.com/pthm-cable/zoodrop/systems"
	"github.com/pthm-cable/zoodrop/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sampleBoard())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

// sampleBoard collects the live-piece distribution for a stats window.
func (g *Game) sampleBoard() telemetry.Board {
	g.live = g.registry.AllLive(g.live[:0])

	board := telemetry.Board{
		Phase:     g.session.Phase.String(),
		Score:     g.session.Score.Score(),
		HighScore: g.session.HighScore,
		Ranks:     make([]float64, 0, len(g.live)),
		MaxRank:   -1,
	}

	top := math.Inf(1)
	for _, l := range g.live {
		board.Ranks = append(board.Ranks, float64(l.Species.Rank))
		if l.Species.Rank > board.MaxRank {
			board.MaxRank = l.Species.Rank
			board.MaxName = string(l.Species.Name)
		}
		top = math.Min(top, l.Pos.Y-l.Species.Radius)
	}
	if len(g.live) > 0 {
		board.StackTop = top
	}
	return board
}

// saveSnapshot creates and saves a snapshot to disk.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	path, err := telemetry.SaveSnapshot(g.createSnapshot(bookmark), g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", g.tick)
}

// SaveSnapshot writes the current board to dir and returns the file path.
func (g *Game) SaveSnapshot(dir string) (string, error) {
	return telemetry.SaveSnapshot(g.createSnapshot(nil), dir)
}

// createSnapshot builds a snapshot from the current state.
func (g *Game) createSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	snapshot := &telemetry.Snapshot{
		Version:          telemetry.SnapshotVersion,
		RNGSeed:          g.rngSeed,
		Tick:             g.tick,
		Session:          g.collector.Session(),
		Phase:            g.session.Phase.String(),
		Score:            g.session.Score.Score(),
		HighScore:        g.session.HighScore,
		Next:             string(g.session.Next.Name),
		OverLineTimerSec: g.session.OverLineTimer.Seconds(),
		Bookmark:         bookmark,
	}

	g.live = g.registry.AllLive(g.live[:0])
	for _, l := range g.live {
		state := telemetry.PieceState{
			Species: string(l.Species.Name),
			X:       l.Pos.X,
			Y:       l.Pos.Y,
		}
		if o, ok := g.registry.OriginOf(l.Handle); ok {
			state.Origin = o.Kind.String()
		}
		snapshot.Pieces = append(snapshot.Pieces, state)
	}

	return snapshot
}

// RestoreSnapshot replaces the board with a saved one. The snapshot is
// validated before anything is touched. The RNG restarts from the saved seed.
func (g *Game) RestoreSnapshot(s *telemetry.Snapshot) error {
	for i, p := range s.Pieces {
		if _, ok := g.catalog.Lookup(species.Name(p.Species)); !ok {
			return fmt.Errorf("piece %d: unknown species %q", i, p.Species)
		}
	}
	next, ok := g.catalog.Lookup(species.Name(s.Next))
	if !ok {
		return fmt.Errorf("unknown next species %q", s.Next)
	}
	var phase systems.Phase
	switch s.Phase {
	case systems.PhasePlaying.String():
		phase = systems.PhasePlaying
	case systems.PhaseGameOver.String():
		phase = systems.PhaseGameOver
	default:
		return fmt.Errorf("unknown phase %q", s.Phase)
	}
	if s.Score < 0 || s.HighScore < 0 {
		return fmt.Errorf("negative score %d (high score %d)", s.Score, s.HighScore)
	}
	if s.OverLineTimerSec < 0 || math.IsNaN(s.OverLineTimerSec) {
		return fmt.Errorf("invalid over-line timer %v", s.OverLineTimerSec)
	}
	if s.Tick < 0 {
		return fmt.Errorf("negative tick %d", s.Tick)
	}

	g.registry.Clear()
	g.plan.Reset()
	g.contacts = g.engine.DrainContacts(g.contacts[:0])

	g.tick = s.Tick
	for _, p := range s.Pieces {
		sp, _ := g.catalog.Lookup(species.Name(p.Species))
		g.registry.SetTick(g.tick)
		g.registry.SpawnFrom(physics.Vec{X: p.X, Y: p.Y}, sp, components.ParseOriginKind(p.Origin))
	}

	g.session.Phase = phase
	g.session.Next = next
	g.session.NewHighScore = false
	g.session.OverLineTimer = time.Duration(math.Round(s.OverLineTimerSec * float64(time.Second)))
	g.session.Score.Restore(s.Score, 0)
	if s.HighScore > g.session.HighScore {
		g.session.HighScore = s.HighScore
	}

	g.rngSeed = s.RNGSeed
	g.rng.Seed(s.RNGSeed)

	slog.Info("snapshot_restored",
		"tick", s.Tick,
		"pieces", len(s.Pieces),
		"phase", s.Phase,
		"score", s.Score,
	)
	return nil
}
