package telemetry

import "time"

// Collector accumulates events within time windows and produces WindowStats.
// It also keeps per-session totals for SessionRecord.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	drops         int
	merges        int
	chainMerges   int
	points        int
	overLineTicks int
	peakOverLine  time.Duration

	// Session totals
	session        int
	sessionStart   int32
	sessionDrops   int
	sessionMerges  int
	sessionMaxRank int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		session:             1,
		sessionMaxRank:      -1,
	}
}

// Record counts an event in the current window and session.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventDrop:
		c.drops++
		c.sessionDrops++
		c.noteRank(ev.Rank)
	case EventMerge:
		c.merges++
		c.sessionMerges++
		c.points += ev.Points
		if ev.Chain {
			c.chainMerges++
		}
		c.noteRank(ev.Rank)
	}
}

func (c *Collector) noteRank(rank int) {
	if rank > c.sessionMaxRank {
		c.sessionMaxRank = rank
	}
}

// RecordOverLine records one tick's over-line state and the running timer.
func (c *Collector) RecordOverLine(over bool, timer time.Duration) {
	if over {
		c.overLineTicks++
	}
	if timer > c.peakOverLine {
		c.peakOverLine = timer
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Board is the state sampled at window end.
type Board struct {
	Phase     string
	Score     int
	HighScore int
	Ranks     []float64 // rank of every live piece
	MaxRank   int       // -1 when empty
	MaxName   string
	StackTop  float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, board Board) WindowStats {
	mean, p50, p90 := ComputeRankStats(board.Ranks)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,
		Session:         c.session,
		Phase:           board.Phase,

		Score:     board.Score,
		HighScore: board.HighScore,

		Drops:       c.drops,
		Merges:      c.merges,
		ChainMerges: c.chainMerges,
		Points:      c.points,

		LivePieces: len(board.Ranks),
		MaxRank:    board.MaxRank,
		MaxSpecies: board.MaxName,
		RankMean:   mean,
		RankP50:    p50,
		RankP90:    p90,
		StackTop:   board.StackTop,

		OverLineTicks:   c.overLineTicks,
		PeakOverLineSec: c.peakOverLine.Seconds(),
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.drops = 0
	c.merges = 0
	c.chainMerges = 0
	c.points = 0
	c.overLineTicks = 0
	c.peakOverLine = 0

	return stats
}

// EndSession produces the record of the session that just ended and starts
// counting the next one.
func (c *Collector) EndSession(currentTick int32, seed int64, finalScore, highScore int, newHigh bool) SessionRecord {
	rec := SessionRecord{
		Session:      c.session,
		Seed:         seed,
		StartTick:    c.sessionStart,
		EndTick:      currentTick,
		DurationSec:  float64(currentTick-c.sessionStart) * c.dt,
		Score:        finalScore,
		HighScore:    highScore,
		NewHighScore: newHigh,
		Drops:        c.sessionDrops,
		Merges:       c.sessionMerges,
		MaxRank:      c.sessionMaxRank,
	}
	return rec
}

// BeginSession resets session totals.
func (c *Collector) BeginSession(currentTick int32) {
	c.session++
	c.sessionStart = currentTick
	c.sessionDrops = 0
	c.sessionMerges = 0
	c.sessionMaxRank = -1
}

// Session returns the 1-based number of the current session.
func (c *Collector) Session() int {
	return c.session
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
