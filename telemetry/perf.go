package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one stage of the fixed step pipeline.
type Phase uint8

const (
	PhasePhysicsStep Phase = iota
	PhaseContacts
	PhaseMutations
	PhaseScoring
	PhaseGameOver
	PhaseTelemetry

	NumPhases
)

var phaseNames = [NumPhases]string{
	"physics_step", "contacts", "mutations", "scoring", "game_over", "telemetry",
}

// String returns the phase name used in logs, CSV columns and the
// system registry.
func (p Phase) String() string {
	if p < NumPhases {
		return phaseNames[p]
	}
	return "unknown"
}

// PhaseByName is the inverse of String.
func PhaseByName(name string) (Phase, bool) {
	for i, n := range phaseNames {
		if n == name {
			return Phase(i), true
		}
	}
	return 0, false
}

type perfSample struct {
	tick   time.Duration
	phases [NumPhases]time.Duration
}

// PerfCollector times each step phase over a rolling window of ticks.
// Phases run strictly in order, so a tick is one sample with a fixed
// slot per phase.
type PerfCollector struct {
	samples []perfSample
	next    int
	count   int

	current    perfSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector keeps the last windowSize ticks (60 if not positive).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{samples: make([]perfSample, windowSize)}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = perfSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts ph.
func (p *PerfCollector) StartPhase(ph Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase = ph
	p.phaseStart = now
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase < NumPhases {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// EndTick closes the last phase and records the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.current.tick = now.Sub(p.tickStart)

	p.samples[p.next] = p.current
	p.next = (p.next + 1) % len(p.samples)
	if p.count < len(p.samples) {
		p.count++
	}
}

// RecordFrame marks the start of a rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats aggregates the window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MaxTickDuration time.Duration
	TicksPerSecond  float64

	// Indexed by Phase
	PhaseAvg [NumPhases]time.Duration
	PhasePct [NumPhases]float64

	FPS float64
}

// Stats computes the averages over the recorded ticks.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return s
	}

	var total time.Duration
	var phaseSum [NumPhases]time.Duration
	for _, sample := range p.samples[:p.count] {
		total += sample.tick
		s.MaxTickDuration = max(s.MaxTickDuration, sample.tick)
		for ph, d := range sample.phases {
			phaseSum[ph] += d
		}
	}

	n := time.Duration(p.count)
	s.AvgTickDuration = total / n
	for ph := range phaseSum {
		s.PhaseAvg[ph] = phaseSum[ph] / n
		if s.AvgTickDuration > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / float64(s.AvgTickDuration) * 100
		}
	}
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	return s
}

// ByName returns the average and share of the named phase.
func (s PerfStats) ByName(name string) (avg time.Duration, pct float64, ok bool) {
	ph, ok := PhaseByName(name)
	if !ok {
		return 0, 0, false
	}
	return s.PhaseAvg[ph], s.PhasePct[ph], true
}

// OverBudget reports whether the average tick exceeds the fixed step
// duration, meaning the simulation cannot keep up in real time.
func (s PerfStats) OverBudget(step time.Duration) bool {
	return step > 0 && s.AvgTickDuration > step
}

// LogStats logs the window at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for ph, pct := range s.PhasePct {
		if pct > 0.1 {
			attrs = append(attrs, slog.Float64(Phase(ph).String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd      int32   `csv:"window_end"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	TicksPerSec    float64 `csv:"ticks_per_sec"`
	FPS            float64 `csv:"fps"`
	PhysicsStepPct float64 `csv:"physics_step_pct"`
	ContactsPct    float64 `csv:"contacts_pct"`
	MutationsPct   float64 `csv:"mutations_pct"`
	ScoringPct     float64 `csv:"scoring_pct"`
	GameOverPct    float64 `csv:"game_over_pct"`
	TelemetryPct   float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats into a perf.csv row.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		AvgTickUS:      s.AvgTickDuration.Microseconds(),
		MaxTickUS:      s.MaxTickDuration.Microseconds(),
		TicksPerSec:    s.TicksPerSecond,
		FPS:            s.FPS,
		PhysicsStepPct: s.PhasePct[PhasePhysicsStep],
		ContactsPct:    s.PhasePct[PhaseContacts],
		MutationsPct:   s.PhasePct[PhaseMutations],
		ScoringPct:     s.PhasePct[PhaseScoring],
		GameOverPct:    s.PhasePct[PhaseGameOver],
		TelemetryPct:   s.PhasePct[PhaseTelemetry],
	}
}
