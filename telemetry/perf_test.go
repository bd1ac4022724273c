package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_PhaseTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhasePhysicsStep)
		time.Sleep(200 * time.Microsecond)
		pc.StartPhase(PhaseContacts)
		time.Sleep(20 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 || stats.TicksPerSecond <= 0 {
		t.Fatalf("stats = %+v, want positive tick timing", stats)
	}
	if stats.PhaseAvg[PhasePhysicsStep] < 200*time.Microsecond {
		t.Errorf("physics avg = %v, want >= 200µs", stats.PhaseAvg[PhasePhysicsStep])
	}
	if stats.PhasePct[PhasePhysicsStep] <= stats.PhasePct[PhaseContacts] {
		t.Errorf("physics %.1f%% <= contacts %.1f%%",
			stats.PhasePct[PhasePhysicsStep], stats.PhasePct[PhaseContacts])
	}
	if stats.PhaseAvg[PhaseScoring] != 0 {
		t.Errorf("scoring never ran but avg = %v", stats.PhaseAvg[PhaseScoring])
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(3)

	// One slow tick followed by enough fast ones to push it out
	pc.StartTick()
	pc.StartPhase(PhasePhysicsStep)
	time.Sleep(5 * time.Millisecond)
	pc.EndTick()
	for i := 0; i < 3; i++ {
		pc.StartTick()
		pc.StartPhase(PhasePhysicsStep)
		pc.EndTick()
	}

	if slowest := pc.Stats().MaxTickDuration; slowest >= 5*time.Millisecond {
		t.Errorf("MaxTickDuration = %v, slow tick should have left the window", slowest)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(0).Stats()
	if stats.AvgTickDuration != 0 || stats.TicksPerSecond != 0 {
		t.Errorf("empty collector stats = %+v", stats)
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	// With 16ms frames, expect ~60 FPS (allow range 20-70)
	if fps := pc.Stats().FPS; fps < 20 || fps > 70 {
		t.Errorf("FPS = %v, want roughly 60", fps)
	}
}

func TestPhaseNames(t *testing.T) {
	for ph := Phase(0); ph < NumPhases; ph++ {
		got, ok := PhaseByName(ph.String())
		if !ok || got != ph {
			t.Errorf("PhaseByName(%q) = %v, %v", ph.String(), got, ok)
		}
	}
	if _, ok := PhaseByName("render"); ok {
		t.Error("unknown phase name resolved")
	}
	if NumPhases.String() != "unknown" {
		t.Errorf("out of range phase = %q", NumPhases.String())
	}
}

func TestPerfStats_ByName(t *testing.T) {
	var stats PerfStats
	stats.PhaseAvg[PhaseGameOver] = 40 * time.Microsecond
	stats.PhasePct[PhaseGameOver] = 12.5

	avg, pct, ok := stats.ByName("game_over")
	if !ok || avg != 40*time.Microsecond || pct != 12.5 {
		t.Errorf("ByName(game_over) = %v, %v, %v", avg, pct, ok)
	}
	if _, _, ok := stats.ByName("render"); ok {
		t.Error("ByName(render) reported ok")
	}
}

func TestPerfStats_OverBudget(t *testing.T) {
	tests := []struct {
		name string
		avg  time.Duration
		step time.Duration
		want bool
	}{
		{"under", 2 * time.Millisecond, 16 * time.Millisecond, false},
		{"over", 20 * time.Millisecond, 16 * time.Millisecond, true},
		{"no budget", 20 * time.Millisecond, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := PerfStats{AvgTickDuration: tt.avg}
			if got := s.OverBudget(tt.step); got != tt.want {
				t.Errorf("OverBudget(%v) = %v, want %v", tt.step, got, tt.want)
			}
		})
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{AvgTickDuration: 1500 * time.Microsecond}
	stats.PhasePct[PhasePhysicsStep] = 60
	stats.PhasePct[PhaseGameOver] = 3

	row := stats.ToCSV(120)
	if row.WindowEnd != 120 || row.AvgTickUS != 1500 {
		t.Errorf("row = %+v", row)
	}
	if row.PhysicsStepPct != 60 || row.GameOverPct != 3 || row.ContactsPct != 0 {
		t.Errorf("phase columns = %+v", row)
	}
}
