package telemetry

import (
	"math"
	"testing"
	"time"
)

func TestComputeRankStats(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		wantMean float64
		wantP50  float64
		wantP90  float64
	}{
		{"empty", nil, 0, 0, 0},
		{"single", []float64{4}, 4, 4, 4},
		{"unsorted", []float64{2, 0, 1, 0}, 0.75, 0, 2},
		{"ten", []float64{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}, 4.5, 4, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, p50, p90 := ComputeRankStats(tt.values)
			if math.Abs(mean-tt.wantMean) > 0.001 {
				t.Errorf("mean = %v, want %v", mean, tt.wantMean)
			}
			if math.Abs(p50-tt.wantP50) > 0.001 {
				t.Errorf("p50 = %v, want %v", p50, tt.wantP50)
			}
			if math.Abs(p90-tt.wantP90) > 0.001 {
				t.Errorf("p90 = %v, want %v", p90, tt.wantP90)
			}
		})
	}
}

func TestComputeRankStatsDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeRankStats(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(1.0, 1.0/60.0)
	if c.WindowDurationTicks() != 60 {
		t.Fatalf("WindowDurationTicks = %d, want 60", c.WindowDurationTicks())
	}

	c.Record(Event{Type: EventDrop, Rank: 0})
	c.Record(Event{Type: EventDrop, Rank: 2})
	c.Record(Event{Type: EventMerge, Rank: 1, Points: 20, Chain: true})
	c.Record(Event{Type: EventMerge, Rank: 1, Points: 20})
	c.Record(NewGameOverEvent(50, 40))
	c.RecordOverLine(true, 500*time.Millisecond)
	c.RecordOverLine(false, 0)

	if c.ShouldFlush(59) {
		t.Error("ShouldFlush(59) before window end")
	}
	if !c.ShouldFlush(60) {
		t.Error("ShouldFlush(60) at window end")
	}

	stats := c.Flush(60, Board{
		Phase:    "playing",
		Score:    40,
		Ranks:    []float64{0, 1, 2},
		MaxRank:  2,
		MaxName:  "cat",
		StackTop: 420,
	})

	if stats.Drops != 2 || stats.Merges != 2 || stats.ChainMerges != 1 || stats.Points != 40 {
		t.Errorf("counters = %+v", stats)
	}
	if stats.LivePieces != 3 || stats.MaxSpecies != "cat" || stats.RankMean != 1 {
		t.Errorf("board = %+v", stats)
	}
	if stats.OverLineTicks != 1 || stats.PeakOverLineSec != 0.5 {
		t.Errorf("over-line = %d ticks, peak %v", stats.OverLineTicks, stats.PeakOverLineSec)
	}
	if math.Abs(stats.SimTimeSec-1.0) > 1e-9 {
		t.Errorf("SimTimeSec = %v, want 1", stats.SimTimeSec)
	}

	// Counters reset, session totals kept
	next := c.Flush(120, Board{MaxRank: -1})
	if next.Drops != 0 || next.Merges != 0 || next.OverLineTicks != 0 || next.WindowStartTick != 60 {
		t.Errorf("window not reset: %+v", next)
	}
}

func TestCollectorSessions(t *testing.T) {
	c := NewCollector(10, 0.5)
	c.Record(Event{Type: EventDrop, Rank: 1})
	c.Record(Event{Type: EventMerge, Rank: 3, Points: 40})

	rec := c.EndSession(20, 7, 40, 100, false)
	if rec.Session != 1 || rec.Drops != 1 || rec.Merges != 1 || rec.MaxRank != 3 {
		t.Errorf("record = %+v", rec)
	}
	if rec.DurationSec != 10 || rec.Seed != 7 || rec.Score != 40 {
		t.Errorf("record = %+v", rec)
	}

	c.BeginSession(30)
	if c.Session() != 2 {
		t.Errorf("Session = %d, want 2", c.Session())
	}
	rec = c.EndSession(34, 7, 0, 100, false)
	if rec.StartTick != 30 || rec.Drops != 0 || rec.MaxRank != -1 || rec.DurationSec != 2 {
		t.Errorf("second record = %+v", rec)
	}
}

func TestSummarize(t *testing.T) {
	if s := Summarize(nil); s.Sessions != 0 || s.BestRank != -1 {
		t.Errorf("empty summary = %+v", s)
	}

	records := []SessionRecord{
		{Score: 100, Merges: 5, DurationSec: 30, MaxRank: 2},
		{Score: 200, Merges: 9, DurationSec: 60, MaxRank: 4},
		{Score: 300, Merges: 13, DurationSec: 90, MaxRank: 3},
	}
	s := Summarize(records)

	if s.Sessions != 3 || s.MeanScore != 200 || s.MaxScore != 300 || s.MedianScore != 200 {
		t.Errorf("summary = %+v", s)
	}
	if math.Abs(s.StdScore-100) > 1e-9 {
		t.Errorf("StdScore = %v, want 100", s.StdScore)
	}
	if s.MeanMerges != 9 || s.MeanDuration != 60 || s.BestRank != 4 {
		t.Errorf("summary = %+v", s)
	}
	if math.Abs(s.DurationScoreCorr-1) > 1e-9 {
		t.Errorf("DurationScoreCorr = %v, want 1", s.DurationScoreCorr)
	}
}
