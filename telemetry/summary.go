package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a batch of sessions.
type Summary struct {
	Sessions     int     `csv:"sessions"`
	MeanScore    float64 `csv:"mean_score"`
	StdScore     float64 `csv:"std_score"`
	MedianScore  float64 `csv:"median_score"`
	MaxScore     float64 `csv:"max_score"`
	MeanMerges   float64 `csv:"mean_merges"`
	MeanDuration float64 `csv:"mean_duration_sec"`
	BestRank     int     `csv:"best_rank"`

	// Correlation between session length and score
	DurationScoreCorr float64 `csv:"duration_score_corr"`
}

// Summarize computes batch statistics over session records.
func Summarize(records []SessionRecord) Summary {
	n := len(records)
	if n == 0 {
		return Summary{BestRank: -1}
	}

	scores := make([]float64, n)
	merges := make([]float64, n)
	durations := make([]float64, n)
	best := -1
	for i, r := range records {
		scores[i] = float64(r.Score)
		merges[i] = float64(r.Merges)
		durations[i] = r.DurationSec
		if r.MaxRank > best {
			best = r.MaxRank
		}
	}

	s := Summary{
		Sessions:     n,
		MeanScore:    stat.Mean(scores, nil),
		MaxScore:     floats.Max(scores),
		MeanMerges:   stat.Mean(merges, nil),
		MeanDuration: stat.Mean(durations, nil),
		BestRank:     best,
	}
	if n > 1 {
		s.StdScore = stat.StdDev(scores, nil)
		if stat.Variance(durations, nil) > 0 && stat.Variance(scores, nil) > 0 {
			s.DurationScoreCorr = stat.Correlation(durations, scores, nil)
		}
	}

	sorted := make([]float64, n)
	copy(sorted, scores)
	sort.Float64s(sorted)
	s.MedianScore = stat.Quantile(0.5, stat.Empirical, sorted, nil)

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("sessions", s.Sessions),
		slog.Float64("mean_score", s.MeanScore),
		slog.Float64("std_score", s.StdScore),
		slog.Float64("median_score", s.MedianScore),
		slog.Float64("max_score", s.MaxScore),
		slog.Float64("mean_merges", s.MeanMerges),
		slog.Float64("mean_duration_sec", s.MeanDuration),
		slog.Int("best_rank", s.BestRank),
		slog.Float64("duration_score_corr", s.DurationScoreCorr),
	)
}
