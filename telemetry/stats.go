package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Session         int     `csv:"session"`
	Phase           string  `csv:"phase"`

	// Score at window end
	Score     int `csv:"score"`
	HighScore int `csv:"high_score"`

	// Events during window
	Drops       int `csv:"drops"`
	Merges      int `csv:"merges"`
	ChainMerges int `csv:"chain_merges"` // merges that consumed a merge product
	Points      int `csv:"points"`

	// Board sampled at window end
	LivePieces int     `csv:"live"`
	MaxRank    int     `csv:"max_rank"`
	MaxSpecies string  `csv:"max_species"`
	RankMean   float64 `csv:"rank_mean"`
	RankP50    float64 `csv:"rank_p50"`
	RankP90    float64 `csv:"rank_p90"`
	StackTop   float64 `csv:"stack_top"` // smallest y reached by any piece's top edge

	// Game-over pressure
	OverLineTicks   int     `csv:"over_line_ticks"`
	PeakOverLineSec float64 `csv:"peak_over_line_sec"`
}

// ComputeRankStats calculates mean and empirical quantiles of piece ranks.
func ComputeRankStats(values []float64) (mean, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("session", s.Session),
		slog.String("phase", s.Phase),
		slog.Int("score", s.Score),
		slog.Int("high_score", s.HighScore),
		slog.Int("drops", s.Drops),
		slog.Int("merges", s.Merges),
		slog.Int("chain_merges", s.ChainMerges),
		slog.Int("points", s.Points),
		slog.Int("live", s.LivePieces),
		slog.Int("max_rank", s.MaxRank),
		slog.String("max_species", s.MaxSpecies),
		slog.Float64("rank_mean", s.RankMean),
		slog.Float64("rank_p50", s.RankP50),
		slog.Float64("rank_p90", s.RankP90),
		slog.Float64("stack_top", s.StackTop),
		slog.Int("over_line_ticks", s.OverLineTicks),
		slog.Float64("peak_over_line_sec", s.PeakOverLineSec),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"session", s.Session,
		"phase", s.Phase,
		"score", s.Score,
		"high_score", s.HighScore,
		"drops", s.Drops,
		"merges", s.Merges,
		"chain_merges", s.ChainMerges,
		"points", s.Points,
		"live", s.LivePieces,
		"max_rank", s.MaxRank,
		"max_species", s.MaxSpecies,
		"rank_mean", s.RankMean,
		"stack_top", s.StackTop,
		"over_line_ticks", s.OverLineTicks,
		"peak_over_line_sec", s.PeakOverLineSec,
	)
}
