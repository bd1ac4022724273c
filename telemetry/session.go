package telemetry

import "log/slog"

// SessionRecord summarises one game from first drop to game over.
type SessionRecord struct {
	Session      int     `csv:"session"`
	Seed         int64   `csv:"seed"`
	StartTick    int32   `csv:"start_tick"`
	EndTick      int32   `csv:"end_tick"`
	DurationSec  float64 `csv:"duration_sec"`
	Score        int     `csv:"score"`
	HighScore    int     `csv:"high_score"`
	NewHighScore bool    `csv:"new_high_score"`
	Drops        int     `csv:"drops"`
	Merges       int     `csv:"merges"`
	MaxRank      int     `csv:"max_rank"`
	MaxSpecies   string  `csv:"max_species"`
}

// LogValue implements slog.LogValuer for structured logging.
func (r SessionRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("session", r.Session),
		slog.Int64("seed", r.Seed),
		slog.Float64("duration_sec", r.DurationSec),
		slog.Int("score", r.Score),
		slog.Int("high_score", r.HighScore),
		slog.Bool("new_high_score", r.NewHighScore),
		slog.Int("drops", r.Drops),
		slog.Int("merges", r.Merges),
		slog.String("max_species", r.MaxSpecies),
	)
}
