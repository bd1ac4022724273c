package main

import (
	"log/slog"
	"sync"

	"github.com/pthm-cable/zoodrop/config"
	"github.com/pthm-cable/zoodrop/game"
	"github.com/pthm-cable/zoodrop/systems"
	"github.com/pthm-cable/zoodrop/telemetry"
)

// Result is one bot session, flattened for CSV.
type Result struct {
	Seed        int64   `csv:"seed"`
	Score       int     `csv:"score"`
	Drops       int     `csv:"drops"`
	Merges      int     `csv:"merges"`
	ChainMerges int     `csv:"chain_merges"`
	Ticks       int32   `csv:"ticks"`
	DurationSec float64 `csv:"duration_sec"`
	MaxSpecies  string  `csv:"max_species"`
	GameOver    bool    `csv:"game_over"`
}

// Record converts the result for telemetry.Summarize.
func (r Result) Record() telemetry.SessionRecord {
	return telemetry.SessionRecord{
		Session:     1,
		Seed:        r.Seed,
		EndTick:     r.Ticks,
		DurationSec: r.DurationSec,
		Score:       r.Score,
		Drops:       r.Drops,
		Merges:      r.Merges,
		MaxSpecies:  r.MaxSpecies,
	}
}

// Evaluator plays headless sessions with a bot.
type Evaluator struct {
	cfg      *config.Config
	seeds    []int64
	maxTicks int32
}

// NewEvaluator creates an evaluator playing one session per seed.
func NewEvaluator(cfg *config.Config, seeds []int64, maxTicks int32) *Evaluator {
	return &Evaluator{cfg: cfg, seeds: seeds, maxTicks: maxTicks}
}

// PlayAll runs every seed in parallel with the same policy.
func (e *Evaluator) PlayAll(policy Policy) []Result {
	results := make([]Result, len(e.seeds))
	var wg sync.WaitGroup

	for i, seed := range e.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = e.Play(policy, s)
		}(i, seed)
	}
	wg.Wait()

	return results
}

// Play runs one session until game over or the tick cap.
func (e *Evaluator) Play(policy Policy, seed int64) Result {
	res := Result{Seed: seed}
	maxRank := -1

	g, err := game.NewGameWithOptions(game.Options{
		Seed:     seed,
		Headless: true,
		Config:   e.cfg,
		EventCallback: func(ev telemetry.Event) {
			switch ev.Type {
			case telemetry.EventDrop:
				res.Drops++
			case telemetry.EventMerge:
				res.Merges++
				if ev.Chain {
					res.ChainMerges++
				}
			default:
				return
			}
			if ev.Rank > maxRank {
				maxRank = ev.Rank
				res.MaxSpecies = string(ev.Species)
			}
		},
	})
	if err != nil {
		slog.Error("failed to create game", "seed", seed, "error", err)
		return res
	}
	defer g.Unload()

	bot := NewBot(policy, seed, e.cfg)
	for g.Tick() < e.maxTicks && g.Phase() == systems.PhasePlaying {
		bot.Act(g)
		g.Step()
	}

	res.Score = g.Score()
	res.Ticks = g.Tick()
	res.DurationSec = float64(res.Ticks) * e.cfg.Physics.DT
	res.GameOver = g.Phase() == systems.PhaseGameOver
	return res
}

// Evaluate scores a normalized parameter vector (lower = better):
// the negated mean session score.
func (e *Evaluator) Evaluate(params *ParamVector, x []float64) float64 {
	results := e.PlayAll(params.Policy(params.Denormalize(x)))
	var total float64
	for _, r := range results {
		total += float64(r.Score)
	}
	return -total / float64(len(results))
}
