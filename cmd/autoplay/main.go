// Package main runs a headless bot over seeded sessions and summarises the
// scores. With -tune it searches the bot's policy with CMA-ES.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/zoodrop/config"
	"github.com/pthm-cable/zoodrop/telemetry"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// TuneRow is one line of tune_log.csv.
type TuneRow struct {
	Eval            int     `csv:"eval"`
	MeanScore       float64 `csv:"mean_score"`
	DropIntervalSec float64 `csv:"drop_interval_sec"`
	MatchBias       float64 `csv:"match_bias"`
	Jitter          float64 `csv:"jitter"`
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	sessions := flag.Int("sessions", 8, "Number of seeded sessions")
	baseSeed := flag.Int64("seed", 42, "Seed of the first session")
	maxTicks := flag.Int("max-ticks", 60*60*10, "Tick cap per session")
	outputDir := flag.String("output", "", "Output directory for results (empty = print only)")
	tune := flag.Bool("tune", false, "Search the bot policy with CMA-ES")
	maxEvals := flag.Int("max-evals", 60, "Maximum policy evaluations when tuning")
	interval := flag.Float64("interval", 1.0, "Seconds between drops")
	matchBias := flag.Float64("match-bias", 0.6, "Chance of aiming at a matching piece")
	jitter := flag.Float64("jitter", 10, "Aim error stddev")
	flag.Parse()

	// Games log every session; keep only problems
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if *outputDir != "" {
		if err := os.MkdirAll(*outputDir, 0755); err != nil {
			log.Fatalf("failed to create output directory: %v", err)
		}
	}

	seeds := make([]int64, *sessions)
	for i := range seeds {
		seeds[i] = *baseSeed + int64(i)*1000
	}
	evaluator := NewEvaluator(cfg, seeds, int32(*maxTicks))
	params := NewParamVector()

	policy := params.Policy([]float64{*interval, *matchBias, *jitter})
	if *tune {
		policy = runTune(evaluator, params, *maxEvals, *outputDir)
	}

	start := time.Now()
	results := evaluator.PlayAll(policy)
	report(results, policy, time.Since(start))

	if *outputDir != "" {
		path := filepath.Join(*outputDir, "results.csv")
		if err := writeCSV(path, results); err != nil {
			log.Printf("failed to write results: %v", err)
		} else {
			fmt.Printf("Results saved to: %s\n", path)
		}
	}
}

func report(results []Result, policy Policy, elapsed time.Duration) {
	records := make([]telemetry.SessionRecord, len(results))
	gameOvers := 0
	for i, r := range results {
		records[i] = r.Record()
		if r.GameOver {
			gameOvers++
		}
		fmt.Printf("seed=%d score=%d drops=%d merges=%d chains=%d max=%s time=%.0fs game_over=%v\n",
			r.Seed, r.Score, r.Drops, r.Merges, r.ChainMerges, r.MaxSpecies, r.DurationSec, r.GameOver)
	}

	sum := telemetry.Summarize(records)
	fmt.Printf("\nPolicy: interval=%.2fs match_bias=%.2f jitter=%.1f\n",
		policy.DropIntervalSec, policy.MatchBias, policy.Jitter)
	fmt.Printf("Sessions: %d (%d ended in game over) in %s\n", sum.Sessions, gameOvers, formatDuration(elapsed))
	fmt.Printf("Score: mean=%.1f std=%.1f median=%.0f max=%.0f\n",
		sum.MeanScore, sum.StdScore, sum.MedianScore, sum.MaxScore)
	fmt.Printf("Mean merges: %.1f, mean duration: %.0fs, duration/score corr: %.2f\n",
		sum.MeanMerges, sum.MeanDuration, sum.DurationScoreCorr)
}

func runTune(evaluator *Evaluator, params *ParamVector, maxEvals int, outputDir string) Policy {
	var rows []TuneRow
	best := 1e18
	var bestX []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			fitness := evaluator.Evaluate(params, x)
			raw := params.Clamp(params.Denormalize(x))
			rows = append(rows, TuneRow{
				Eval:            len(rows) + 1,
				MeanScore:       -fitness,
				DropIntervalSec: raw[0],
				MatchBias:       raw[1],
				Jitter:          raw[2],
			})
			if fitness < best {
				best = fitness
				bestX = raw
			}

			elapsed := time.Since(startTime)
			remaining := time.Duration(maxEvals-len(rows)) * (elapsed / time.Duration(len(rows)))
			fmt.Printf("Eval %d/%d: mean_score=%.1f (best=%.1f) | elapsed: %s, ETA: %s\n",
				len(rows), maxEvals, -fitness, -best, formatDuration(elapsed), formatDuration(remaining))
			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: maxEvals,
		Concurrent:      0,
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   4 + 3*params.Dim()/2,
	}

	fmt.Printf("Starting CMA-ES over %d parameters, max_evals=%d\n", params.Dim(), maxEvals)
	result, err := optimize.Minimize(problem, params.Normalize(params.DefaultVector()), settings, method)
	if err != nil {
		fmt.Printf("optimization ended: %v\n", err)
	}
	if bestX == nil && result != nil {
		bestX = params.Clamp(params.Denormalize(result.X))
	}

	if outputDir != "" {
		path := filepath.Join(outputDir, "tune_log.csv")
		if err := writeCSV(path, rows); err != nil {
			fmt.Printf("failed to write tune log: %v\n", err)
		}
	}

	if bestX == nil {
		bestX = params.DefaultVector()
	}
	return params.Policy(bestX)
}

func writeCSV(path string, rows interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gocsv.MarshalFile(rows, f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
