// Package game wires the merge rules, the physics space and the renderer
// into a playable loop.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/zoodrop/camera"
	"github.com/pthm-cable/zoodrop/config"
	"github.com/pthm-cable/zoodrop/highscore"
	"github.com/pthm-cable/zoodrop/physics"
	"github.com/pthm-cable/zoodrop/species"
	"github.com/pthm-cable/zoodrop/systems"
	"github.com/pthm-cable/zoodrop/telemetry"
	"github.com/pthm-cable/zoodrop/ui"
)

// Options configures a Game.
type Options struct {
	Seed           int64
	Headless       bool
	LogStats       bool
	StatsWindowSec float64 // 0 = config telemetry.stats_window
	SnapshotDir    string
	OutputDir      string
	StepsPerUpdate int
	HighScorePath  string // "" = keep the high score in memory

	// Optional overrides, mostly for tests.
	Config        *config.Config  // nil = config.Cfg()
	Engine        physics.Engine  // nil = Chipmunk space built from Config
	Store         highscore.Store // nil = file at HighScorePath
	StatsCallback func(telemetry.WindowStats)
	EventCallback func(telemetry.Event)
}

// Game holds the complete game state.
type Game struct {
	cfg     *config.Config
	rng     *rand.Rand
	rngSeed int64

	catalog  *species.Catalog
	engine   physics.Engine
	registry *systems.Registry
	resolver *systems.CollisionResolver
	mutator  *systems.Mutator
	monitor  systems.GameOverMonitor
	spawner  *systems.SpawnController
	store    highscore.Store

	session Session

	// Per-step scratch, reused across ticks
	plan     systems.PendingMutations
	contacts []physics.Contact
	live     []systems.Live
	chains   []bool

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	systemRegistry   *systems.SystemRegistry
	sessions         []telemetry.SessionRecord
	statsCallback    func(telemetry.WindowStats)
	eventCallback    func(telemetry.Event)
	logStats         bool
	snapshotDir      string

	// State
	tick             int32
	paused           bool
	headless         bool
	stepsPerUpdate   int
	pointerX         float64
	restartRequested bool

	// UI (nil in headless mode)
	cam           *camera.Camera
	hud           *ui.HUD
	gameOverPanel *ui.GameOverPanel
	perfPanel     *ui.PerfPanel
	debugPanel    *ui.DebugPanel
	controlsPanel *ui.ControlsPanel
	overlays      *ui.OverlayRegistry
}

// NewGameWithOptions creates a new game instance.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	catalog, err := species.FromConfig(cfg.Species)
	if err != nil {
		return nil, err
	}

	engine := opts.Engine
	if engine == nil {
		engine = physics.NewSpace(physics.ArenaSpec{
			Width:      cfg.Derived.ArenaWidth,
			Height:     cfg.Derived.ArenaHeight,
			Inset:      cfg.Arena.WallInset,
			Thickness:  cfg.Arena.WallThickness,
			Elasticity: cfg.Arena.WallElasticity,
			Friction:   cfg.Arena.WallFriction,
			Gravity:    physics.Vec{X: cfg.Physics.GravityX, Y: cfg.Physics.GravityY},
			Iterations: cfg.Physics.Iterations,
		})
	}

	store := opts.Store
	if store == nil {
		if opts.HighScorePath != "" {
			store = highscore.NewFile(opts.HighScorePath)
		} else {
			store = highscore.NewMemory(0)
		}
	}

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}
	statsWindowSec := opts.StatsWindowSec
	if statsWindowSec <= 0 {
		statsWindowSec = cfg.Telemetry.StatsWindow
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	body := physics.BodyParams{
		Mass:       cfg.Physics.Mass,
		Elasticity: cfg.Physics.Elasticity,
		Friction:   cfg.Physics.Friction,
	}
	registry := systems.NewRegistry(engine, catalog, body)

	g := &Game{
		cfg:      cfg,
		rng:      rng,
		rngSeed:  opts.Seed,
		catalog:  catalog,
		engine:   engine,
		registry: registry,
		resolver: systems.NewCollisionResolver(registry, catalog),
		mutator:  systems.NewMutator(registry),
		monitor: systems.GameOverMonitor{
			Line:  cfg.Rules.GameOverLineY,
			Grace: cfg.Derived.Grace,
		},
		spawner: systems.NewSpawnController(
			catalog, rng,
			cfg.Derived.ArenaWidth, cfg.Arena.WallInset,
			cfg.Rules.SpawnY, cfg.Rules.SpawnPoolSize,
		),
		store: store,

		collector:        telemetry.NewCollector(statsWindowSec, cfg.Physics.DT),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(10, cfg.Derived.Grace),
		systemRegistry:   systems.NewSystemRegistry(),
		statsCallback:    opts.StatsCallback,
		eventCallback:    opts.EventCallback,
		logStats:         opts.LogStats,
		snapshotDir:      opts.SnapshotDir,

		headless:       opts.Headless,
		stepsPerUpdate: stepsPerUpdate,
		pointerX:       cfg.Derived.ArenaWidth / 2,
	}

	g.session = newSession(systems.NewScoreTracker(cfg.Rules.ScorePerRank), g.loadHighScore())
	g.session.Next = g.spawner.Next()

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	if !opts.Headless {
		g.initUI()
	}

	slog.Info("game_created",
		"seed", opts.Seed,
		"species", catalog.Len(),
		"high_score", g.session.HighScore,
		"headless", opts.Headless,
	)

	return g, nil
}

// loadHighScore reads the persisted high score, defaulting to 0.
func (g *Game) loadHighScore() int {
	score, ok := g.store.Load()
	if !ok {
		slog.Debug("high_score_unavailable")
		return 0
	}
	return score
}

func (g *Game) initUI() {
	w := int32(g.cfg.Screen.Width)
	g.cam = camera.New(
		float32(g.cfg.Screen.Width), float32(g.cfg.Screen.Height),
		float32(g.cfg.Derived.ArenaWidth), float32(g.cfg.Derived.ArenaHeight),
	)
	g.hud = ui.NewHUD()
	g.gameOverPanel = ui.NewGameOverPanel(300, 220)
	g.perfPanel = ui.NewPerfPanel(w-250, 10, g.systemRegistry)
	g.debugPanel = ui.NewDebugPanel(w-250, 140, 240)
	g.controlsPanel = ui.NewControlsPanel(w-250, 260, 240, keyBindings)
	g.overlays = ui.NewOverlayRegistry()
}

// emit records an event and forwards it to the callback, if any.
func (g *Game) emit(ev telemetry.Event) {
	g.collector.Record(ev)
	if g.eventCallback != nil {
		g.eventCallback(ev)
	}
}

// Update handles input then runs stepsPerUpdate steps unless paused.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step()
	}
}

// UpdateHeadless runs simulation steps without input or rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step()
	}
}

// Unload flushes and closes telemetry outputs.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output files", "error", err)
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Phase returns the current session phase.
func (g *Game) Phase() systems.Phase {
	return g.session.Phase
}

// Score returns the current session score.
func (g *Game) Score() int {
	return g.session.Score.Score()
}

// HighScore returns the best score known to this process.
func (g *Game) HighScore() int {
	return g.session.HighScore
}

// Next returns the species that the next drop will spawn.
func (g *Game) Next() *species.Species {
	return g.session.Next
}

// LivePieces returns the number of pieces in the arena.
func (g *Game) LivePieces() int {
	return g.registry.Len()
}

// Sessions returns the records of every finished session.
func (g *Game) Sessions() []telemetry.SessionRecord {
	return g.sessions
}

// Catalog returns the species catalog.
func (g *Game) Catalog() *species.Catalog {
	return g.catalog
}

// SetPointer moves the drop preview.
func (g *Game) SetPointer(x float64) {
	g.pointerX = x
}
