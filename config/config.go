// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Arena     ArenaConfig     `yaml:"arena"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Rules     RulesConfig     `yaml:"rules"`
	Species   []SpeciesConfig `yaml:"species"`
	HighScore HighScoreConfig `yaml:"high_score"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// ArenaConfig describes the walled container pieces are dropped into.
// The arena is open at the top; walls run from the floor up to WallInset.
type ArenaConfig struct {
	Width          float64 `yaml:"width"`  // 0 = screen width
	Height         float64 `yaml:"height"` // 0 = screen height
	WallInset      float64 `yaml:"wall_inset"`
	WallThickness  float64 `yaml:"wall_thickness"`
	WallElasticity float64 `yaml:"wall_elasticity"`
	WallFriction   float64 `yaml:"wall_friction"`
}

// PhysicsConfig holds rigid-body simulation parameters.
type PhysicsConfig struct {
	DT         float64 `yaml:"dt"`
	GravityX   float64 `yaml:"gravity_x"`
	GravityY   float64 `yaml:"gravity_y"`
	Iterations int     `yaml:"iterations"`
	Mass       float64 `yaml:"mass"`
	Elasticity float64 `yaml:"elasticity"`
	Friction   float64 `yaml:"friction"`
}

// RulesConfig holds gameplay rules.
type RulesConfig struct {
	GameOverLineY float64 `yaml:"game_over_line_y"`
	GraceSeconds  float64 `yaml:"grace_seconds"`   // over-line time tolerated before game over
	SpawnY        float64 `yaml:"spawn_y"`
	SpawnPoolSize int     `yaml:"spawn_pool_size"` // next piece is drawn from the first N species
	ScorePerRank  int     `yaml:"score_per_rank"`  // merge into rank r scores ScorePerRank*(r+1)
}

// SpeciesConfig is one link of the evolution chain.
// Color is an RGB triple; EvolvesTo is empty for the terminal form.
type SpeciesConfig struct {
	Name      string   `yaml:"name"`
	Radius    float64  `yaml:"radius"`
	Color     [3]uint8 `yaml:"color,flow"`
	EvolvesTo string   `yaml:"evolves_to,omitempty"`
}

// HighScoreConfig holds persistence settings.
type HighScoreConfig struct {
	Path string `yaml:"path"` // empty = keep in memory only
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	StepDuration time.Duration // Physics.DT as a duration
	Grace        time.Duration // Rules.GraceSeconds as a duration
	ArenaWidth   float64       // effective arena width
	ArenaHeight  float64       // effective arena height
	ArenaLeft    float64       // inner x of the left wall
	ArenaRight   float64       // inner x of the right wall
	ArenaFloor   float64       // y of the floor
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file. A species list in the file
		// replaces the default chain wholesale.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the game loop cannot run with.
// Species chain integrity is checked by the species package.
func (c *Config) validate() error {
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT)
	}
	if c.Physics.Mass <= 0 {
		return fmt.Errorf("physics.mass must be positive, got %v", c.Physics.Mass)
	}
	if c.Rules.GraceSeconds < 0 {
		return fmt.Errorf("rules.grace_seconds must not be negative, got %v", c.Rules.GraceSeconds)
	}
	if c.Rules.SpawnPoolSize < 1 {
		return fmt.Errorf("rules.spawn_pool_size must be at least 1, got %d", c.Rules.SpawnPoolSize)
	}
	if len(c.Species) == 0 {
		return fmt.Errorf("species list is empty")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.StepDuration = secondsToDuration(c.Physics.DT)
	c.Derived.Grace = secondsToDuration(c.Rules.GraceSeconds)

	// Arena dimensions default to screen size if not specified
	w := c.Arena.Width
	if w == 0 {
		w = float64(c.Screen.Width)
	}
	h := c.Arena.Height
	if h == 0 {
		h = float64(c.Screen.Height)
	}
	c.Derived.ArenaWidth = w
	c.Derived.ArenaHeight = h
	c.Derived.ArenaLeft = c.Arena.WallInset
	c.Derived.ArenaRight = w - c.Arena.WallInset
	c.Derived.ArenaFloor = h - c.Arena.WallInset

	if c.Physics.Iterations == 0 {
		c.Physics.Iterations = 10
	}
	if c.Rules.ScorePerRank == 0 {
		c.Rules.ScorePerRank = 10
	}
	if c.Telemetry.PerfCollectorWindow == 0 {
		c.Telemetry.PerfCollectorWindow = 60
	}
}

// secondsToDuration rounds to the nearest nanosecond.
func secondsToDuration(sec float64) time.Duration {
	return time.Duration(math.Round(sec * float64(time.Second)))
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
