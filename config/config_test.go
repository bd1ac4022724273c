package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Derived.ArenaWidth != float64(cfg.Screen.Width) {
		t.Errorf("ArenaWidth = %v, want screen width %d", cfg.Derived.ArenaWidth, cfg.Screen.Width)
	}
	if cfg.Derived.ArenaLeft != 50 || cfg.Derived.ArenaRight != 550 {
		t.Errorf("arena bounds = [%v, %v], want [50, 550]", cfg.Derived.ArenaLeft, cfg.Derived.ArenaRight)
	}
	if cfg.Derived.Grace != 2*time.Second {
		t.Errorf("Grace = %v, want 2s", cfg.Derived.Grace)
	}
	// 1/60 s rounds to the nearest nanosecond
	if d := cfg.Derived.StepDuration - time.Second/60; d < 0 || d > time.Nanosecond {
		t.Errorf("StepDuration = %v, want ~%v", cfg.Derived.StepDuration, time.Second/60)
	}
	if len(cfg.Species) != 9 {
		t.Fatalf("got %d species, want 9", len(cfg.Species))
	}
	last := cfg.Species[len(cfg.Species)-1]
	if last.EvolvesTo != "" {
		t.Errorf("terminal species %q evolves to %q", last.Name, last.EvolvesTo)
	}
	if cfg.Species[0].Color != [3]uint8{128, 128, 128} {
		t.Errorf("first species color = %v", cfg.Species[0].Color)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := []byte(`
rules:
  grace_seconds: 0.5
species:
  - {name: mouse, radius: 10, color: [1, 2, 3], evolves_to: cat}
  - {name: cat, radius: 20, color: [4, 5, 6]}
`)
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Derived.Grace != 500*time.Millisecond {
		t.Errorf("Grace = %v, want 500ms", cfg.Derived.Grace)
	}
	if len(cfg.Species) != 2 {
		t.Errorf("species list should be replaced, got %d entries", len(cfg.Species))
	}
	// Untouched sections keep their defaults
	if cfg.Rules.GameOverLineY != 100 {
		t.Errorf("GameOverLineY = %v, want 100", cfg.Rules.GameOverLineY)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero dt", "physics: {dt: 0}"},
		{"negative grace", "rules: {grace_seconds: -1}"},
		{"empty pool", "rules: {spawn_pool_size: 0}"},
		{"no species", "species: []"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Rules.GameOverLineY = 123

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if reloaded.Rules.GameOverLineY != 123 {
		t.Errorf("GameOverLineY = %v, want 123", reloaded.Rules.GameOverLineY)
	}
	if len(reloaded.Species) != len(cfg.Species) {
		t.Errorf("species count = %d, want %d", len(reloaded.Species), len(cfg.Species))
	}
}
