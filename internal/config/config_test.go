package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Physics.Gravity != (Vec2{0, 0.005}) {
		t.Errorf("expected gravity (0, 0.005), got %v", cfg.Physics.Gravity)
	}
	if cfg.Physics.MaxSpeed != 10 {
		t.Errorf("expected max speed 10, got %v", cfg.Physics.MaxSpeed)
	}
	if cfg.Physics.Iterations != 20 {
		t.Errorf("expected 20 iterations, got %d", cfg.Physics.Iterations)
	}
	if cfg.Editor.PickRadius != 4 || cfg.Editor.LinkTolerance != 2 {
		t.Errorf("unexpected editor defaults: %+v", cfg.Editor)
	}
	if cfg.Grid.Origin != (Vec2{280, 25}) || cfg.Grid.Height != 670 {
		t.Errorf("unexpected grid defaults: %+v", cfg.Grid)
	}
	if cfg.Wind.Enabled {
		t.Error("wind must be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero max speed", func(c *Config) { c.Physics.MaxSpeed = 0 }},
		{"negative iterations", func(c *Config) { c.Physics.Iterations = -1 }},
		{"zero pick radius", func(c *Config) { c.Editor.PickRadius = 0 }},
		{"zero tolerance", func(c *Config) { c.Editor.LinkTolerance = 0 }},
		{"zero world", func(c *Config) { c.World.Width = 0 }},
		{"negative rows", func(c *Config) { c.Grid.Rows = -2 }},
		{"inverted wind", func(c *Config) { c.Wind.MinStrength, c.Wind.MaxStrength = 2, 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloth.yaml")
	data := []byte("physics:\n  iterations: 5\n  gravity: [0, 0.01]\ngrid:\n  columns: 4\n  rows: 3\nwind:\n  enabled: true\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Physics.Iterations != 5 || cfg.Physics.Gravity != (Vec2{0, 0.01}) {
		t.Errorf("physics not loaded: %+v", cfg.Physics)
	}
	if cfg.Grid.Columns != 4 || cfg.Grid.Rows != 3 {
		t.Errorf("grid not loaded: %+v", cfg.Grid)
	}
	if !cfg.Wind.Enabled {
		t.Error("wind not enabled")
	}
	// untouched fields keep defaults
	if cfg.Physics.MaxSpeed != 10 || cfg.Editor.PickRadius != 4 {
		t.Error("defaults lost while loading")
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloth.toml")
	data := []byte("[physics]\niterations = 7\n\n[editor]\npick_radius = 6.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Physics.Iterations != 7 || cfg.Editor.PickRadius != 6.5 {
		t.Errorf("toml values not applied: %+v %+v", cfg.Physics, cfg.Editor)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  max_speed: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() = %v, want ErrInvalidConfig", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"cloth.yaml", "cloth.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg := GetPreset("banner")
			if err := Save(path, cfg); err != nil {
				t.Fatalf("save failed: %v", err)
			}
			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if loaded.Grid != cfg.Grid {
				t.Errorf("grid = %+v, want %+v", loaded.Grid, cfg.Grid)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("curtain")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Grid.PinEvery != 3 {
		t.Errorf("expected pin_every 3, got %d", cfg.Grid.PinEvery)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}

	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestPresetsAreIndependent(t *testing.T) {
	a := GetPreset("default")
	a.Grid.Columns = 1
	b := GetPreset("default")
	if b.Grid.Columns != DefaultGridSize {
		t.Error("mutating one preset config leaked into another")
	}
}

func TestGridSpec(t *testing.T) {
	cfg := DefaultConfig()
	spec := cfg.GridSpec()
	if spec.Origin.X != 280 || spec.Columns != 30 {
		t.Errorf("unexpected spec %+v", spec)
	}
	if cfg.Dynamo().Gravity.Y != 0.005 {
		t.Errorf("unexpected dynamo config %+v", cfg.Dynamo())
	}
}
