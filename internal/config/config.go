package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/san-kum/clothsim/internal/dynamo"
	"github.com/san-kum/clothsim/internal/editor"
	"github.com/san-kum/clothsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWorldWidth    = 1280.0
	DefaultWorldHeight   = 720.0
	DefaultPickRadius    = 4.0
	DefaultLinkTolerance = 2.0
	DefaultMaxFrameMs    = 50.0
	DefaultGridSize      = 30
	DefaultFrames        = 600
	DefaultDt            = 1000.0 / 60.0
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Vec2 is an [x, y] pair in config files.
type Vec2 [2]float64

func (v Vec2) R2() r2.Vec { return r2.Vec{X: v[0], Y: v[1]} }

type Config struct {
	Physics PhysicsConfig `yaml:"physics" toml:"physics"`
	Editor  EditorConfig  `yaml:"editor" toml:"editor"`
	World   WorldConfig   `yaml:"world" toml:"world"`
	Grid    GridConfig    `yaml:"grid" toml:"grid"`
	Wind    WindConfig    `yaml:"wind" toml:"wind"`
	Run     RunConfig     `yaml:"run" toml:"run"`
}

type PhysicsConfig struct {
	Gravity    Vec2    `yaml:"gravity" toml:"gravity"`
	MaxSpeed   float64 `yaml:"max_speed" toml:"max_speed"`
	Iterations int     `yaml:"iterations" toml:"iterations"`
	MaxFrameMs float64 `yaml:"max_frame_ms" toml:"max_frame_ms"`
}

type EditorConfig struct {
	PickRadius    float64 `yaml:"pick_radius" toml:"pick_radius"`
	LinkTolerance float64 `yaml:"link_tolerance" toml:"link_tolerance"`
}

type WorldConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

type GridConfig struct {
	Origin   Vec2    `yaml:"origin" toml:"origin"`
	Width    float64 `yaml:"width" toml:"width"`
	Height   float64 `yaml:"height" toml:"height"`
	Columns  int     `yaml:"columns" toml:"columns"`
	Rows     int     `yaml:"rows" toml:"rows"`
	PinEvery int     `yaml:"pin_every" toml:"pin_every"`
}

type WindConfig struct {
	Enabled     bool    `yaml:"enabled" toml:"enabled"`
	IntervalMs  float64 `yaml:"interval_ms" toml:"interval_ms"`
	MinStrength float64 `yaml:"min_strength" toml:"min_strength"`
	MaxStrength float64 `yaml:"max_strength" toml:"max_strength"`
	Seed        int64   `yaml:"seed" toml:"seed"`
	Frequency   float64 `yaml:"frequency" toml:"frequency"`
	Damping     float64 `yaml:"damping" toml:"damping"`
}

// RunConfig controls headless runs.
type RunConfig struct {
	Frames int     `yaml:"frames" toml:"frames"`
	Dt     float64 `yaml:"dt" toml:"dt"`
}

func DefaultConfig() *Config {
	dyn := dynamo.DefaultConfig()
	wind := physics.DefaultWindConfig()
	return &Config{
		Physics: PhysicsConfig{
			Gravity:    Vec2{dyn.Gravity.X, dyn.Gravity.Y},
			MaxSpeed:   dyn.MaxSpeed,
			Iterations: dyn.Iterations,
			MaxFrameMs: DefaultMaxFrameMs,
		},
		Editor: EditorConfig{
			PickRadius:    DefaultPickRadius,
			LinkTolerance: DefaultLinkTolerance,
		},
		World: WorldConfig{Width: DefaultWorldWidth, Height: DefaultWorldHeight},
		Grid: GridConfig{
			Origin:  Vec2{DefaultWorldWidth/2 - DefaultWorldHeight/2, 25},
			Width:   DefaultWorldHeight,
			Height:  DefaultWorldHeight - 50,
			Columns: DefaultGridSize,
			Rows:    DefaultGridSize,
		},
		Wind: WindConfig{
			Enabled:     wind.Enabled,
			IntervalMs:  wind.IntervalMs,
			MinStrength: wind.MinStrength,
			MaxStrength: wind.MaxStrength,
			Seed:        wind.Seed,
			Frequency:   wind.Frequency,
			Damping:     wind.Damping,
		},
		Run: RunConfig{Frames: DefaultFrames, Dt: DefaultDt},
	}
}

// Load reads a YAML or TOML (by extension) file on top of DefaultConfig.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if isTOML(path) {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if isTOML(path) {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return toml.NewEncoder(f).Encode(cfg)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func (c *Config) Validate() error {
	var problems []string
	if c.Physics.MaxSpeed <= 0 {
		problems = append(problems, "physics.max_speed must be positive")
	}
	if c.Physics.Iterations < 0 {
		problems = append(problems, "physics.iterations must not be negative")
	}
	if c.Physics.MaxFrameMs < 0 {
		problems = append(problems, "physics.max_frame_ms must not be negative")
	}
	if c.Editor.PickRadius <= 0 {
		problems = append(problems, "editor.pick_radius must be positive")
	}
	if c.Editor.LinkTolerance <= 0 {
		problems = append(problems, "editor.link_tolerance must be positive")
	}
	if c.World.Width <= 0 || c.World.Height <= 0 {
		problems = append(problems, "world size must be positive")
	}
	if c.Grid.Columns < 0 || c.Grid.Rows < 0 {
		problems = append(problems, "grid columns and rows must not be negative")
	}
	if c.Wind.MinStrength > c.Wind.MaxStrength {
		problems = append(problems, "wind.min_strength exceeds wind.max_strength")
	}
	if c.Run.Frames < 0 || c.Run.Dt < 0 {
		problems = append(problems, "run frames and dt must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) Dynamo() dynamo.Config {
	return dynamo.Config{
		Gravity:    c.Physics.Gravity.R2(),
		MaxSpeed:   c.Physics.MaxSpeed,
		Iterations: c.Physics.Iterations,
	}
}

func (c *Config) WindParams() physics.WindConfig {
	return physics.WindConfig{
		Enabled:     c.Wind.Enabled,
		IntervalMs:  c.Wind.IntervalMs,
		MinStrength: c.Wind.MinStrength,
		MaxStrength: c.Wind.MaxStrength,
		Seed:        c.Wind.Seed,
		Frequency:   c.Wind.Frequency,
		Damping:     c.Wind.Damping,
	}
}

func (c *Config) GridSpec() editor.GridSpec {
	return editor.GridSpec{
		Origin:   c.Grid.Origin.R2(),
		Width:    c.Grid.Width,
		Height:   c.Grid.Height,
		Columns:  c.Grid.Columns,
		Rows:     c.Grid.Rows,
		PinEvery: c.Grid.PinEvery,
	}
}
