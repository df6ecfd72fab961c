package config

import "sort"

// Presets adjust DefaultConfig into named starting scenes.
var Presets = map[string]func(c *Config){
	"default": func(c *Config) {},
	"curtain": func(c *Config) {
		c.Grid.PinEvery = 3
	},
	"breeze": func(c *Config) {
		c.Grid.PinEvery = 3
		c.Wind.Enabled = true
	},
	"banner": func(c *Config) {
		c.Grid = GridConfig{Origin: Vec2{140, 60}, Width: 1000, Height: 300, Columns: 40, Rows: 12, PinEvery: 39}
	},
	"rope": func(c *Config) {
		c.Grid = GridConfig{Origin: Vec2{640, 40}, Width: 0, Height: 600, Columns: 1, Rows: 30, PinEvery: 1}
	},
	"empty": func(c *Config) {
		c.Grid.Columns, c.Grid.Rows = 0, 0
	},
}

// GetPreset returns a fresh config for the preset, or nil if it is unknown.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
