package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the canvas and the stats panel.
type Theme struct {
	Name   string
	Cloth  lipgloss.Color
	Accent lipgloss.Color
	Muted  lipgloss.Color
}

var Themes = []Theme{
	{Name: "classic", Cloth: lipgloss.Color("#e0e0e0"), Accent: lipgloss.Color("#00ffff"), Muted: lipgloss.Color("#666688")},
	{Name: "retro", Cloth: lipgloss.Color("#00ff00"), Accent: lipgloss.Color("#88ff88"), Muted: lipgloss.Color("#005500")},
	{Name: "ocean", Cloth: lipgloss.Color("#00a8cc"), Accent: lipgloss.Color("#ffd700"), Muted: lipgloss.Color("#4488aa")},
	{Name: "sunset", Cloth: lipgloss.Color("#feca57"), Accent: lipgloss.Color("#ff6b6b"), Muted: lipgloss.Color("#8b6b8c")},
}
