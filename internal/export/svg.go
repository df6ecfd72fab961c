package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/clothsim/internal/sim"
)

const (
	background  = "#0a0a0a"
	linkColor   = "#d0d0d0"
	pointColor  = "#00ff00"
	pinnedColor = "#ff3030"
	dragColor   = "#ffd700"
)

// FrameToSVG draws a frame in world coordinates on a width x height page.
func FrameToSVG(f sim.Frame, width, height float64) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="1">
`, linkColor))
	for _, l := range f.Links {
		sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>
`, l.A.X, l.A.Y, l.B.X, l.B.Y))
	}
	sb.WriteString("</g>\n")

	if f.Preview != nil {
		sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-dasharray="4 2"/>
`, f.Preview.From.X, f.Preview.From.Y, f.Preview.To.X, f.Preview.To.Y, dragColor))
	}

	for _, p := range f.Points {
		fill := pointColor
		r := 2.0
		if p.Pinned {
			fill, r = pinnedColor, 3.0
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.1f" fill="%s"/>
`, p.Position.X, p.Position.Y, r, fill))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func WriteFrame(path string, f sim.Frame, width, height float64) error {
	return os.WriteFile(path, []byte(FrameToSVG(f, width, height)), 0644)
}

// SeriesToSVG plots values against their index as a polyline.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(len(values) - 1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor))

	for i, v := range values {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
