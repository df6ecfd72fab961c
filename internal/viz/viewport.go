package viz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// viewport maps world coordinates onto a cols x rows Braille canvas with a
// uniform scale, anchored at the top-left corner.
type viewport struct {
	cols, rows int
	scale      float64
}

func newViewport(cols, rows int, worldW, worldH float64) viewport {
	sx := float64(cols*2) / worldW
	sy := float64(rows*4) / worldH
	return viewport{cols: cols, rows: rows, scale: math.Min(sx, sy)}
}

// toSub returns the sub-pixel holding p.
func (v viewport) toSub(p r2.Vec) (int, int) {
	return int(math.Floor(p.X * v.scale)), int(math.Floor(p.Y * v.scale))
}

// toWorld returns the world position at the centre of a canvas cell.
func (v viewport) toWorld(col, row int) r2.Vec {
	return r2.Vec{
		X: (float64(col*2) + 1) / v.scale,
		Y: (float64(row*4) + 2) / v.scale,
	}
}

// cellReach is one cell height in world units.
func (v viewport) cellReach() float64 { return 4 / v.scale }

func (v viewport) contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < v.cols*2 && y < v.rows*4
}
