package editor

import (
	"github.com/san-kum/clothsim/internal/graph"
	"gonum.org/v1/gonum/spatial/r2"
)

// GridSpec lays out Columns x Rows points with spacing Width/Columns and
// Height/Rows starting at Origin. PinEvery > 0 pins top-row points whose
// column index is a multiple of it.
type GridSpec struct {
	Origin   r2.Vec
	Width    float64
	Height   float64
	Columns  int
	Rows     int
	PinEvery int
}

// Grid records the handles created by GenerateGrid. Points are column-major:
// the point at column x, row y is Points[x*Rows+y].
type Grid struct {
	Columns, Rows int
	Points        []graph.PointID
	Links         []graph.LinkID
}

func (g Grid) At(x, y int) graph.PointID {
	return g.Points[x*g.Rows+y]
}

// GenerateGrid adds a rectangular cloth. Vertical links are created first,
// column by column, followed by horizontal links row by row.
func (e *Editor) GenerateGrid(spec GridSpec) (Grid, error) {
	grid := Grid{Columns: spec.Columns, Rows: spec.Rows}
	if spec.Columns <= 0 || spec.Rows <= 0 {
		return grid, nil
	}
	dx := spec.Width / float64(spec.Columns)
	dy := spec.Height / float64(spec.Rows)

	grid.Points = make([]graph.PointID, 0, spec.Columns*spec.Rows)
	for x := 0; x < spec.Columns; x++ {
		for y := 0; y < spec.Rows; y++ {
			pos := r2.Add(spec.Origin, r2.Vec{X: float64(x) * dx, Y: float64(y) * dy})
			id := e.AddFreePoint(pos)
			if y == 0 && spec.PinEvery > 0 && x%spec.PinEvery == 0 {
				e.store.PointRef(id).Pinned = true
			}
			grid.Points = append(grid.Points, id)
			if y > 0 {
				if err := grid.connect(e, grid.At(x, y-1), id); err != nil {
					return grid, err
				}
			}
		}
	}

	for y := 0; y < spec.Rows; y++ {
		for x := 1; x < spec.Columns; x++ {
			if err := grid.connect(e, grid.At(x-1, y), grid.At(x, y)); err != nil {
				return grid, err
			}
		}
	}
	return grid, nil
}

func (g *Grid) connect(e *Editor, a, b graph.PointID) error {
	id, err := e.Connect(a, b)
	if err != nil {
		return err
	}
	g.Links = append(g.Links, id)
	return nil
}
