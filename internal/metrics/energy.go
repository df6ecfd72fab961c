package metrics

import (
	"github.com/san-kum/clothsim/internal/graph"
	"gonum.org/v1/gonum/spatial/r2"
)

// KineticEnergy sums 0.5*|v|^2 over unpinned points, with v the implicit
// per-step velocity Position - Previous and unit mass.
type KineticEnergy struct {
	name  string
	value float64
	peak  float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(g *graph.Store) {
	total := 0.0
	g.EachPoint(func(_ graph.PointID, p *graph.Point) {
		if p.Pinned {
			return
		}
		v := r2.Sub(p.Position, p.Previous)
		total += 0.5 * r2.Dot(v, v)
	})
	e.value = total
	if total > e.peak {
		e.peak = total
	}
}

func (e *KineticEnergy) Value() float64 { return e.value }

// Peak returns the largest value observed since the last Reset.
func (e *KineticEnergy) Peak() float64 { return e.peak }

func (e *KineticEnergy) Reset() {
	e.value = 0
	e.peak = 0
}
