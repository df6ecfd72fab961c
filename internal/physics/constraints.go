package physics

import (
	"github.com/san-kum/clothsim/internal/dynamo"
	"github.com/san-kum/clothsim/internal/graph"
	"gonum.org/v1/gonum/spatial/r2"
)

// Solver restores link rest lengths by iterative projection.
type Solver struct {
	Iterations int
}

func NewSolver(cfg dynamo.Config) *Solver {
	return &Solver{Iterations: cfg.Iterations}
}

// Relax runs Iterations passes over the links in insertion order.
func (s *Solver) Relax(g *graph.Store) {
	for i := 0; i < s.Iterations; i++ {
		s.Pass(g)
	}
}

// Pass moves both endpoints of each link so they sit Rest/2 from the link's
// centre along the current direction. Pinned endpoints stay put and links
// whose endpoints coincide are skipped, since they have no direction.
func (s *Solver) Pass(g *graph.Store) {
	g.EachLink(func(_ graph.LinkID, l graph.Link, a, b *graph.Point) {
		diff := r2.Sub(a.Position, b.Position)
		n := r2.Norm(diff)
		if n == 0 {
			return
		}
		center := dynamo.Midpoint(a.Position, b.Position)
		offset := r2.Scale(l.Rest/2/n, diff)
		if !a.Pinned {
			a.Position = r2.Add(center, offset)
		}
		if !b.Pinned {
			b.Position = r2.Sub(center, offset)
		}
	})
}

// MaxStrain returns the largest |length-rest|/rest over links with a
// positive rest length.
func MaxStrain(g *graph.Store) float64 {
	worst := 0.0
	g.EachLink(func(_ graph.LinkID, l graph.Link, a, b *graph.Point) {
		if l.Rest <= 0 {
			return
		}
		d := dynamo.Distance(a.Position, b.Position) - l.Rest
		if d < 0 {
			d = -d
		}
		if s := d / l.Rest; s > worst {
			worst = s
		}
	})
	return worst
}
