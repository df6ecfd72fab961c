package integrators

import (
	"github.com/san-kum/clothsim/internal/dynamo"
	"github.com/san-kum/clothsim/internal/graph"
	"gonum.org/v1/gonum/spatial/r2"
)

// Verlet advances points with position-based Verlet integration. Velocity is
// the difference between the current and previous positions and is clamped
// to MaxSpeed per step; without the clamp the cloth oscillates unboundedly.
type Verlet struct {
	Gravity  r2.Vec
	MaxSpeed float64
	fields   []dynamo.Field
}

func NewVerlet(cfg dynamo.Config) *Verlet {
	return &Verlet{
		Gravity:  cfg.Gravity,
		MaxSpeed: cfg.MaxSpeed,
	}
}

// AddField registers an extra acceleration applied alongside gravity.
func (v *Verlet) AddField(f dynamo.Field) { v.fields = append(v.fields, f) }

// Acceleration returns the per-ms^2 acceleration for the coming step.
func (v *Verlet) Acceleration() r2.Vec {
	acc := v.Gravity
	for _, f := range v.fields {
		acc = r2.Add(acc, f.Acceleration())
	}
	return acc
}

// Step moves every unpinned point one frame of dt milliseconds. Pinned points
// keep both Position and Previous untouched.
func (v *Verlet) Step(g *graph.Store, dt float64) {
	acc := r2.Scale(dt*dt, v.Acceleration())

	g.EachPoint(func(_ graph.PointID, p *graph.Point) {
		if p.Pinned {
			return
		}
		before := p.Position
		vel := dynamo.ClampLength(r2.Sub(p.Position, p.Previous), v.MaxSpeed)
		p.Position = r2.Add(p.Position, vel)
		p.Position = r2.Add(p.Position, acc)
		p.Previous = before
	})
}
