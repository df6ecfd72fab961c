package metrics

import (
	"github.com/san-kum/clothsim/internal/graph"
	"github.com/san-kum/clothsim/internal/physics"
)

// Strain tracks the worst relative stretch |length-rest|/rest of any link.
type Strain struct {
	name  string
	value float64
}

func NewStrain() *Strain {
	return &Strain{name: "max_strain"}
}

func (s *Strain) Name() string { return s.name }

func (s *Strain) Observe(g *graph.Store) {
	s.value = physics.MaxStrain(g)
}

func (s *Strain) Value() float64 { return s.value }

func (s *Strain) Reset() { s.value = 0 }
