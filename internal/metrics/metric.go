package metrics

import "github.com/san-kum/clothsim/internal/graph"

// Metric observes the graph once per frame.
type Metric interface {
	Name() string
	Observe(g *graph.Store)
	Value() float64
	Reset()
}

// Defaults returns the metrics recorded by headless runs.
func Defaults() []Metric {
	return []Metric{
		NewKineticEnergy(),
		NewStrain(),
		NewPointCount(),
		NewLinkCount(),
	}
}
