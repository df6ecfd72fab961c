package dynamo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	DefaultGravityY   = 0.005
	DefaultMaxSpeed   = 10.0
	DefaultIterations = 20
)

// Field contributes an acceleration (world units per ms^2) applied to every
// unpinned point, in addition to gravity.
type Field interface {
	Acceleration() r2.Vec
}

// Config holds the tunables shared by the integrator and the solver.
type Config struct {
	Gravity    r2.Vec
	MaxSpeed   float64
	Iterations int
}

func DefaultConfig() Config {
	return Config{
		Gravity:    r2.Vec{X: 0, Y: DefaultGravityY},
		MaxSpeed:   DefaultMaxSpeed,
		Iterations: DefaultIterations,
	}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// ClampLength rescales v to exactly max when its magnitude exceeds max.
func ClampLength(v r2.Vec, max float64) r2.Vec {
	n := r2.Norm(v)
	if n > max {
		return r2.Scale(max/n, v)
	}
	return v
}

// Midpoint returns (a + b) / 2.
func Midpoint(a, b r2.Vec) r2.Vec {
	return r2.Scale(0.5, r2.Add(a, b))
}

// IsValid reports whether both components are finite.
func IsValid(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
