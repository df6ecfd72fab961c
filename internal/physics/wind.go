package physics

import (
	"math/rand"

	"github.com/charmbracelet/harmonica"
	"gonum.org/v1/gonum/spatial/r2"
)

// WindConfig describes randomized horizontal gusts. Strengths are
// accelerations in the same units as gravity (world units per ms^2).
type WindConfig struct {
	Enabled     bool
	IntervalMs  float64
	MinStrength float64
	MaxStrength float64
	Seed        int64
	Frequency   float64
	Damping     float64
}

func DefaultWindConfig() WindConfig {
	return WindConfig{
		Enabled:     false,
		IntervalMs:  2000,
		MinStrength: 0.0005,
		MaxStrength: 0.002,
		Seed:        1,
		Frequency:   2.0,
		Damping:     1.0,
	}
}

// Wind is a dynamo.Field. Every IntervalMs a new gust target is drawn from
// [MinStrength, MaxStrength] with a random sign; the applied strength follows
// the target through a harmonica spring so gusts ramp instead of snapping.
type Wind struct {
	cfg      WindConfig
	rng      *rand.Rand
	elapsed  float64
	target   float64
	current  float64
	velocity float64
	spring   harmonica.Spring
	springDt float64
}

func NewWind(cfg WindConfig) *Wind {
	w := &Wind{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
	if cfg.Enabled {
		w.target = w.draw()
	}
	return w
}

func (w *Wind) Enabled() bool { return w.cfg.Enabled }

// Advance moves the gust schedule forward by dt milliseconds.
func (w *Wind) Advance(dt float64) {
	if !w.cfg.Enabled || dt <= 0 {
		return
	}
	w.elapsed += dt
	if w.cfg.IntervalMs > 0 && w.elapsed >= w.cfg.IntervalMs {
		w.elapsed -= w.cfg.IntervalMs
		w.target = w.draw()
	}
	if dt != w.springDt {
		w.spring = harmonica.NewSpring(dt/1000, w.cfg.Frequency, w.cfg.Damping)
		w.springDt = dt
	}
	w.current, w.velocity = w.spring.Update(w.current, w.velocity, w.target)
}

func (w *Wind) Acceleration() r2.Vec {
	if !w.cfg.Enabled {
		return r2.Vec{}
	}
	return r2.Vec{X: w.current}
}

// Target returns the strength the current gust is heading toward.
func (w *Wind) Target() float64 { return w.target }

func (w *Wind) draw() float64 {
	s := w.cfg.MinStrength + w.rng.Float64()*(w.cfg.MaxStrength-w.cfg.MinStrength)
	if w.rng.Intn(2) == 0 {
		s = -s
	}
	return s
}
