package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/clothsim/internal/dynamo"
	"github.com/san-kum/clothsim/internal/metrics"
)

// Runner drives a Controller headlessly from an InputSource.
type Runner struct {
	ctrl    *Controller
	metrics []metrics.Metric
	events  int
}

func NewRunner(ctrl *Controller) *Runner {
	r := &Runner{ctrl: ctrl, metrics: make([]metrics.Metric, 0)}
	ctrl.AddObserver(ObserverFunc(func(Event) { r.events++ }))
	return r
}

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }

// Run ticks until src is exhausted or maxFrames is reached (maxFrames <= 0
// means no limit). The context is checked between frames.
func (r *Runner) Run(ctx context.Context, src InputSource, maxFrames int) (*Result, error) {
	result := &Result{
		Series:  make(map[string][]float64),
		Metrics: make(map[string]float64),
	}
	for _, m := range r.metrics {
		m.Reset()
	}
	startEvents := r.events

	for maxFrames <= 0 || result.Frames < maxFrames {
		select {
		case <-ctx.Done():
			r.finish(result, startEvents)
			return result, &dynamo.FrameError{
				Frame:   result.Frames,
				Time:    result.Time,
				Wrapped: fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err()),
			}
		default:
		}

		in, ok := src.Next()
		if !ok {
			break
		}
		r.ctrl.Tick(in)
		result.Frames++
		result.Time += in.Elapsed

		if err := r.ctrl.Validate(); err != nil {
			r.finish(result, startEvents)
			return result, &dynamo.FrameError{Frame: result.Frames, Time: result.Time, Wrapped: err}
		}

		for _, m := range r.metrics {
			m.Observe(r.ctrl.Store())
			result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
		}
	}

	r.finish(result, startEvents)
	return result, nil
}

func (r *Runner) finish(result *Result, startEvents int) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Events = r.events - startEvents
}

// Idle produces empty input snapshots with a fixed frame time.
type Idle struct {
	Dt float64
}

func (s Idle) Next() (Input, bool) { return Input{Elapsed: s.Dt}, true }

// Inputs replays a fixed slice of snapshots.
type Inputs struct {
	frames []Input
	pos    int
}

func NewInputs(frames []Input) *Inputs { return &Inputs{frames: frames} }

func (s *Inputs) Next() (Input, bool) {
	if s.pos >= len(s.frames) {
		return Input{}, false
	}
	in := s.frames[s.pos]
	s.pos++
	return in, true
}
