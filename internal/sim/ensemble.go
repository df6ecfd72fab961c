package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/dynamo"
	"github.com/san-kum/clothsim/internal/metrics"
)

// Ensemble runs the same scene under consecutive wind seeds. Runs execute
// one after another, each on its own controller and graph.
type Ensemble struct {
	cfg       *config.Config
	numRuns   int
	seedStart int64
}

func NewEnsemble(cfg *config.Config, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Seed(idx int) int64 { return e.seedStart + int64(idx) }

// Run simulates cfg.Run.Frames idle frames per seed in ModeSimulate. It
// stops at the first failing run.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, 0, e.numRuns)
	for i := 0; i < e.numRuns; i++ {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, err)
		}

		cfgCopy := *e.cfg
		cfgCopy.Wind.Seed = e.Seed(i)

		ctrl, _, err := Build(&cfgCopy)
		if err != nil {
			return results, fmt.Errorf("seed %d: %w", cfgCopy.Wind.Seed, err)
		}
		ctrl.SetMode(ModeSimulate)

		r := NewRunner(ctrl)
		for _, m := range metrics.Defaults() {
			r.AddMetric(m)
		}
		res, err := r.Run(ctx, Idle{Dt: cfgCopy.Run.Dt}, cfgCopy.Run.Frames)
		if err != nil {
			return results, fmt.Errorf("seed %d: %w", cfgCopy.Wind.Seed, err)
		}
		results = append(results, res)
	}
	return results, nil
}
