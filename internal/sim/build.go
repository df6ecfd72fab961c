package sim

import (
	"fmt"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/editor"
	"github.com/san-kum/clothsim/internal/graph"
	"github.com/san-kum/clothsim/internal/integrators"
	"github.com/san-kum/clothsim/internal/physics"
)

// Build wires a controller from cfg and lays out its starting grid.
func Build(cfg *config.Config) (*Controller, editor.Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, editor.Grid{}, err
	}
	dyn := cfg.Dynamo()
	verlet := integrators.NewVerlet(dyn)
	solver := physics.NewSolver(dyn)

	ctrl := New(graph.New(), verlet, solver, Options{
		PickRadius:    cfg.Editor.PickRadius,
		LinkTolerance: cfg.Editor.LinkTolerance,
	})

	if wc := cfg.WindParams(); wc.Enabled {
		wind := physics.NewWind(wc)
		verlet.AddField(wind)
		ctrl.SetWind(wind)
	}

	grid, err := ctrl.Editor().GenerateGrid(cfg.GridSpec())
	if err != nil {
		return nil, editor.Grid{}, fmt.Errorf("generate grid: %w", err)
	}
	return ctrl, grid, nil
}
