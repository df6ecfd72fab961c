// Package physics holds the cloth's constraint solver and optional force fields.
//
//   - [Solver]: Gauss-Seidel relaxation of every link toward its rest length
//   - [Wind]: randomized horizontal gusts smoothed by a critically damped spring
//
// More relaxation passes make the cloth stiffer; fewer make it stretchier.
//
//	solver := physics.NewSolver(dynamo.DefaultConfig())
//	integ.Step(store, dt)
//	solver.Relax(store)
package physics
