// Package dynamo provides the shared primitives of the cloth simulation.
//
// Positions and displacements are gonum [r2.Vec] values. The package holds the
// physics [Config] consumed by the integrator and constraint solver, the [Field]
// interface for additive accelerations (gravity is built in, wind is optional),
// and the sentinel errors shared across packages.
//
// # Units
//
// Time steps are milliseconds and distances are world units (pixels of the
// default 1280x720 world). Gravity is tuned jointly with those units:
//
//	cfg := dynamo.DefaultConfig()
//	acc := r2.Scale(dt*dt, cfg.Gravity) // (0, 0.005) * dt^2
//
// # Thread Safety
//
// Nothing in the simulation is safe for concurrent use. A frame tick owns the
// graph exclusively and renderers read it only after the tick returns.
package dynamo
