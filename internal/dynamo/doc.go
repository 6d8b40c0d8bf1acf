// Package dynamo provides the core primitives shared by the n-body simulator.
//
// The package defines the data model and the small amount of machinery every
// other package builds on:
//
//   - [Body]: a point mass with position, velocity and mass
//   - [System]: the ordered body collection owned by a simulator run
//   - [ParallelFor]: chunked fan-out used by the parallel force backend
//
// # Example
//
//	sys := dynamo.System{
//		{Position: mgl64.Vec2{0, 0}, Mass: 1},
//		{Position: mgl64.Vec2{1, 0}, Mass: 1},
//	}
//	px, py := sys.Momentum().Elem()
//
// # Thread Safety
//
// System values are plain slices and are NOT safe for concurrent mutation.
// A simulator owns its System exclusively for the whole run.
package dynamo
