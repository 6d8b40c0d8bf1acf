// Package physics provides the gravitational force model and the random
// initial configuration for n-body runs.
//
//   - [Gravity]: Newtonian pair force, net forces and energy diagnostics
//   - [Policy]: how a pair closer than Epsilon is handled
//   - [Scatter]: seeded uniform placement of bodies in a square region
//
// # Zero Distance
//
// Newton's law is undefined for coincident bodies. [PolicySkip] drops every
// pair closer than Epsilon (0.05 by default); [PolicyClamp] evaluates such
// pairs at distance Epsilon instead and drops only exact coincidences.
// Both policies treat (i, j) and (j, i) identically, so internal forces stay
// equal and opposite and total momentum is conserved.
//
// # Example
//
//	rng := rand.New(rand.NewSource(42))
//	sys, _ := physics.DefaultScatter().Generate(rng, 3)
//	grav := physics.NewGravity(physics.G)
//	forces := grav.Forces(sys)
package physics
