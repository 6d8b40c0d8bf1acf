// Package compute provides the all-pairs force accumulation backends.
//
// Two CPU backends are available:
//
//   - Serial: visits every unordered pair once and applies equal and opposite
//     forces to both bodies
//   - Parallel: partitions bodies by index across workers, each worker sums
//     the full row for its bodies, and returns after all workers finish
//
// Both read one fixed snapshot of positions and write into a fresh force
// slice, so the result never depends on partially updated state:
//
//	backend := compute.New(runtime.NumCPU(), len(masses))
//	forces := backend.Forces(positions, masses, kernel)
//
// The two backends agree up to floating point summation order.
package compute
