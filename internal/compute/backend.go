package compute

import "github.com/go-gl/mathgl/mgl64"

// Kernel evaluates the force exerted on body i (at pi, mass mi) by body j.
// Implementations must be antisymmetric: Pair(pi, pj, mi, mj) ==
// -Pair(pj, pi, mj, mi).
type Kernel interface {
	Pair(pi, pj mgl64.Vec2, mi, mj float64) mgl64.Vec2
}

type Backend interface {
	Name() string
	Forces(positions []mgl64.Vec2, masses []float64, k Kernel) []mgl64.Vec2
}

// parallelThreshold is the body count below which goroutine fan-out costs
// more than it saves.
const parallelThreshold = 16

// New returns the backend that will actually evaluate a system of the given
// size: serial for workers <= 1 or fewer than parallelThreshold bodies,
// parallel otherwise.
func New(workers, bodies int) Backend {
	if workers <= 1 || bodies < parallelThreshold {
		return NewSerial()
	}
	return NewParallel(workers)
}
