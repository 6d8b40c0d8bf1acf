package compute

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/nbody/internal/dynamo"
)

type Serial struct{}

func NewSerial() *Serial { return &Serial{} }

func (s *Serial) Name() string { return "serial" }

func (s *Serial) Forces(pos []mgl64.Vec2, masses []float64, k Kernel) []mgl64.Vec2 {
	n := len(masses)
	forces := make([]mgl64.Vec2, n)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			f := k.Pair(pos[i], pos[j], masses[i], masses[j])
			forces[i] = forces[i].Add(f)
			forces[j] = forces[j].Sub(f)
		}
	}

	return forces
}

type Parallel struct {
	Workers   int
	Threshold int
}

func NewParallel(workers int) *Parallel {
	return &Parallel{
		Workers:   workers,
		Threshold: parallelThreshold,
	}
}

func (p *Parallel) Name() string { return "parallel" }

func (p *Parallel) Forces(pos []mgl64.Vec2, masses []float64, k Kernel) []mgl64.Vec2 {
	n := len(masses)
	if n < p.Threshold {
		return NewSerial().Forces(pos, masses, k)
	}

	forces := make([]mgl64.Vec2, n)

	// each worker owns forces[start:end]; no shared writes
	dynamo.ParallelFor(n, p.Workers, func(start, end int) {
		for i := start; i < end; i++ {
			var f mgl64.Vec2
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				f = f.Add(k.Pair(pos[i], pos[j], masses[i], masses[j]))
			}
			forces[i] = f
		}
	})

	return forces
}
