package metrics

import "github.com/san-kum/nbody/internal/dynamo"

// Stability is the fraction of samples in which every body stays within
// radius of the system's center of mass.
type Stability struct {
	name       string
	radius     float64
	violations int
	samples    int
}

func NewStability(radius float64) *Stability {
	return &Stability{
		name:   "stability",
		radius: radius,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(step int, sys dynamo.System) {
	s.samples++
	com := sys.CenterOfMass()
	for _, b := range sys {
		if b.Position.Sub(com).Len() > s.radius {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
