package metrics

import (
	"github.com/san-kum/nbody/internal/physics"
	"github.com/san-kum/nbody/internal/sim"
)

// Defaults returns the metrics attached to every CLI run. radius bounds the
// stability check and is usually the size of the initial region.
func Defaults(grav *physics.Gravity, radius float64) []sim.Metric {
	return []sim.Metric{
		NewMomentumDrift(),
		NewEnergyDrift(grav),
		NewMaxSpeed(),
		NewStability(radius),
	}
}
