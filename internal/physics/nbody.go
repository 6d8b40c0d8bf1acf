package physics

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/nbody/internal/compute"
	"github.com/san-kum/nbody/internal/dynamo"
)

const (
	// G is the SI gravitational constant in m^3 kg^-1 s^-2.
	G = 6.67430e-11

	// DefaultEpsilon is the overlap radius below which a pair is degenerate.
	DefaultEpsilon = 0.05
)

type Policy int

const (
	PolicySkip Policy = iota
	PolicyClamp
)

func (p Policy) String() string {
	switch p {
	case PolicySkip:
		return "skip"
	case PolicyClamp:
		return "clamp"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return PolicySkip, nil
	case "clamp":
		return PolicyClamp, nil
	default:
		return PolicySkip, fmt.Errorf("%w: unknown zero-distance policy %q (want skip or clamp)", dynamo.ErrInvalidArgument, s)
	}
}

type Gravity struct {
	G       float64
	Policy  Policy
	Epsilon float64
	Backend compute.Backend
}

// NewGravity creates a Gravity with constant g, the skip policy at
// DefaultEpsilon and the serial backend.
func NewGravity(g float64) *Gravity {
	return &Gravity{
		G:       g,
		Policy:  PolicySkip,
		Epsilon: DefaultEpsilon,
		Backend: compute.NewSerial(),
	}
}

func (g *Gravity) Validate() error {
	if !(g.G > 0) || math.IsInf(g.G, 0) {
		return fmt.Errorf("%w: gravitational constant must be positive and finite, got %g", dynamo.ErrInvalidArgument, g.G)
	}
	if !(g.Epsilon >= 0) || math.IsInf(g.Epsilon, 0) {
		return fmt.Errorf("%w: epsilon must be non-negative and finite, got %g", dynamo.ErrInvalidArgument, g.Epsilon)
	}
	if g.Policy != PolicySkip && g.Policy != PolicyClamp {
		return fmt.Errorf("%w: %v", dynamo.ErrInvalidArgument, g.Policy)
	}
	return nil
}

// Pair returns the force exerted on body i by body j: magnitude
// G*mi*mj/d^2 along the unit vector from pi toward pj.
func (g *Gravity) Pair(pi, pj mgl64.Vec2, mi, mj float64) mgl64.Vec2 {
	d := pj.Sub(pi)
	r := d.Len()
	if r == 0 {
		return mgl64.Vec2{}
	}

	dist := r
	switch g.Policy {
	case PolicyClamp:
		dist = math.Max(r, g.Epsilon)
	default:
		if r <= g.Epsilon {
			return mgl64.Vec2{}
		}
	}

	// mi*mj grouped so that Pair(i, j) == -Pair(j, i) bit for bit
	return d.Mul(g.G * (mi * mj) / (dist * dist * r))
}

// Forces maps one snapshot of the system to the net force on every body.
// The system is not modified.
func (g *Gravity) Forces(sys dynamo.System) []mgl64.Vec2 {
	backend := g.Backend
	if backend == nil {
		backend = compute.NewSerial()
	}
	return backend.Forces(sys.Positions(), sys.Masses(), g)
}

func (g *Gravity) Accelerations(sys dynamo.System) []mgl64.Vec2 {
	acc := g.Forces(sys)
	for i := range acc {
		acc[i] = acc[i].Mul(1 / sys[i].Mass)
	}
	return acc
}

func (g *Gravity) KineticEnergy(sys dynamo.System) float64 {
	ke := 0.0
	for _, b := range sys {
		ke += 0.5 * b.Mass * b.Velocity.Dot(b.Velocity)
	}
	return ke
}

// PotentialEnergy sums -G*mi*mj/d over the pairs the policy does not drop.
func (g *Gravity) PotentialEnergy(sys dynamo.System) float64 {
	pe := 0.0
	for i := 0; i < len(sys); i++ {
		for j := i + 1; j < len(sys); j++ {
			r := sys[j].Position.Sub(sys[i].Position).Len()
			if r == 0 {
				continue
			}
			switch g.Policy {
			case PolicyClamp:
				r = math.Max(r, g.Epsilon)
			default:
				if r <= g.Epsilon {
					continue
				}
			}
			pe -= g.G * sys[i].Mass * sys[j].Mass / r
		}
	}
	return pe
}

func (g *Gravity) Energy(sys dynamo.System) float64 {
	return g.KineticEnergy(sys) + g.PotentialEnergy(sys)
}
