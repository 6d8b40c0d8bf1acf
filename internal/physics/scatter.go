package physics

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/nbody/internal/dynamo"
)

const (
	DefaultBounds  = 10.0
	DefaultMinMass = 1.0
	DefaultMaxMass = 5.0
)

// Source is the random generator used for initial placement. *rand.Rand
// satisfies it.
type Source interface {
	Float64() float64
}

// Scatter places bodies uniformly in [0,Bounds)x[0,Bounds) with mass uniform
// in [MinMass,MaxMass) and zero velocity.
type Scatter struct {
	Bounds  float64
	MinMass float64
	MaxMass float64
}

func DefaultScatter() Scatter {
	return Scatter{
		Bounds:  DefaultBounds,
		MinMass: DefaultMinMass,
		MaxMass: DefaultMaxMass,
	}
}

func (s Scatter) Validate() error {
	if !(s.Bounds > 0) {
		return fmt.Errorf("%w: bounds must be positive, got %g", dynamo.ErrInvalidArgument, s.Bounds)
	}
	if !(s.MinMass > 0) {
		return fmt.Errorf("%w: minimum mass must be positive, got %g", dynamo.ErrInvalidArgument, s.MinMass)
	}
	if s.MaxMass < s.MinMass {
		return fmt.Errorf("%w: mass range [%g, %g) is empty", dynamo.ErrInvalidArgument, s.MinMass, s.MaxMass)
	}
	return nil
}

// Generate returns exactly n bodies drawn from rng.
func (s Scatter) Generate(rng Source, n int) (dynamo.System, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: body count must be positive, got %d", dynamo.ErrInvalidArgument, n)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	sys := make(dynamo.System, n)
	for i := range sys {
		x := rng.Float64() * s.Bounds
		y := rng.Float64() * s.Bounds
		m := s.MinMass + rng.Float64()*(s.MaxMass-s.MinMass)
		sys[i] = dynamo.Body{
			Position: mgl64.Vec2{x, y},
			Mass:     m,
		}
	}
	return sys, nil
}

// ParseCount validates a body count argument.
func ParseCount(arg string) (int, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return 0, fmt.Errorf("%w: body count is required", dynamo.ErrInvalidArgument)
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: body count %q is not an integer", dynamo.ErrInvalidArgument, arg)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: body count must be positive, got %d", dynamo.ErrInvalidArgument, n)
	}
	return n, nil
}
