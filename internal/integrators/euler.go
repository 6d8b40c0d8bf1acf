package integrators

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/nbody/internal/dynamo"
)

// Integrator advances every body by dt given accelerations computed from the
// start-of-step snapshot. acc[i] belongs to sys[i].
type Integrator interface {
	Name() string
	Step(sys dynamo.System, acc []mgl64.Vec2, dt float64)
}

// SemiImplicitEuler updates velocity first and moves with the new velocity.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (e *SemiImplicitEuler) Name() string { return "semi-implicit" }

func (e *SemiImplicitEuler) Step(sys dynamo.System, acc []mgl64.Vec2, dt float64) {
	for i := range sys {
		sys[i].Velocity = sys[i].Velocity.Add(acc[i].Mul(dt))
		sys[i].Position = sys[i].Position.Add(sys[i].Velocity.Mul(dt))
	}
}

// Euler is the explicit variant: position moves with the old velocity.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(sys dynamo.System, acc []mgl64.Vec2, dt float64) {
	for i := range sys {
		sys[i].Position = sys[i].Position.Add(sys[i].Velocity.Mul(dt))
		sys[i].Velocity = sys[i].Velocity.Add(acc[i].Mul(dt))
	}
}

var registry = map[string]func() Integrator{
	"semi-implicit": func() Integrator { return NewSemiImplicitEuler() },
	"euler":         func() Integrator { return NewEuler() },
}

// Default is the integrator used when none is named.
const Default = "semi-implicit"

func Get(name string) (Integrator, error) {
	if name == "" {
		name = Default
	}
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown integrator: %s (available: %v)", dynamo.ErrInvalidArgument, name, List())
	}
	return fn(), nil
}

func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
