package dynamo

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Body is a single point mass. Mass is fixed once the body is created.
type Body struct {
	Position mgl64.Vec2
	Velocity mgl64.Vec2
	Mass     float64
}

func (b Body) IsValid() bool {
	return finite(b.Position[0]) && finite(b.Position[1]) &&
		finite(b.Velocity[0]) && finite(b.Velocity[1]) &&
		finite(b.Mass)
}

func (b Body) Momentum() mgl64.Vec2 {
	return b.Velocity.Mul(b.Mass)
}

func (b Body) String() string {
	return fmt.Sprintf("pos=(%.6f, %.6f) vel=(%.6g, %.6g) mass=%.4f",
		b.Position[0], b.Position[1], b.Velocity[0], b.Velocity[1], b.Mass)
}

// System is the ordered body collection. Index identity is stable for a run.
type System []Body

func (s System) Clone() System {
	c := make(System, len(s))
	copy(c, s)
	return c
}

func (s System) IsValid() bool {
	for _, b := range s {
		if !b.IsValid() {
			return false
		}
	}
	return true
}

// Momentum returns the total linear momentum, sum of m*v.
func (s System) Momentum() mgl64.Vec2 {
	var p mgl64.Vec2
	for _, b := range s {
		p = p.Add(b.Momentum())
	}
	return p
}

func (s System) TotalMass() float64 {
	m := 0.0
	for _, b := range s {
		m += b.Mass
	}
	return m
}

// CenterOfMass returns the mass-weighted mean position, or the zero vector
// for an empty system.
func (s System) CenterOfMass() mgl64.Vec2 {
	total := s.TotalMass()
	if total == 0 {
		return mgl64.Vec2{}
	}
	var c mgl64.Vec2
	for _, b := range s {
		c = c.Add(b.Position.Mul(b.Mass))
	}
	return c.Mul(1 / total)
}

func (s System) Positions() []mgl64.Vec2 {
	pos := make([]mgl64.Vec2, len(s))
	for i, b := range s {
		pos[i] = b.Position
	}
	return pos
}

func (s System) Masses() []float64 {
	m := make([]float64, len(s))
	for i, b := range s {
		m[i] = b.Mass
	}
	return m
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
