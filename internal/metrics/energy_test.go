package metrics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/physics"
)

func pair(v float64) dynamo.System {
	return dynamo.System{
		{Position: mgl64.Vec2{0, 0}, Velocity: mgl64.Vec2{v, 0}, Mass: 1},
		{Position: mgl64.Vec2{1, 0}, Velocity: mgl64.Vec2{-v, 0}, Mass: 1},
	}
}

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift(physics.NewGravity(1))

	// E0 = -1; E1 = 2*0.5*1 - 1 = 0
	m.Observe(0, pair(0))
	if m.Value() != 0 {
		t.Errorf("drift after one sample = %v, want 0", m.Value())
	}

	m.Observe(1, pair(1))
	if math.Abs(m.Value()-1) > 1e-12 {
		t.Errorf("drift = %v, want 1", m.Value())
	}
	if math.Abs(m.Current()) > 1e-12 {
		t.Errorf("current energy = %v, want 0", m.Current())
	}

	m.Observe(2, pair(0))
	if math.Abs(m.Value()-1) > 1e-12 {
		t.Errorf("drift should keep its maximum, got %v", m.Value())
	}
}

func TestEnergyReset(t *testing.T) {
	m := NewEnergyDrift(physics.NewGravity(1))

	m.Observe(0, pair(0))
	m.Observe(1, pair(1))
	if m.Value() == 0 {
		t.Error("expected non-zero drift")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestMomentumDrift(t *testing.T) {
	m := NewMomentumDrift()

	m.Observe(0, pair(1))
	m.Observe(1, pair(2))
	if m.Value() != 0 {
		t.Errorf("symmetric pair drift = %v, want 0", m.Value())
	}

	lopsided := pair(1)
	lopsided[0].Velocity = mgl64.Vec2{3, 4}
	m.Observe(2, lopsided)
	// P = (3,4) + (-1,0) = (2,4)
	if math.Abs(m.Value()-math.Sqrt(20)) > 1e-12 {
		t.Errorf("drift = %v, want sqrt(20)", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestMaxSpeed(t *testing.T) {
	m := NewMaxSpeed()
	sys := pair(1)
	sys[1].Velocity = mgl64.Vec2{3, 4}

	m.Observe(0, sys)
	m.Observe(1, pair(2))
	if m.Value() != 5 {
		t.Errorf("max speed = %v, want 5", m.Value())
	}
}

func TestStability(t *testing.T) {
	m := NewStability(2)
	if m.Value() != 1 {
		t.Errorf("empty stability = %v, want 1", m.Value())
	}

	m.Observe(0, pair(0))
	far := pair(0)
	far[1].Position = mgl64.Vec2{10, 0}
	m.Observe(1, far)

	if m.Value() != 0.5 {
		t.Errorf("stability = %v, want 0.5", m.Value())
	}
}

func TestDefaults(t *testing.T) {
	ms := Defaults(physics.NewGravity(physics.G), 10)
	names := map[string]bool{}
	for _, m := range ms {
		names[m.Name()] = true
	}
	for _, want := range []string{"momentum_drift", "energy_drift", "max_speed", "stability"} {
		if !names[want] {
			t.Errorf("Defaults missing %s", want)
		}
	}
}
