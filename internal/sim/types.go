package sim

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/nbody/internal/dynamo"
)

const (
	// MaxSteps is the number of steps in a full run.
	MaxSteps = 100000

	// Dt is the fixed time step.
	Dt = 1.0
)

type Phase int

const (
	Uninitialized Phase = iota
	Ready
	Stepping
	Done
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Stepping:
		return "stepping"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

type Metric interface {
	Name() string
	Observe(step int, sys dynamo.System)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(step int, sys dynamo.System)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(step int, sys dynamo.System)

func (f ObserverFunc) OnStep(step int, sys dynamo.System) { f(step, sys) }

type Config struct {
	MaxSteps      int
	Dt            float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		MaxSteps:      MaxSteps,
		Dt:            Dt,
		ValidateState: true,
	}
}

type Result struct {
	Bodies          dynamo.System
	StepsTaken      int // since Load
	InitialMomentum mgl64.Vec2
	FinalMomentum   mgl64.Vec2
	MomentumDrift   float64
	InitialEnergy   float64
	FinalEnergy     float64
	EnergyDrift     float64
	Metrics         map[string]float64
	Elapsed         time.Duration
}
