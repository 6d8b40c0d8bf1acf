package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/integrators"
	"github.com/san-kum/nbody/internal/physics"
)

type Simulator struct {
	grav       *physics.Gravity
	integrator integrators.Integrator
	cfg        Config
	metrics    []Metric
	observers  []Observer

	bodies dynamo.System
	step   int
	phase  Phase
}

func New(grav *physics.Gravity, integrator integrators.Integrator, cfg Config) *Simulator {
	return &Simulator{
		grav:       grav,
		integrator: integrator,
		cfg:        cfg,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Phase() Phase              { return s.phase }
func (s *Simulator) StepCount() int            { return s.step }
func (s *Simulator) Config() Config            { return s.cfg }
func (s *Simulator) Gravity() *physics.Gravity { return s.grav }

// Bodies returns a copy of the current state.
func (s *Simulator) Bodies() dynamo.System { return s.bodies.Clone() }

// Load copies sys into the simulator and resets the step counter. An empty
// system or a zero step budget goes straight to Done.
func (s *Simulator) Load(sys dynamo.System) error {
	if err := s.validate(sys); err != nil {
		return err
	}

	s.bodies = sys.Clone()
	s.step = 0
	s.phase = Ready

	for _, m := range s.metrics {
		m.Reset()
		m.Observe(0, s.bodies)
	}

	if len(s.bodies) == 0 || s.cfg.MaxSteps == 0 {
		s.step = s.cfg.MaxSteps
		s.phase = Done
	}
	return nil
}

func (s *Simulator) validate(sys dynamo.System) error {
	if s.cfg.Dt <= 0 || math.IsInf(s.cfg.Dt, 0) || math.IsNaN(s.cfg.Dt) {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrInvalidArgument, s.cfg.Dt)
	}
	if s.cfg.MaxSteps < 0 {
		return fmt.Errorf("%w: max steps must be non-negative, got %d", dynamo.ErrInvalidArgument, s.cfg.MaxSteps)
	}
	if s.grav == nil || s.integrator == nil {
		return fmt.Errorf("%w: simulator needs a gravity model and an integrator", dynamo.ErrInvalidArgument)
	}
	if err := s.grav.Validate(); err != nil {
		return err
	}
	for i, b := range sys {
		if !(b.Mass > 0) || !b.IsValid() {
			return fmt.Errorf("%w: body %d: %v", dynamo.ErrInvalidArgument, i, b)
		}
	}
	return nil
}

// Step advances the system by one time step. Forces for every body come from
// the state at the start of the step; bodies are integrated only after all
// forces are known.
func (s *Simulator) Step() error {
	switch s.phase {
	case Uninitialized:
		return dynamo.ErrNotLoaded
	case Done:
		return dynamo.ErrDone
	}

	acc := s.grav.Accelerations(s.bodies)
	s.integrator.Step(s.bodies, acc, s.cfg.Dt)
	s.step++

	if s.cfg.ValidateState && !s.bodies.IsValid() {
		s.phase = Done
		return &dynamo.SimulationError{Step: s.step, Wrapped: dynamo.ErrInvalidState}
	}

	for _, m := range s.metrics {
		m.Observe(s.step, s.bodies)
	}
	for _, obs := range s.observers {
		obs.OnStep(s.step, s.bodies)
	}

	if s.step >= s.cfg.MaxSteps {
		s.phase = Done
	} else {
		s.phase = Stepping
	}
	return nil
}

// Run steps until Done. The returned Result is populated even when a step
// fails.
func (s *Simulator) Run() (*Result, error) {
	if s.phase == Uninitialized {
		return nil, dynamo.ErrNotLoaded
	}

	start := time.Now()
	result := &Result{
		InitialMomentum: s.bodies.Momentum(),
		InitialEnergy:   s.grav.Energy(s.bodies),
		Metrics:         make(map[string]float64),
	}
	var runErr error
	for s.phase != Done {
		if err := s.Step(); err != nil {
			runErr = err
			break
		}
	}

	result.Bodies = s.Bodies()
	result.StepsTaken = s.step
	result.FinalMomentum = s.bodies.Momentum()
	result.MomentumDrift = result.FinalMomentum.Sub(result.InitialMomentum).Len()
	result.FinalEnergy = s.grav.Energy(s.bodies)
	if result.InitialEnergy != 0 {
		result.EnergyDrift = math.Abs(result.FinalEnergy-result.InitialEnergy) / math.Abs(result.InitialEnergy)
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Elapsed = time.Since(start)

	return result, runErr
}
