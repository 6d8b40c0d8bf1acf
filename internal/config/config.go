package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/nbody/internal/compute"
	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/integrators"
	"github.com/san-kum/nbody/internal/physics"
	"github.com/san-kum/nbody/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBodies      = 3
	DefaultSeed        = 42
	DefaultFormat      = "table"
	DefaultSampleEvery = 1000
	DefaultWorkers     = 1
)

var Formats = []string{"table", "csv", "json", "svg"}

type Config struct {
	Bodies     int           `yaml:"bodies"`
	Seed       int64         `yaml:"seed"`
	Steps      int           `yaml:"steps"`
	Dt         float64       `yaml:"dt"`
	Integrator string        `yaml:"integrator"`
	Workers    int           `yaml:"workers"`
	Init       InitConfig    `yaml:"init"`
	Physics    PhysicsConfig `yaml:"physics"`
	Output     OutputConfig  `yaml:"output"`
}

type InitConfig struct {
	Bounds  float64 `yaml:"bounds"`
	MinMass float64 `yaml:"min_mass"`
	MaxMass float64 `yaml:"max_mass"`
}

type PhysicsConfig struct {
	G       float64 `yaml:"g"`
	Policy  string  `yaml:"policy"`
	Epsilon float64 `yaml:"epsilon"`
}

type OutputConfig struct {
	Format      string `yaml:"format"`
	Plot        bool   `yaml:"plot"`
	SampleEvery int    `yaml:"sample_every"`
}

func DefaultConfig() *Config {
	return &Config{
		Bodies:     DefaultBodies,
		Seed:       DefaultSeed,
		Steps:      sim.MaxSteps,
		Dt:         sim.Dt,
		Integrator: integrators.Default,
		Workers:    DefaultWorkers,
		Init: InitConfig{
			Bounds:  physics.DefaultBounds,
			MinMass: physics.DefaultMinMass,
			MaxMass: physics.DefaultMaxMass,
		},
		Physics: PhysicsConfig{
			G:       physics.G,
			Policy:  physics.PolicySkip.String(),
			Epsilon: physics.DefaultEpsilon,
		},
		Output: OutputConfig{
			Format:      DefaultFormat,
			SampleEvery: DefaultSampleEvery,
		},
	}
}

// Load reads a YAML file on top of DefaultConfig; keys absent from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file on top of base, which is modified in place.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Bodies <= 0 {
		return fmt.Errorf("%w: bodies must be positive, got %d", dynamo.ErrInvalidArgument, c.Bodies)
	}
	if c.Steps < 0 {
		return fmt.Errorf("%w: steps must be non-negative, got %d", dynamo.ErrInvalidArgument, c.Steps)
	}
	if !(c.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrInvalidArgument, c.Dt)
	}
	if _, err := integrators.Get(c.Integrator); err != nil {
		return err
	}
	if err := c.Scatter().Validate(); err != nil {
		return err
	}
	grav, err := c.Gravity()
	if err != nil {
		return err
	}
	if err := grav.Validate(); err != nil {
		return err
	}
	if !validFormat(c.Output.Format) {
		return fmt.Errorf("%w: unknown output format %q (available: %s)", dynamo.ErrInvalidArgument, c.Output.Format, strings.Join(Formats, ", "))
	}
	if c.Output.SampleEvery < 0 {
		return fmt.Errorf("%w: sample_every must be non-negative, got %d", dynamo.ErrInvalidArgument, c.Output.SampleEvery)
	}
	return nil
}

func validFormat(f string) bool {
	for _, name := range Formats {
		if f == name {
			return true
		}
	}
	return false
}

func (c *Config) Scatter() physics.Scatter {
	return physics.Scatter{
		Bounds:  c.Init.Bounds,
		MinMass: c.Init.MinMass,
		MaxMass: c.Init.MaxMass,
	}
}

// Gravity builds the force model with the backend selected by Workers and
// Bodies.
func (c *Config) Gravity() (*physics.Gravity, error) {
	policy, err := physics.ParsePolicy(c.Physics.Policy)
	if err != nil {
		return nil, err
	}
	return &physics.Gravity{
		G:       c.Physics.G,
		Policy:  policy,
		Epsilon: c.Physics.Epsilon,
		Backend: compute.New(c.Workers, c.Bodies),
	}, nil
}

func (c *Config) Sim() sim.Config {
	return sim.Config{
		MaxSteps:      c.Steps,
		Dt:            c.Dt,
		ValidateState: true,
	}
}

// Simulator validates the configuration and wires a simulator from it.
func (c *Config) Simulator() (*sim.Simulator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	grav, err := c.Gravity()
	if err != nil {
		return nil, err
	}
	integ, err := integrators.Get(c.Integrator)
	if err != nil {
		return nil, err
	}
	return sim.New(grav, integ, c.Sim()), nil
}
