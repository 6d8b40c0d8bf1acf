package config

import (
	"sort"

	"github.com/san-kum/nbody/internal/physics"
)

func preset(mod func(c *Config)) *Config {
	c := DefaultConfig()
	mod(c)
	return c
}

var Presets = map[string]*Config{
	// SI gravity on the 10x10 region; bodies barely move.
	"source": DefaultConfig(),
	"demo": preset(func(c *Config) {
		c.Bodies = 5
		c.Steps = 2000
		c.Physics.G = 1e-3
		c.Output.Plot = true
		c.Output.SampleEvery = 20
	}),
	"binary": preset(func(c *Config) {
		c.Bodies = 2
		c.Steps = 5000
		c.Physics.G = 1e-3
		c.Output.SampleEvery = 50
	}),
	"cluster": preset(func(c *Config) {
		c.Bodies = 64
		c.Steps = 2000
		c.Workers = 4
		c.Physics.G = 1e-4
		c.Physics.Policy = physics.PolicyClamp.String()
		c.Output.SampleEvery = 20
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
