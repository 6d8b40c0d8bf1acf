package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/nbody/internal/config"
	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/integrators"
	"github.com/san-kum/nbody/internal/metrics"
	"github.com/san-kum/nbody/internal/physics"
	"github.com/san-kum/nbody/internal/report"
	"github.com/san-kum/nbody/internal/sim"
	"github.com/san-kum/nbody/internal/viz"
	"github.com/spf13/cobra"
)

var (
	count      string
	seed       int64
	steps      int
	dt         float64
	gravity    float64
	policy     string
	epsilon    float64
	integrator string
	workers    int
	configFile string
	preset     string
	quiet      bool
	// output
	format      string
	plot        bool
	sampleEvery int
	// live view
	frameRate     int
	stepsPerFrame int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, viz.StatusError.Render("error:"), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "nbody [count]",
		Short:         "brute-force 2D gravitational n-body simulator",
		Args:          cobra.MaximumNArgs(1),
		RunE:          runSimulation,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&count, "count", "n", "", "number of bodies (alternative to the positional argument)")
	pf.Int64Var(&seed, "seed", config.DefaultSeed, "random seed for the initial configuration")
	pf.IntVar(&steps, "steps", sim.MaxSteps, "number of steps")
	pf.Float64Var(&dt, "dt", sim.Dt, "timestep")
	pf.Float64Var(&gravity, "g", physics.G, "gravitational constant")
	pf.StringVar(&policy, "policy", physics.PolicySkip.String(), "zero-distance policy (skip, clamp)")
	pf.Float64Var(&epsilon, "epsilon", physics.DefaultEpsilon, "zero-distance threshold")
	pf.StringVar(&integrator, "integrator", integrators.Default, "integrator ("+strings.Join(integrators.List(), ", ")+")")
	pf.IntVar(&workers, "workers", config.DefaultWorkers, "force workers (1 = serial)")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.BoolVarP(&quiet, "quiet", "q", false, "suppress status output")

	rootCmd.Flags().StringVar(&format, "format", config.DefaultFormat, "output format ("+strings.Join(config.Formats, ", ")+")")
	rootCmd.Flags().BoolVar(&plot, "plot", false, "plot energy drift and spread after the run")
	rootCmd.Flags().IntVar(&sampleEvery, "every", config.DefaultSampleEvery, "plot sample interval in steps")

	liveCmd := &cobra.Command{
		Use:   "live [count]",
		Short: "run simulation with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().IntVar(&stepsPerFrame, "speed", 10, "steps per frame")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "  %-8s %s\n", name, viz.Subtle.Render(fmt.Sprintf(
					"bodies=%d steps=%d g=%g policy=%s workers=%d",
					p.Bodies, p.Steps, p.Physics.G, p.Physics.Policy, p.Workers)))
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config <path>",
		Short: "write the default configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if preset != "" {
				if cfg = config.GetPreset(preset); cfg == nil {
					return unknownPreset()
				}
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			logf(cmd.ErrOrStderr(), "wrote %s", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(liveCmd, presetsCmd, configCmd)
	return rootCmd
}

func logf(w io.Writer, format string, args ...any) {
	if quiet {
		return
	}
	viz.Logf(w, format, args...)
}

func unknownPreset() error {
	return fmt.Errorf("%w: unknown preset %q (available: %s)", dynamo.ErrInvalidArgument, preset, strings.Join(config.ListPresets(), ", "))
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order. The body count comes from the positional argument or
// --count, never both, and is required unless a preset or config file
// supplies it.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		if cfg = config.GetPreset(preset); cfg == nil {
			return nil, unknownPreset()
		}
	}
	if configFile != "" {
		var err error
		if cfg, err = config.LoadOver(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	countSet := cmd.Flags().Changed("count")
	if countSet && len(args) > 0 {
		return nil, fmt.Errorf("%w: body count given both as argument %q and --count %q", dynamo.ErrInvalidArgument, args[0], count)
	}
	if countSet || len(args) > 0 || (preset == "" && configFile == "") {
		arg := count
		if len(args) > 0 {
			arg = args[0]
		}
		n, err := physics.ParseCount(arg)
		if err != nil {
			return nil, err
		}
		cfg.Bodies = n
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("g") {
		cfg.Physics.G = gravity
	}
	if flags.Changed("policy") {
		cfg.Physics.Policy = policy
	}
	if flags.Changed("epsilon") {
		cfg.Physics.Epsilon = epsilon
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("format") {
		cfg.Output.Format = format
	}
	if flags.Changed("plot") {
		cfg.Output.Plot = plot
	}
	if flags.Changed("every") {
		cfg.Output.SampleEvery = sampleEvery
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup builds a loaded simulator from cfg with bodies scattered by a
// generator seeded from cfg.Seed.
func setup(cfg *config.Config) (*sim.Simulator, dynamo.System, error) {
	s, err := cfg.Simulator()
	if err != nil {
		return nil, nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	bodies, err := cfg.Scatter().Generate(rng, cfg.Bodies)
	if err != nil {
		return nil, nil, err
	}

	for _, m := range metrics.Defaults(s.Gravity(), cfg.Init.Bounds) {
		s.AddMetric(m)
	}
	if err := s.Load(bodies); err != nil {
		return nil, nil, err
	}
	return s, bodies, nil
}

func runInfo(cfg *config.Config, s *sim.Simulator) report.RunInfo {
	return report.RunInfo{
		Bodies:     cfg.Bodies,
		Seed:       cfg.Seed,
		Steps:      cfg.Steps,
		Dt:         cfg.Dt,
		G:          cfg.Physics.G,
		Integrator: cfg.Integrator,
		Policy:     cfg.Physics.Policy,
		Epsilon:    cfg.Physics.Epsilon,
		Backend:    s.Gravity().Backend.Name(),
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	s, bodies, err := setup(cfg)
	if err != nil {
		return err
	}

	var trace *viz.Trace
	if cfg.Output.Plot {
		trace = viz.NewTrace(s.Gravity(), cfg.Output.SampleEvery)
		trace.Start(bodies)
		s.AddObserver(trace)
	}

	status := cmd.ErrOrStderr()
	info := runInfo(cfg, s)
	logf(status, "running %d-body simulation for %d steps (%s, %s backend, seed %d)...",
		cfg.Bodies, cfg.Steps, cfg.Integrator, info.Backend, cfg.Seed)

	result, err := s.Run()
	if err != nil {
		return err
	}
	logf(status, "completed in %v", result.Elapsed)

	return writeOutput(cmd.OutOrStdout(), status, cfg, info, result, trace)
}

func writeOutput(out, status io.Writer, cfg *config.Config, info report.RunInfo, result *sim.Result, trace *viz.Trace) error {
	if err := report.Write(out, cfg.Output.Format, info, result); err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintln(status)
		if err := report.WriteSummary(status, result); err != nil {
			return err
		}
	}
	if trace != nil {
		fmt.Fprintln(status)
		return trace.Plot(status)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	s, _, err := setup(cfg)
	if err != nil {
		return err
	}

	m := viz.NewLive(s, cfg.Init.Bounds, stepsPerFrame, frameRate)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	if live, ok := final.(viz.Live); ok && live.Err() != nil {
		return live.Err()
	}
	logf(cmd.ErrOrStderr(), "stopped at step %d of %d", s.StepCount(), cfg.Steps)
	return nil
}
