package sim_test

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nbody/internal/compute"
	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/integrators"
	"github.com/san-kum/nbody/internal/metrics"
	"github.com/san-kum/nbody/internal/physics"
	"github.com/san-kum/nbody/internal/sim"
)

func expectFinite(sys dynamo.System) {
	for i, b := range sys {
		Expect(b.IsValid()).To(BeTrue(), "body %d is not finite: %v", i, b)
	}
}

var _ = Describe("Simulator", func() {
	var (
		grav *physics.Gravity
		cfg  sim.Config
	)

	BeforeEach(func() {
		grav = physics.NewGravity(1e-3)
		cfg = sim.DefaultConfig()
		cfg.MaxSteps = 1000
	})

	run := func(s *sim.Simulator, sys dynamo.System) *sim.Result {
		Expect(s.Load(sys)).To(Succeed())
		result, err := s.Run()
		Expect(err).NotTo(HaveOccurred())
		return result
	}

	Context("with no bodies", func() {
		It("completes every step as a no-op", func() {
			s := sim.New(grav, integrators.NewSemiImplicitEuler(), sim.DefaultConfig())
			result := run(s, dynamo.System{})

			Expect(s.Phase()).To(Equal(sim.Done))
			Expect(result.Bodies).To(BeEmpty())
			Expect(result.StepsTaken).To(Equal(sim.MaxSteps))
		})
	})

	Context("with a single body", func() {
		It("never moves", func() {
			body := dynamo.Body{Position: mgl64.Vec2{3.5, 7.25}, Mass: 4}
			s := sim.New(grav, integrators.NewSemiImplicitEuler(), cfg)

			s.AddObserver(sim.ObserverFunc(func(step int, sys dynamo.System) {
				Expect(sys[0]).To(Equal(body))
			}))
			result := run(s, dynamo.System{body})

			Expect(result.Bodies[0]).To(Equal(body))
		})
	})

	Context("with two equal masses placed symmetrically", func() {
		DescribeTable("keeps them symmetric about the center",
			func(integ integrators.Integrator) {
				center := mgl64.Vec2{5, 5}
				sys := dynamo.System{
					{Position: mgl64.Vec2{3, 4}, Mass: 2.5},
					{Position: mgl64.Vec2{7, 6}, Mass: 2.5},
				}
				s := sim.New(grav, integ, cfg)

				s.AddObserver(sim.ObserverFunc(func(step int, sys dynamo.System) {
					mid := sys[0].Position.Add(sys[1].Position).Mul(0.5)
					Expect(mid[0]).To(BeNumerically("~", center[0], 1e-9))
					Expect(mid[1]).To(BeNumerically("~", center[1], 1e-9))
					Expect(sys.Momentum().Len()).To(BeNumerically("<", 1e-12))
				}))
				result := run(s, sys)

				Expect(result.Bodies[0].Position).NotTo(Equal(sys[0].Position))
			},
			Entry("semi-implicit Euler", integrators.NewSemiImplicitEuler()),
			Entry("explicit Euler", integrators.NewEuler()),
		)
	})

	Context("with random bodies", func() {
		It("conserves total momentum at every step", func() {
			rng := rand.New(rand.NewSource(11))
			sys, err := physics.DefaultScatter().Generate(rng, 12)
			Expect(err).NotTo(HaveOccurred())

			s := sim.New(grav, integrators.NewSemiImplicitEuler(), cfg)
			drift := metrics.NewMomentumDrift()
			s.AddMetric(drift)

			result := run(s, sys)

			Expect(drift.Value()).To(BeNumerically("<", 1e-9))
			Expect(result.MomentumDrift).To(BeNumerically("<", 1e-9))
			expectFinite(result.Bodies)
		})

		It("gives the same trajectory with the parallel backend", func() {
			rng := rand.New(rand.NewSource(5))
			sys, err := physics.DefaultScatter().Generate(rng, 24)
			Expect(err).NotTo(HaveOccurred())

			// weak coupling keeps the run away from chaotic close encounters
			grav = physics.NewGravity(1e-5)
			cfg.MaxSteps = 100
			serial := sim.New(grav, integrators.NewSemiImplicitEuler(), cfg)

			pgrav := physics.NewGravity(grav.G)
			pgrav.Backend = &compute.Parallel{Workers: 4}
			parallel := sim.New(pgrav, integrators.NewSemiImplicitEuler(), cfg)

			want := run(serial, sys)
			got := run(parallel, sys)

			for i := range want.Bodies {
				Expect(got.Bodies[i].Position.Sub(want.Bodies[i].Position).Len()).To(BeNumerically("<", 1e-6))
				Expect(got.Bodies[i].Velocity.Sub(want.Bodies[i].Velocity).Len()).To(BeNumerically("<", 1e-6))
			}
		})
	})

	Context("with two coincident bodies", func() {
		DescribeTable("stays finite after one step",
			func(policy physics.Policy, epsilon float64) {
				grav.Policy = policy
				grav.Epsilon = epsilon
				cfg.MaxSteps = 1

				p := mgl64.Vec2{2, 2}
				s := sim.New(grav, integrators.NewSemiImplicitEuler(), cfg)
				result := run(s, dynamo.System{
					{Position: p, Mass: 1},
					{Position: p, Mass: 3},
				})

				expectFinite(result.Bodies)
				Expect(result.Bodies[0].Velocity).To(Equal(mgl64.Vec2{}))
				Expect(result.Bodies[1].Position).To(Equal(p))
			},
			Entry("skip", physics.PolicySkip, physics.DefaultEpsilon),
			Entry("skip without radius", physics.PolicySkip, 0.0),
			Entry("clamp", physics.PolicyClamp, physics.DefaultEpsilon),
			Entry("clamp without radius", physics.PolicyClamp, 0.0),
		)
	})

	Context("with the default configuration", func() {
		It("runs three seeded bodies for the full step count", func() {
			rng := rand.New(rand.NewSource(42))
			sys, err := physics.DefaultScatter().Generate(rng, 3)
			Expect(err).NotTo(HaveOccurred())

			s := sim.New(physics.NewGravity(physics.G), integrators.NewSemiImplicitEuler(), sim.DefaultConfig())
			result := run(s, sys)

			Expect(result.StepsTaken).To(Equal(sim.MaxSteps))
			Expect(s.StepCount()).To(Equal(100000))
			expectFinite(result.Bodies)
			Expect(result.InitialMomentum.Len()).To(BeZero())
			Expect(result.FinalMomentum.Len()).To(BeNumerically("<", 1e-6))
			Expect(math.IsNaN(result.EnergyDrift)).To(BeFalse())
		})
	})
})
