package viz

import (
	"fmt"
	"io"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/physics"
)

// Trace samples run diagnostics every Every steps. It keeps only scalars,
// never body state.
type Trace struct {
	Every   int
	Steps   []int
	Energy  []float64
	Spread  []float64
	grav    *physics.Gravity
	energy0 float64
}

func NewTrace(grav *physics.Gravity, every int) *Trace {
	if every < 1 {
		every = 1
	}
	return &Trace{Every: every, grav: grav}
}

// Start records the step 0 sample and the energy baseline.
func (t *Trace) Start(sys dynamo.System) {
	t.Steps = t.Steps[:0]
	t.Energy = t.Energy[:0]
	t.Spread = t.Spread[:0]
	t.energy0 = t.grav.Energy(sys)
	t.sample(0, sys)
}

func (t *Trace) OnStep(step int, sys dynamo.System) {
	if step%t.Every != 0 {
		return
	}
	t.sample(step, sys)
}

func (t *Trace) sample(step int, sys dynamo.System) {
	drift := 0.0
	if t.energy0 != 0 {
		drift = (t.grav.Energy(sys) - t.energy0) / math.Abs(t.energy0)
	}
	t.Steps = append(t.Steps, step)
	t.Energy = append(t.Energy, drift*1e6)
	t.Spread = append(t.Spread, Spread(sys))
}

// Spread is the RMS distance of the bodies from their center of mass.
func Spread(sys dynamo.System) float64 {
	if len(sys) == 0 {
		return 0
	}
	com := sys.CenterOfMass()
	sum := 0.0
	for _, b := range sys {
		d := b.Position.Sub(com)
		sum += d.Dot(d)
	}
	return math.Sqrt(sum / float64(len(sys)))
}

// Plot writes both series as ascii charts.
func (t *Trace) Plot(w io.Writer) error {
	if len(t.Steps) < 2 {
		_, err := fmt.Fprintln(w, Subtle.Render("not enough samples to plot"))
		return err
	}

	last := t.Steps[len(t.Steps)-1]
	charts := []struct {
		data    []float64
		caption string
	}{
		{t.Energy, fmt.Sprintf("relative energy drift (ppm), steps 0..%d", last)},
		{t.Spread, fmt.Sprintf("rms spread about center of mass, steps 0..%d", last)},
	}

	for _, c := range charts {
		graph := asciigraph.Plot(c.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(c.caption),
		)
		if _, err := fmt.Fprintf(w, "%s\n\n", graph); err != nil {
			return err
		}
	}
	return nil
}
