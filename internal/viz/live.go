package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/nbody/internal/sim"
)

const (
	liveWidth  = 60
	liveHeight = 24
)

type TickMsg time.Time

// Live is a bubbletea model that advances a loaded simulator a batch of
// steps per frame and draws the bodies. It quits on q or when the run is done.
type Live struct {
	sim           *sim.Simulator
	canvas        *Canvas
	stepsPerFrame int
	frame         time.Duration
	running       bool
	err           error
}

// NewLive views the square [0,bounds)^2 with half a region of margin on
// every side.
func NewLive(s *sim.Simulator, bounds float64, stepsPerFrame, fps int) Live {
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	if fps < 1 {
		fps = 30
	}
	margin := bounds / 2
	return Live{
		sim:           s,
		canvas:        NewCanvas(liveWidth, liveHeight, mgl64.Vec2{-margin, -margin}, mgl64.Vec2{bounds + margin, bounds + margin}),
		stepsPerFrame: stepsPerFrame,
		frame:         time.Second / time.Duration(fps),
		running:       true,
	}
}

// Err reports the step error that ended the program, if any.
func (m Live) Err() error { return m.err }

func (m Live) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Live) Init() tea.Cmd {
	return m.tick()
}

func (m Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "+", "=":
			m.stepsPerFrame *= 2
		case "-":
			if m.stepsPerFrame > 1 {
				m.stepsPerFrame /= 2
			}
		}
		return m, nil

	case TickMsg:
		if m.running {
			if err := m.advance(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
		if m.sim.Phase() == sim.Done {
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Live) advance() error {
	for i := 0; i < m.stepsPerFrame && m.sim.Phase() != sim.Done; i++ {
		if err := m.sim.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (m Live) draw() int {
	m.canvas.Clear()
	offscreen := 0
	for _, b := range m.sim.Bodies() {
		if !m.canvas.Plot(b.Position, b.Mass >= 3) {
			offscreen++
		}
	}
	return offscreen
}

func (m Live) View() string {
	offscreen := m.draw()
	bodies := m.sim.Bodies()
	cfg := m.sim.Config()

	status := StatusRunning.Render("RUNNING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	if m.err != nil {
		status = StatusError.Render("ERROR " + m.err.Error())
	}

	progress := 1.0
	if cfg.MaxSteps > 0 {
		progress = float64(m.sim.StepCount()) / float64(cfg.MaxSteps)
	}
	p := bodies.Momentum()

	var s strings.Builder
	s.WriteString(Title.Render("N-BODY") + "  " + status + "\n\n")
	s.WriteString(Metric("Bodies", fmt.Sprintf("%d", len(bodies))) + "\n")
	s.WriteString(Metric("Step", fmt.Sprintf("%d / %d", m.sim.StepCount(), cfg.MaxSteps)) + "\n")
	s.WriteString(Metric("Phase", m.sim.Phase().String()) + "\n")
	s.WriteString(Metric("Speed", fmt.Sprintf("%d steps/frame", m.stepsPerFrame)) + "\n")
	s.WriteString(Metric("Momentum", fmt.Sprintf("(%.2e, %.2e)", p[0], p[1])) + "\n")
	s.WriteString(Metric("Spread", fmt.Sprintf("%.3f", Spread(bodies))) + "\n")
	s.WriteString(Metric("Offscreen", fmt.Sprintf("%d", offscreen)) + "\n\n")
	s.WriteString(ProgressBar(progress, 30) + "\n\n")
	s.WriteString(KeyHint.Render("SP:Pause +/-:Speed Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		Panel.Render(m.canvas.String()),
		Panel.Render(s.String()),
	)
}
