package viz

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
)

const (
	width           = 80
	height          = 24
	panelWidth      = 46
	historyCapacity = 600
	sparkWidth      = 30
)

// RecordPath is where the g key writes its GIF.
var RecordPath = "ballpit.gif"

// TickMsg is the display-refresh signal; each one advances the simulator by
// at most one step.
type TickMsg time.Time

type Options struct {
	FPS   int
	Theme string
}

// history collects per-step series. It is registered as a simulator
// observer, so it runs under the simulator lock and only touches itself.
type history struct {
	energy   []float64
	contacts []float64
	wallHits int
}

func (h *history) OnStep(f dynamo.Frame) {
	h.energy = appendCapped(h.energy, physics.KineticEnergy(f.Bodies))
	h.contacts = appendCapped(h.contacts, float64(f.Contacts))
	h.wallHits += f.WallHits
}

func (h *history) reset() {
	h.energy = h.energy[:0]
	h.contacts = h.contacts[:0]
	h.wallHits = 0
}

func appendCapped(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[1:]
	}
	return s
}

// Model hosts one simulator: it owns the refresh clock and reads snapshots
// for drawing. It never touches bodies directly.
type Model struct {
	sim       *sim.Simulator
	world     dynamo.Config
	fps       int
	canvas    *Canvas
	hist      *history
	filled    bool
	showHelp  bool
	recorder  *Recorder
	lastError error
}

// NewModel wraps an existing simulator. world is only used to spawn a fresh
// body set on reset.
func NewModel(s *sim.Simulator, world dynamo.Config, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Theme != "" {
		SetTheme(opts.Theme)
	}
	h := &history{
		energy:   make([]float64, 0, historyCapacity),
		contacts: make([]float64, 0, historyCapacity),
	}
	s.AddObserver(h)
	return Model{
		sim:    s,
		world:  world,
		fps:    opts.FPS,
		canvas: NewCanvas(width, height),
		hist:   h,
		filled: true,
	}
}

func (m Model) Simulator() *sim.Simulator { return m.sim }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	m.sim.Start()
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.sim.Stop()
			m.stopRecording()
			return m, tea.Quit
		case " ":
			if m.sim.Running() {
				m.sim.Stop()
			} else {
				m.sim.Start()
			}
		case "r":
			m.reset()
		case "f":
			m.filled = !m.filled
		case "g":
			if m.recorder != nil {
				m.stopRecording()
			} else {
				m.recorder = NewRecorder(CurrentTheme)
			}
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			NextTheme()
		}
	case tea.WindowSizeMsg:
		w := max(msg.Width-panelWidth-8, 20)
		h := max(msg.Height-4, 10)
		m.canvas = NewCanvas(w, h)
	case TickMsg:
		m.sim.Tick()
		m.draw()
		if m.recorder != nil {
			m.recorder.Capture(m.canvas)
		}
		return m, m.tick()
	}
	return m, nil
}

// reset replaces the body set with a fresh one from the next seed and keeps
// the paused/running state.
func (m *Model) reset() {
	running := m.sim.Running()
	m.sim.Stop()

	m.world.Seed++
	s, err := sim.New(m.world)
	if err != nil {
		m.lastError = err
		if running {
			m.sim.Start()
		}
		return
	}
	m.hist.reset()
	s.AddObserver(m.hist)
	if running {
		s.Start()
	}
	m.sim = s
	m.lastError = nil
}

func (m *Model) stopRecording() {
	if m.recorder == nil {
		return
	}
	if err := m.recorder.Save(RecordPath); err != nil {
		log.Printf("saving recording: %v", err)
	}
	m.recorder = nil
}

func (m *Model) draw() {
	DrawBodies(m.canvas, m.sim.Snapshot(), m.world.Viewport, CurrentTheme, m.filled)
}

// DrawBodies clears c and draws the viewport frame and every body, scaled
// to fit the canvas with the aspect ratio kept.
func DrawBodies(c *Canvas, views []dynamo.BodyView, vp dynamo.Viewport, theme Theme, filled bool) {
	c.Clear()
	sx := float64(c.SubWidth()-1) / vp.Width
	sy := float64(c.SubHeight()-1) / vp.Height
	scale := math.Min(sx, sy)
	c.DrawRect(0, 0, int(vp.Width*scale), int(vp.Height*scale))

	for _, v := range views {
		center := v.Center()
		color := theme.ColorIndex(int(v.Visual))
		if filled {
			c.FillCircle(center.X*scale, center.Y*scale, v.Radius*scale, color)
		} else {
			c.DrawCircle(int(center.X*scale), int(center.Y*scale), int(math.Round(v.Radius*scale)), color)
		}
	}
}

func fillFraction(views []dynamo.BodyView, vp dynamo.Viewport) float64 {
	area := 0.0
	for _, v := range views {
		area += math.Pi * v.Radius * v.Radius
	}
	return area / (vp.Width * vp.Height)
}

// View renders the canvas and the side panel.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.Render(CurrentTheme.PaletteStyles()))

	var s strings.Builder
	s.WriteString(GradientText("BALLPIT", CurrentTheme.Primary, CurrentTheme.Accent) + "\n\n")

	status := StatusRunning.Render("RUNNING")
	if !m.sim.Running() {
		status = StatusPaused.Render("PAUSED")
	}
	if m.recorder != nil {
		status += "  " + StatusRecording.Render(fmt.Sprintf("● REC %d", m.recorder.Frames()))
	}
	s.WriteString(status + "\n\n")

	views := m.sim.Snapshot()
	energy, contacts := 0.0, 0.0
	if n := len(m.hist.energy); n > 0 {
		energy, contacts = m.hist.energy[n-1], m.hist.contacts[n-1]
	}

	row := func(label, value string) {
		s.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}
	row("tick", fmt.Sprintf("%d", m.sim.Ticks()))
	row("bodies", fmt.Sprintf("%d", len(views)))
	row("seed", fmt.Sprintf("%d", m.world.Seed))
	row("energy", fmt.Sprintf("%.3f", energy))
	row("contacts", fmt.Sprintf("%.0f", contacts))
	row("wall hits", fmt.Sprintf("%d", m.hist.wallHits))
	row("theme", CurrentTheme.Name)
	s.WriteString(MetricLabel.Render("fill") + ProgressBar(fillFraction(views, m.world.Viewport), 20) + "\n")

	if len(m.hist.energy) > 1 {
		chart := asciigraph.Plot(m.hist.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString(MetricLabel.Render("contacts") + SparklineChart(m.hist.contacts, sparkWidth) + "\n")

	if m.lastError != nil {
		s.WriteString("\n" + StatusRecording.Render(m.lastError.Error()) + "\n")
	}

	s.WriteString("\n" + Separator(panelWidth-6) + "\n")
	s.WriteString(KeyHint.Render("SP:Pause R:Reset Q:Quit\nT:Theme F:Fill G:Record ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Respawn with next seed   ║
║  F        - Toggle filled bodies     ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// RunLive hosts s in a full-screen Bubble Tea program until the user quits.
func RunLive(s *sim.Simulator, world dynamo.Config, opts Options) error {
	_, err := tea.NewProgram(NewModel(s, world, opts), tea.WithAltScreen()).Run()
	return err
}
