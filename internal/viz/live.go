package viz

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/export"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/sim"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	statsWidth      = 45
	canvasPadX      = 2
	canvasPadY      = 1
	historyCapacity = 600
	minCols         = 20
	minRows         = 8
)

type TickMsg time.Time

type Options struct {
	Preset    string
	ExportDir string
	Observers []sim.Observer
}

// Model is the Bubble Tea host around one sim.Controller.
type Model struct {
	cfg      *config.Config
	opts     Options
	ctrl     *sim.Controller
	canvas   *Canvas
	view     viewport
	input    hostInput
	lastTick time.Time

	energy        *metrics.KineticEnergy
	strain        *metrics.Strain
	energyHistory []float64
	strainHistory []float64
	fps           float64

	theme    int
	showHelp bool
	status   string
	err      error
}

func NewModel(cfg *config.Config, opts Options) (Model, error) {
	m := Model{
		cfg:           cfg,
		opts:          opts,
		energy:        metrics.NewKineticEnergy(),
		strain:        metrics.NewStrain(),
		energyHistory: make([]float64, 0, historyCapacity),
		strainHistory: make([]float64, 0, historyCapacity),
	}
	if err := m.rebuild(); err != nil {
		return Model{}, err
	}
	m.resize(defaultCols, defaultRows)
	return m, nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.input.mouse(msg, m.view.toWorld(msg.X-canvasPadX, msg.Y-canvasPadY))
	case tea.WindowSizeMsg:
		m.resize(msg.Width-statsWidth-1-2*canvasPadX, msg.Height-2*canvasPadY)
	case TickMsg:
		now := time.Time(msg)
		elapsed := m.cfg.Run.Dt
		if !m.lastTick.IsZero() {
			elapsed = float64(now.Sub(m.lastTick)) / float64(time.Millisecond)
		}
		m.lastTick = now
		m.step(elapsed)
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ":
		m.input.toggle = true
	case "d":
		m.input.stickyModifier = !m.input.stickyModifier
	case "r":
		if err := m.rebuild(); err != nil {
			m.err = err
		}
		m.status = "rebuilt " + m.presetName()
	case "c":
		m.ctrl.Clear()
		m.status = "cleared"
	case "e":
		m.exportFrame()
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
		m.status = "theme " + Themes[m.theme].Name
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// step hands one sampled input to the controller. Frame time is clamped so
// a stalled terminal cannot inject a huge dt.
func (m *Model) step(elapsed float64) {
	if limit := m.cfg.Physics.MaxFrameMs; limit > 0 && elapsed > limit {
		elapsed = limit
	}
	if elapsed > 0 {
		m.fps = 0.9*m.fps + 0.1*(1000/elapsed)
	}
	m.ctrl.Tick(m.input.snapshot(elapsed))

	if m.ctrl.Mode() == sim.ModeSimulate {
		store := m.ctrl.Store()
		m.energy.Observe(store)
		m.strain.Observe(store)
		m.energyHistory = appendCapped(m.energyHistory, m.energy.Value())
		m.strainHistory = appendCapped(m.strainHistory, m.strain.Value())
	}
}

func appendCapped(values []float64, v float64) []float64 {
	values = append(values, v)
	if len(values) > historyCapacity {
		values = values[1:]
	}
	return values
}

func (m *Model) rebuild() error {
	ctrl, _, err := sim.Build(m.cfg)
	if err != nil {
		return err
	}
	for _, o := range m.opts.Observers {
		ctrl.AddObserver(o)
	}
	m.ctrl = ctrl
	m.energy.Reset()
	m.strain.Reset()
	m.energyHistory = m.energyHistory[:0]
	m.strainHistory = m.strainHistory[:0]
	m.applyReach()
	return nil
}

func (m *Model) resize(cols, rows int) {
	if cols < minCols {
		cols = minCols
	}
	if rows < minRows {
		rows = minRows
	}
	m.canvas = NewCanvas(cols, rows)
	m.view = newViewport(cols, rows, m.cfg.World.Width, m.cfg.World.Height)
	m.applyReach()
}

// applyReach widens picking to at least one terminal cell, since a cell
// covers many world units.
func (m *Model) applyReach() {
	if m.ctrl == nil || m.view.scale == 0 {
		return
	}
	reach := m.view.cellReach()
	m.ctrl.SetOptions(sim.Options{
		PickRadius:    math.Max(m.cfg.Editor.PickRadius, reach),
		LinkTolerance: math.Max(m.cfg.Editor.LinkTolerance, reach/2),
	})
}

func (m *Model) exportFrame() {
	path := filepath.Join(m.opts.ExportDir, fmt.Sprintf("clothsim_%d.svg", time.Now().Unix()))
	if err := export.WriteFrame(path, m.ctrl.Frame(), m.cfg.World.Width, m.cfg.World.Height); err != nil {
		m.err = err
		return
	}
	m.status = "saved " + path
}

func (m Model) presetName() string {
	if m.opts.Preset == "" {
		return "custom"
	}
	return m.opts.Preset
}

func (m *Model) draw(f sim.Frame) {
	m.canvas.Clear()
	for _, l := range f.Links {
		x0, y0 := m.view.toSub(l.A)
		x1, y1 := m.view.toSub(l.B)
		if !m.view.contains(x0, y0) && !m.view.contains(x1, y1) {
			continue
		}
		m.canvas.DrawLine(x0, y0, x1, y1)
	}
	for _, p := range f.Points {
		x, y := m.view.toSub(p.Position)
		if p.Pinned {
			m.canvas.Marker(x, y)
		} else {
			m.canvas.Set(x, y)
		}
	}
	if f.Preview != nil {
		x0, y0 := m.view.toSub(f.Preview.From)
		x1, y1 := m.view.toSub(f.Preview.To)
		m.canvas.DrawLine(x0, y0, x1, y1)
	}
}

func (m Model) View() string {
	frame := m.ctrl.Frame()
	m.draw(frame)
	theme := Themes[m.theme]
	canvasView := canvasStyle.Foreground(theme.Cloth).Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Foreground(theme.Accent).Render("CLOTHSIM · "+strings.ToUpper(m.presetName())) + "\n")

	switch {
	case m.ctrl.Mode() == sim.ModeSimulate:
		s.WriteString(StatusSimulating.Render("SIMULATING"))
	case m.input.stickyModifier:
		s.WriteString(StatusWarning.Render("EDIT · DELETE"))
	default:
		s.WriteString(StatusEditing.Render("EDITING"))
	}
	if d := m.ctrl.Drag(); d.Active {
		s.WriteString(valueStyle.Render("  linking from " + d.Source.String()))
	}
	s.WriteString("\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	pinned := 0
	for _, p := range frame.Points {
		if p.Pinned {
			pinned++
		}
	}
	s.WriteString(labelStyle.Render("Points") + valueStyle.Render(fmt.Sprintf("%d (%d pinned)", len(frame.Points), pinned)) + "\n")
	s.WriteString(labelStyle.Render("Links") + valueStyle.Render(fmt.Sprintf("%d", len(frame.Links))) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.3f (peak %.3f)", m.energy.Value(), m.energy.Peak())) + "\n")
	s.WriteString(labelStyle.Render("Strain") + SparklineChart(m.strainHistory, 20) + "\n")
	s.WriteString(labelStyle.Render("FPS") + valueStyle.Render(fmt.Sprintf("%.0f", m.fps)) + "\n")
	wind := "off"
	if m.cfg.Wind.Enabled {
		wind = "on"
	}
	s.WriteString(labelStyle.Render("Wind") + valueStyle.Render(wind) + "\n")

	if m.err != nil {
		s.WriteString("\n" + StatusWarning.Render(m.err.Error()) + "\n")
	} else if m.status != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Muted).Render(m.status) + "\n")
	}

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Mode R:Reset C:Clear\nE:SVG T:Theme ?:Help Q:Quit"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))

	if m.showHelp {
		return `
╔══════════════════════════════════════════╗
║              CLOTHSIM CONTROLS            ║
╠══════════════════════════════════════════╣
║  Click        - Add point / start link   ║
║  Drag         - Link two points          ║
║  Ctrl+Click   - Delete point             ║
║  D            - Sticky delete mode       ║
║  Right click  - Pin / unpin              ║
║  Space        - Edit <-> simulate        ║
║  Hold + drag  - Cut links (simulating)   ║
║  R / C        - Rebuild / clear          ║
║  E            - Export SVG               ║
║  T            - Cycle themes             ║
║  ?            - Toggle this help         ║
║  Q            - Quit                     ║
╚══════════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run starts the interactive program and blocks until it exits.
func Run(cfg *config.Config, opts Options) error {
	m, err := NewModel(cfg, opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
