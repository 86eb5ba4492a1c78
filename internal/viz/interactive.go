package viz

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/quentinglorieux/Bogo3D/internal/analysis"
	"github.com/quentinglorieux/Bogo3D/internal/bogo"
	"github.com/quentinglorieux/Bogo3D/internal/config"
	"github.com/quentinglorieux/Bogo3D/internal/eval"
	"github.com/quentinglorieux/Bogo3D/internal/physics"
)

const (
	width  = 80
	height = 24
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	paramStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

func themed(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var modeOrder = []string{"spatial", "temporal", "condensate"}

var modeInfo = map[string]string{
	"spatial":    "transverse (kx, ky) branch",
	"temporal":   "spatio-temporal (kx, Δω) branch",
	"condensate": "textbook branch, arbitrary units",
}

type TickMsg time.Time

// Model holds the workbench state: the relation under study, its
// evaluated surfaces, and the UI context around them.
type Model struct {
	rel           bogo.Relation
	cfg           *config.Config
	evaluator     *eval.Evaluator
	pool          *eval.FieldPool
	field         *bogo.Field
	cut           *bogo.Cut
	summary       analysis.Summary
	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int
	cutFixed      string
	cutValue      float64
	camera3D      *Camera
	canvas        *Canvas
	rotating      bool
	showHelp      bool
	status        string
	err           error
	evalTime      time.Duration
	snapshotHook  func(*Canvas) error
}

// NewModel evaluates the configured relation and prepares the
// workbench around it.
func NewModel(cfg *config.Config) (Model, error) {
	rel, err := physics.New(cfg.Relation)
	if err != nil {
		return Model{}, err
	}
	if t, ok := rel.(bogo.Configurable); ok {
		for k, v := range cfg.RelationParams() {
			if err := t.SetParam(k, v); err != nil {
				return Model{}, err
			}
		}
	}

	cam := NewCamera()
	cam.Position = Vec3{0, 0, 5}
	cam.RotX = -0.7

	m := Model{
		rel:      rel,
		cfg:      cfg,
		camera3D: cam,
		canvas:   NewCanvas(width, height),
		rotating: true,
	}
	m.rebuild()
	if m.err != nil {
		return Model{}, m.err
	}
	return m, nil
}

// SetSnapshotHook installs the callback invoked when the user asks for
// an SVG snapshot of the canvas.
func (m *Model) SetSnapshotHook(hook func(*Canvas) error) { m.snapshotHook = hook }

func paramState(rel bogo.Relation) (params, initial map[string]float64, keys []string) {
	params = make(map[string]float64)
	initial = make(map[string]float64)
	if t, ok := rel.(bogo.Configurable); ok {
		for k, v := range t.GetParams() {
			params[k] = v
			if v == 0 {
				v = 1e-6
			}
			initial[k] = v
		}
	}
	keys = make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return params, initial, keys
}

// rebuild resets the evaluation pipeline after a mode switch.
func (m *Model) rebuild() {
	m.evaluator = eval.New(m.rel)
	a, b := m.cfg.GridAxes()
	m.pool = eval.NewFieldPool(a, b)
	m.field = nil
	m.params, m.initialParams, m.paramKeys = paramState(m.rel)
	m.selected = 0
	m.cutFixed, m.cutValue = m.cfg.CutSelection()
	m.recompute()
}

// recompute re-evaluates the surface and cut for the current
// parameters.
func (m *Model) recompute() {
	start := time.Now()
	ctx := context.Background()

	f := m.pool.Get()
	if err := m.evaluator.GridInto(ctx, f); err != nil {
		m.pool.Put(f)
		m.err = err
		return
	}
	if m.field != nil {
		m.pool.Put(m.field)
	}
	m.field = f

	axis := m.cfg.CutAxis(m.cutFixed)
	cut, err := m.evaluator.Cut(ctx, config.FixedAxisID(m.cutFixed), m.cutValue, axis.Samples)
	if err != nil {
		m.err = err
		return
	}
	m.cut = cut

	m.summary = analysis.Summarize(m.rel, m.field)
	m.evalTime = time.Since(start)
	m.err = nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and advances the camera.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ""
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.rotating = !m.rotating
		case "r":
			m.reset()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "m":
			m.cycleMode()
		case "c":
			m.cycleCut()
		case "left", "h":
			m.moveCut(-1)
		case "right", "l":
			m.moveCut(1)
		case "g":
			m.snapshot()
		case "t":
			SetTheme(NextTheme())
		case "?":
			m.showHelp = !m.showHelp
		case "x":
			m.camera3D.RotateX(0.1)
		case "X":
			m.camera3D.RotateX(-0.1)
		case "y":
			m.camera3D.RotateY(0.1)
		case "Y":
			m.camera3D.RotateY(-0.1)
		case "z":
			m.camera3D.RotateZ(0.1)
		case "Z":
			m.camera3D.RotateZ(-0.1)
		case "+", "=":
			m.camera3D.ZoomIn()
		case "-", "_":
			m.camera3D.ZoomOut()
		}
	case TickMsg:
		if m.rotating {
			m.camera3D.RotY += 0.005
		}
		m.draw()
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	newVal := m.params[key] * factor
	if t, ok := m.rel.(bogo.Configurable); ok {
		if err := t.SetParam(key, newVal); err != nil {
			m.err = err
			return
		}
	}
	m.params[key] = newVal
	m.recompute()
}

func (m *Model) cycleMode() {
	for i, name := range modeOrder {
		if name == m.cfg.Relation {
			m.setMode(modeOrder[(i+1)%len(modeOrder)])
			return
		}
	}
	m.setMode(modeOrder[0])
}

// setMode switches the relation, carrying over parameters both modes
// understand.
func (m *Model) setMode(name string) {
	rel, err := physics.New(name)
	if err != nil {
		m.err = err
		return
	}

	var old map[string]float64
	if t, ok := m.rel.(bogo.Configurable); ok {
		old = t.GetParams()
	}
	if t, ok := rel.(bogo.Configurable); ok {
		for k := range t.GetParams() {
			if v, found := old[k]; found {
				t.SetParam(k, v)
			}
		}
	}

	m.cfg.Relation = name
	m.rel = rel
	m.rebuild()
}

func (m *Model) cycleCut() {
	switch m.cfg.Relation {
	case "temporal":
		if m.cutFixed == "kx" {
			m.cutFixed, m.cutValue = "domega", m.cfg.Cut.Domega
		} else {
			m.cutFixed, m.cutValue = "kx", m.cfg.Cut.Kx
		}
	case "condensate":
		return
	default:
		if m.cutFixed == "kx" {
			m.cutFixed, m.cutValue = "ky", 0
		} else {
			m.cutFixed, m.cutValue = "kx", m.cfg.Cut.Kx
		}
	}
	m.recompute()
}

func (m *Model) moveCut(dir float64) {
	step := m.cfg.Grid.KHalf / 20
	if m.cutFixed == "domega" {
		step = m.cfg.Grid.OmegaHalf / 20
	}
	m.cutValue += dir * step
	m.recompute()
}

func (m *Model) snapshot() {
	if m.snapshotHook == nil {
		return
	}
	m.draw()
	if err := m.snapshotHook(m.canvas); err != nil {
		m.status = "snapshot failed: " + err.Error()
		return
	}
	m.status = "snapshot saved"
}

// reset restores the initial parameters, cut, and viewpoint.
func (m *Model) reset() {
	if t, ok := m.rel.(bogo.Configurable); ok {
		for k, v := range m.initialParams {
			t.SetParam(k, v)
			m.params[k] = v
		}
	}
	m.cutFixed, m.cutValue = m.cfg.CutSelection()
	m.camera3D = NewCamera()
	m.camera3D.Position = Vec3{0, 0, 5}
	m.camera3D.RotX = -0.7
	m.recompute()
}

func (m *Model) draw() {
	m.canvas.Clear()
	if m.field == nil {
		return
	}
	Render3D(m.canvas, CreateAxesWireframe(1.2), m.camera3D)
	wf := SurfaceWireframe(m.field, m.cfg.Display.SurfaceStep)
	AddCutTrace(wf, m.field, m.cut)
	Render3D(m.canvas, wf, m.camera3D)
}

func (m *Model) displayCutValue() float64 {
	return m.cutValue * config.FixedAxisID(m.cutFixed).DisplayScale()
}

// View renders the workbench.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(themed(CurrentTheme.Primary).Bold(true).Render("BOGO3D "+strings.ToUpper(m.cfg.Relation)) + "\n")
	s.WriteString(themed(CurrentTheme.Muted).Render(modeInfo[m.cfg.Relation]) + "\n")

	if m.rotating {
		s.WriteString(StatusRunning.Render("● ROTATING") + "\n")
	} else {
		s.WriteString(StatusPaused.Render("◼ PAUSED") + "\n")
	}
	if m.status != "" {
		s.WriteString(themed(CurrentTheme.Success).Render(m.status) + "\n")
	}
	if m.err != nil {
		s.WriteString(themed(CurrentTheme.Error).Render(m.err.Error()) + "\n")
	}
	s.WriteString("\n")

	if m.cut != nil && m.cut.Len() > 1 {
		chart := asciigraph.PlotMany(
			[][]float64{m.cut.Free, m.cut.Omega},
			asciigraph.Height(6), asciigraph.Width(36),
			asciigraph.Caption(fmt.Sprintf("cut at %s = %.3g", m.cutFixed, m.displayCutValue())),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Eval") + MetricValue.Render(m.evalTime.Round(time.Microsecond).String()) + "\n")
	if m.summary.HealingK != 0 {
		s.WriteString(labelStyle.Render("k_ξ") + MetricValue.Render(fmt.Sprintf("%.0f mm⁻¹", m.summary.HealingK)) + "\n")
		s.WriteString(labelStyle.Render("c_s") + MetricValue.Render(fmt.Sprintf("%.3g", m.summary.SoundSpeed)) + "\n")
		s.WriteString(labelStyle.Render("Phonon") + MetricValue.Render(fmt.Sprintf("%.0f%%", m.summary.PhononFrac*100)) + "\n")
	}
	s.WriteString(labelStyle.Render("Peak Ω") + MetricValue.Render(fmt.Sprintf("%.3g", m.summary.PeakOmega)) + "\n")
	s.WriteString(labelStyle.Render("Shift") + MetricValue.Render(fmt.Sprintf("%.3g", m.summary.MaxShift)) + "\n")

	s.WriteString("\n" + Separator(36) + "\nPARAMETERS\n")
	if len(m.paramKeys) == 0 {
		s.WriteString(paramStyle.Render("  (none)") + "\n")
	}
	for i, k := range m.paramKeys {
		val, initial := m.params[k], m.initialParams[k]
		ratio := val / (2 * initial)
		line := fmt.Sprintf("%-8s %s %.3g", k, ProgressBar(ratio, 10), val)
		if i == m.selected {
			s.WriteString(themed(CurrentTheme.Accent).Bold(true).Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + paramStyle.Render(line) + "\n")
		}
	}

	if vg := analysis.GroupVelocity(m.cut); len(vg) > 0 {
		s.WriteString("\n" + MetricLabel.Render("v_g ") + SparklineChart(vg, 24) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nM:Mode C:Cut-axis T:Theme\nTab:Param ↑↓:Tune H/L:Move-cut\nX/Y/Z:Rotate +/-:Zoom G:SVG ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/resume rotation    ║
║  M        - Cycle dispersion mode    ║
║  C        - Cycle cut axis           ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter (+5%) ║
║  Down/J   - Decrease parameter (-5%) ║
║  H/L      - Move the cut             ║
║  X/Y/Z    - Rotate camera            ║
║  +/-      - Zoom                     ║
║  G        - Save SVG snapshot        ║
║  T        - Cycle themes             ║
║  R        - Reset                    ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// RunInteractive starts the workbench in the alternate screen.
func RunInteractive(cfg *config.Config, snapshotHook func(*Canvas) error) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	m.snapshotHook = snapshotHook
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
