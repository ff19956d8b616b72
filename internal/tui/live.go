package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/yeesim/internal/experiment"
	"github.com/san-kum/yeesim/internal/fdtd"
	"github.com/san-kum/yeesim/internal/metrics"
)

const (
	maxSpeed    = 256
	historySize = 60
)

// Model is the live view: each tick advances the engine by speed steps and
// redraws E(x) with the layer, source and probe positions underneath.
type Model struct {
	name      string
	exp       *experiment.Experiment
	eng       *fdtd.Engine
	observers []fdtd.Observer
	metrics   []metrics.Metric

	frame     time.Duration
	speed     int
	paused    bool
	fps       float64
	lastFrame time.Time
	history   []float64
	yRange    float64

	width  int
	height int
}

type tickMsg time.Time

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// NewModel wraps a set-up experiment. ms must be the metrics passed to
// Setup; they are shown under the plot.
func NewModel(name string, exp *experiment.Experiment, ms []metrics.Metric, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		name:      name,
		exp:       exp,
		eng:       exp.Engine(),
		observers: exp.Observers(),
		metrics:   ms,
		frame:     time.Second / time.Duration(fps),
		speed:     1,
		history:   make([]float64, 0, historySize),
		yRange:    1,
		width:     80,
		height:    24,
	}
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if !m.paused && m.eng.HasNext() {
			now := time.Now()
			if !m.lastFrame.IsZero() {
				if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
					m.fps = 1.0 / dt
				}
			}
			m.lastFrame = now
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) advance() { m.run(m.speed) }

func (m *Model) stepOnce() { m.run(1) }

// run steps the engine up to n times, notifying the observers after each
// step, and records the field peak for the sparkline.
func (m *Model) run(n int) {
	for i := 0; i < n && m.eng.Step(); i++ {
		for _, o := range m.observers {
			o.OnStep(m.eng)
		}
	}

	peak := maxAbs(m.eng.E())
	if !math.IsNaN(peak) && !math.IsInf(peak, 0) {
		m.yRange = math.Max(m.yRange, peak)
	}
	m.history = append(m.history, peak)
	if len(m.history) > historySize {
		m.history = m.history[1:]
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case " ", "p":
		m.paused = !m.paused
	case "r":
		m.eng.Reset()
		m.observers = m.exp.Observers()
		m.history = m.history[:0]
		m.yRange = 1
		m.lastFrame = time.Time{}
	case "+", "=":
		m.speed = min(m.speed*2, maxSpeed)
	case "-", "_":
		m.speed = max(m.speed/2, 1)
	case "0":
		m.speed = 1
	case "n":
		if m.paused {
			m.stepOnce()
		}
	}
	return m, nil
}

func (m Model) View() string {
	cw := max(m.width-14, 40)
	ch := max(m.height-14, 8)

	var b strings.Builder

	statusIcon, statusText := green.Render("●"), green.Render("running")
	switch {
	case m.eng.Err() != nil:
		statusIcon, statusText = red.Render("●"), red.Render(m.eng.Err().Error())
	case m.eng.Done():
		statusIcon, statusText = cyan.Render("■"), cyan.Render("done")
	case m.paused:
		statusIcon, statusText = yellow.Render("○"), yellow.Render("paused")
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s\n", statusIcon, cyan.Render(m.name), statusText,
		dim.Render(fmt.Sprintf("x%d", m.speed))))

	progress := 1.0
	if tc := m.eng.TimeCounts(); tc > 0 {
		progress = float64(m.eng.StepIndex()) / float64(tc)
	}
	timeStr := fmt.Sprintf("%d/%d  t=%.3gs", m.eng.StepIndex(), m.eng.TimeCounts(), m.eng.CurrentTime())
	b.WriteString(fmt.Sprintf("   %s %s  %s\n\n", ProgressBar(progress, 36), dim.Render(timeStr),
		dim.Render(fmt.Sprintf("%.0ffps", m.fps))))

	data := resample(m.eng.E(), cw)
	graph := asciigraph.Plot(data,
		asciigraph.Height(ch),
		asciigraph.Width(cw),
		asciigraph.LowerBound(-m.yRange),
		asciigraph.UpperBound(m.yRange),
		asciigraph.Caption("E(x)"),
	)
	b.WriteString(indent(graph, "   ") + "\n")

	b.WriteString("   " + strings.Repeat(" ", axisOffset(graph)) + markers(m.eng, cw) + "\n")
	b.WriteString("   " + dim.Render("▒ layer  ") + magenta.Render("S") + dim.Render(" source  ") +
		green.Render("P") + dim.Render(" probe") + "\n\n")

	var ms strings.Builder
	ms.WriteString("   ")
	for _, metric := range m.metrics {
		ms.WriteString(dim.Render(metric.Name() + "="))
		ms.WriteString(white.Render(fmt.Sprintf("%.3g", metric.Value())))
		ms.WriteString("  ")
	}
	b.WriteString(ms.String() + "\n")
	if len(m.history) > 1 {
		b.WriteString(fmt.Sprintf("   %s %s\n", dim.Render("|E|max"), cyan.Render(Sparkline(m.history, 24))))
	}

	b.WriteString("\n" + dim.Render("   space pause  n step  ±speed  r reset  q quit") + "\n")
	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// axisOffset is the column where plotted points start, just past the y axis.
func axisOffset(graph string) int {
	line, _, _ := strings.Cut(graph, "\n")
	idx := strings.IndexAny(line, "┤┼")
	if idx < 0 {
		return 0
	}
	return utf8.RuneCountInString(line[:idx]) + 1
}

func maxAbs(v []float64) float64 {
	peak := 0.0
	for _, x := range v {
		if math.IsNaN(x) {
			return x
		}
		peak = math.Max(peak, math.Abs(x))
	}
	return peak
}

// resample reduces v to at most width points, keeping the largest
// magnitude in each bucket so narrow pulses stay visible.
func resample(v []float64, width int) []float64 {
	if len(v) <= width {
		return v
	}
	out := make([]float64, width)
	for i := range out {
		lo := i * len(v) / width
		hi := (i + 1) * len(v) / width
		best := v[lo]
		for _, x := range v[lo:hi] {
			if math.Abs(x) > math.Abs(best) {
				best = x
			}
		}
		out[i] = best
	}
	return out
}

// markers renders a row of width cells over the grid nodes.
func markers(eng *fdtd.Engine, width int) string {
	n := eng.Size()
	if width == 0 || n == 0 {
		return ""
	}
	cell := func(idx int) int {
		return min(idx*width/n, width-1)
	}

	row := make([]string, width)
	for i := range row {
		row[i] = " "
	}
	dx := eng.Dx()
	for _, l := range eng.Layers() {
		lo, hi := cell(int(l.Start/dx)), cell(int(l.End/dx))
		for i := max(lo, 0); i <= hi && i < width; i++ {
			row[i] = dim.Render("▒")
		}
	}
	for _, s := range eng.Sources() {
		row[cell(s.Index)] = magenta.Render("S")
	}
	for _, p := range eng.Probes() {
		row[cell(p.Index)] = green.Render("P")
	}
	return strings.Join(row, "")
}

// Run starts the live view on the alternate screen and returns once the
// user quits.
func Run(m Model) (Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return m, err
	}
	return final.(Model), nil
}

// Progress prints a single-line progress bar for non-interactive runs.
type Progress struct {
	w     io.Writer
	every int
}

func NewProgress(w io.Writer, updates int) *Progress {
	return &Progress{w: w, every: max(updates, 1)}
}

func (p *Progress) OnStep(eng *fdtd.Engine) {
	tc := eng.TimeCounts()
	step := eng.StepIndex()
	if tc == 0 || (step%max(tc/p.every, 1) != 0 && step != tc) {
		return
	}
	frac := float64(step) / float64(tc)
	fmt.Fprintf(p.w, "\r   %s %3.0f%%", ProgressBar(frac, 36), frac*100)
	if step == tc {
		fmt.Fprintln(p.w)
	}
}
