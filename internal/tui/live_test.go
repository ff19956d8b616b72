package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/yeesim/internal/config"
	"github.com/san-kum/yeesim/internal/experiment"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	reg := experiment.NewRegistry()
	ms := reg.DefaultMetrics()
	x := experiment.New(config.GetPreset("vacuum"))
	if err := x.Setup(reg, ms); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	return NewModel("vacuum", x, ms, 30)
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelTickAdvances(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(key("+"))
	m = next.(Model)
	if m.speed != 2 {
		t.Fatalf("expected speed 2, got %d", m.speed)
	}

	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(Model)
	if cmd == nil {
		t.Error("expected another tick")
	}
	if got := m.eng.StepIndex(); got != 2 {
		t.Errorf("expected 2 steps, got %d", got)
	}
}

func TestModelPauseAndReset(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(key(" "))
	m = next.(Model)
	if !m.paused {
		t.Fatal("expected paused")
	}

	next, _ = m.Update(tickMsg(time.Now()))
	m = next.(Model)
	if m.eng.StepIndex() != 0 {
		t.Error("paused model should not step on tick")
	}

	next, _ = m.Update(key("n"))
	m = next.(Model)
	if m.eng.StepIndex() != 1 {
		t.Errorf("single step: got %d", m.eng.StepIndex())
	}

	next, _ = m.Update(key("r"))
	m = next.(Model)
	if m.eng.StepIndex() != 0 || len(m.history) != 0 {
		t.Error("reset should rewind the engine and clear history")
	}
}

func TestModelSingleStepIgnoresSpeed(t *testing.T) {
	m := newTestModel(t)
	for _, k := range []string{"+", "+", "+", " "} {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	if m.speed != 8 || !m.paused {
		t.Fatalf("setup: speed=%d paused=%v", m.speed, m.paused)
	}

	next, _ := m.Update(key("n"))
	m = next.(Model)
	if got := m.eng.StepIndex(); got != 1 {
		t.Errorf("single step advanced %d steps", got)
	}
	if len(m.history) != 1 {
		t.Errorf("expected one history sample, got %d", len(m.history))
	}
}

func TestModelSpeedLimits(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 20; i++ {
		next, _ := m.Update(key("+"))
		m = next.(Model)
	}
	if m.speed != maxSpeed {
		t.Errorf("expected speed capped at %d, got %d", maxSpeed, m.speed)
	}
	for i := 0; i < 20; i++ {
		next, _ := m.Update(key("-"))
		m = next.(Model)
	}
	if m.speed != 1 {
		t.Errorf("expected speed floor 1, got %d", m.speed)
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(tickMsg(time.Now()))
	view := next.(Model).View()

	for _, want := range []string{"vacuum", "E(x)", "peak_field"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestResample(t *testing.T) {
	v := []float64{0, 0.1, -2, 0.3, 0.2, 0.1, 1, 0}
	got := resample(v, 4)
	want := []float64{0.1, -2, 0.2, 1}
	if len(got) != len(want) {
		t.Fatalf("len %d", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bucket %d: got %g, want %g", i, got[i], want[i])
		}
	}

	if short := resample(v, 20); len(short) != len(v) {
		t.Errorf("short input should be returned as is")
	}
}

func TestAxisOffset(t *testing.T) {
	if got := axisOffset(" 1.00 ┤  ╭╮\n 0.00 ┼──╯╰"); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
	if got := axisOffset("no axis"); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestProgress(t *testing.T) {
	m := newTestModel(t)
	var buf bytes.Buffer
	p := NewProgress(&buf, 4)

	eng := m.eng
	for eng.Step() {
		p.OnStep(eng)
	}
	out := buf.String()
	if !strings.Contains(out, "100%") {
		t.Errorf("expected final 100%%, got %q", out)
	}
	if strings.Count(out, "\r") > 8 {
		t.Errorf("too many updates: %d", strings.Count(out, "\r"))
	}
}
