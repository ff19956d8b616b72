package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/yeesim/internal/fdtd"
)

func newEngine(t *testing.T, right fdtd.Boundary) *fdtd.Engine {
	t.Helper()
	eng, err := fdtd.New(fdtd.Config{AreaSize: 2.0, SpaceStep: 0.01, TimeDuration: 1e-8, Sc: 1.0})
	if err != nil {
		t.Fatal(err)
	}
	eng.SetRightBoundary(right)
	src := fdtd.NewSource(1.0, fdtd.Gaussian{Amplitude: 1, Delay: 30 * eng.Dt(), Width: 10 * eng.Dt()})
	if err := eng.AddSource(src); err != nil {
		t.Fatal(err)
	}
	return eng
}

func TestFieldEnergyOfZeroGrid(t *testing.T) {
	eng, err := fdtd.New(fdtd.Config{AreaSize: 1.0, SpaceStep: 0.01, TimeDuration: 1e-8, Sc: 1.0})
	if err != nil {
		t.Fatal(err)
	}
	if w := FieldEnergy(eng, nil); w != 0 {
		t.Errorf("expected zero energy, got %g", w)
	}
}

func TestResidualEnergy(t *testing.T) {
	tests := []struct {
		name     string
		right    fdtd.Boundary
		absorbed bool
	}{
		{"pec", fdtd.NewPEC(fdtd.Right), false},
		{"abc", fdtd.NewABCFirstOrder(fdtd.Right), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := newEngine(t, tt.right)
			peak, residual := NewPeakEnergy(), NewResidualEnergy()
			ms := []Metric{peak, residual}

			if err := eng.Run(context.Background(), Observers(ms)...); err != nil {
				t.Fatalf("run failed: %v", err)
			}

			if peak.Value() <= 0 {
				t.Fatal("expected positive peak energy")
			}
			got := Collect(ms)["residual_energy"]
			if tt.absorbed && got > 1e-4 {
				t.Errorf("residual energy %g, expected the pulse to leave the grid", got)
			}
			if !tt.absorbed && got < 0.5 {
				t.Errorf("residual energy %g, expected the pulse to stay on the grid", got)
			}
		})
	}
}

func TestPeakField(t *testing.T) {
	eng := newEngine(t, fdtd.NewABCFirstOrder(fdtd.Right))
	m := NewPeakField()
	if err := eng.Run(context.Background(), m); err != nil {
		t.Fatal(err)
	}
	if math.Abs(m.Value()-1) > 0.05 {
		t.Errorf("peak field = %g, want ~1", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("reset did not clear the peak")
	}
}

func TestStability(t *testing.T) {
	eng := newEngine(t, fdtd.NewPEC(fdtd.Right))
	stable := NewStability(10)
	if err := eng.Run(context.Background(), stable); err != nil {
		t.Fatal(err)
	}
	if stable.Value() != 1 {
		t.Errorf("expected a stable run, got %g", stable.Value())
	}

	unstable, err := fdtd.New(fdtd.Config{AreaSize: 2.0, SpaceStep: 0.01, TimeDuration: 1e-8, Sc: 1.5})
	if err != nil {
		t.Fatal(err)
	}
	_ = unstable.AddSource(fdtd.NewSource(1.0, fdtd.Gaussian{Amplitude: 1, Delay: 30 * unstable.Dt(), Width: 10 * unstable.Dt()}))
	s := NewStability(10)
	if err := unstable.Run(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	if s.Value() > 0.9 {
		t.Errorf("expected Sc=1.5 to blow up, stability = %g", s.Value())
	}

	s.Reset()
	if s.Value() != 1 {
		t.Error("reset did not clear the counters")
	}
}
