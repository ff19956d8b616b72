package metrics

import (
	"math"

	"github.com/san-kum/yeesim/internal/fdtd"
	"gonum.org/v1/gonum/floats"
)

// FieldEnergy returns the electromagnetic energy per unit cross-section
// stored on the grid, J/m^2.
func FieldEnergy(eng *fdtd.Engine, scratch []float64) float64 {
	e, h := eng.E(), eng.H()
	if cap(scratch) < len(e) {
		scratch = make([]float64, len(e))
	}

	we := floats.Dot(floats.MulTo(scratch[:len(e)], eng.Eps(), e), e)
	wh := floats.Dot(floats.MulTo(scratch[:len(h)], eng.Mu(), h), h)
	return 0.5 * (fdtd.Eps0*we + fdtd.Mu0*wh) * eng.Dx()
}

// Energy tracks the peak and final field energy of a run.
type Energy struct {
	name    string
	final   bool
	peak    float64
	last    float64
	scratch []float64
}

// NewPeakEnergy reports the largest energy seen during the run.
func NewPeakEnergy() *Energy { return &Energy{name: "peak_energy"} }

// NewResidualEnergy reports the final energy as a fraction of the peak.
// Values near zero mean the edges let the wave out.
func NewResidualEnergy() *Energy { return &Energy{name: "residual_energy", final: true} }

func (m *Energy) Name() string { return m.name }

func (m *Energy) OnStep(eng *fdtd.Engine) {
	if len(m.scratch) < eng.Size() {
		m.scratch = make([]float64, eng.Size())
	}
	w := FieldEnergy(eng, m.scratch)
	m.peak = math.Max(m.peak, w)
	m.last = w
}

func (m *Energy) Value() float64 {
	if !m.final {
		return m.peak
	}
	if m.peak == 0 {
		return 0
	}
	return m.last / m.peak
}

func (m *Energy) Reset() {
	m.peak = 0
	m.last = 0
}
