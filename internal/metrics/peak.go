package metrics

import (
	"math"

	"github.com/san-kum/yeesim/internal/fdtd"
	"gonum.org/v1/gonum/floats"
)

// PeakField is the largest |E| seen anywhere on the grid.
type PeakField struct {
	peak float64
}

func NewPeakField() *PeakField { return &PeakField{} }

func (p *PeakField) Name() string { return "peak_field" }

func (p *PeakField) OnStep(eng *fdtd.Engine) {
	e := eng.E()
	if len(e) == 0 {
		return
	}
	p.peak = math.Max(p.peak, math.Max(floats.Max(e), -floats.Min(e)))
}

func (p *PeakField) Value() float64 { return p.peak }
func (p *PeakField) Reset()         { p.peak = 0 }
