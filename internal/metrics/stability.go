package metrics

import (
	"math"

	"github.com/san-kum/yeesim/internal/fdtd"
	"gonum.org/v1/gonum/floats"
)

// Stability is the fraction of steps where E stayed finite and below the
// threshold. An unstable Courant number drives it towards zero.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) OnStep(eng *fdtd.Engine) {
	s.samples++
	e := eng.E()
	if len(e) == 0 {
		return
	}
	if floats.HasNaN(e) || math.Max(floats.Max(e), -floats.Min(e)) > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
