package fdtd

import "math"

// Source injects a wave travelling towards +x from its node.
//
// Index, Eps, Mu, Sc and Dt are filled in by Engine.AddSource and are not
// re-derived afterwards: a layer added later over the source node changes
// the injection coefficients but not the retardation used by E.
type Source struct {
	Position float64
	Waveform Waveform

	Index int
	Eps   float64
	Mu    float64
	Sc    float64
	Dt    float64
}

func NewSource(position float64, w Waveform) *Source {
	return &Source{Position: position, Waveform: w}
}

// E returns the incident field at offset cells from the source node at
// time index q (which may be fractional).
func (s *Source) E(offset, q float64) float64 {
	n := math.Sqrt(s.Eps * s.Mu)
	return s.Waveform.At((q - offset*n/s.Sc) * s.Dt)
}
