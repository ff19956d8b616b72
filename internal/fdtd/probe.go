package fdtd

// Sample is one (E, H) reading.
type Sample struct {
	E float64
	H float64
}

// Probe records the fields at one node every step.
type Probe struct {
	Position float64
	Index    int
	Samples  []Sample
	n        int
}

func newProbe(position float64, index, counts int) *Probe {
	return &Probe{
		Position: position,
		Index:    index,
		Samples:  make([]Sample, counts),
	}
}

func (p *Probe) record(e, h []float64) {
	if p.n >= len(p.Samples) {
		return
	}
	p.Samples[p.n] = Sample{E: e[p.Index], H: h[p.Index]}
	p.n++
}

// Len returns the number of populated samples.
func (p *Probe) Len() int { return p.n }

// EField returns the recorded E series.
func (p *Probe) EField() []float64 {
	out := make([]float64, p.n)
	for i := range out {
		out[i] = p.Samples[i].E
	}
	return out
}

// HField returns the recorded H series.
func (p *Probe) HField() []float64 {
	out := make([]float64, p.n)
	for i := range out {
		out[i] = p.Samples[i].H
	}
	return out
}

func (p *Probe) rewind() {
	clear(p.Samples)
	p.n = 0
}
