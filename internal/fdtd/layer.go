package fdtd

// Layer is a contiguous region with its own eps, mu and sigma. Start and
// End are physical lengths; the layer covers nodes [Start/dx, End/dx).
type Layer struct {
	Name       string
	Start, End float64
	Eps        float64
	Mu         float64
	Sigma      float64
}

func NewLayer(start, end, eps, mu, sigma float64) *Layer {
	return &Layer{Start: start, End: end, Eps: eps, Mu: mu, Sigma: sigma}
}

// Borders returns the physical start and end of the layer.
func (l *Layer) Borders() [2]float64 {
	return [2]float64{l.Start, l.End}
}
