package fdtd

import "math"

// Waveform is a source time signature. t is in seconds.
type Waveform interface {
	At(t float64) float64
}

// WaveformFunc adapts a plain function to Waveform.
type WaveformFunc func(t float64) float64

func (f WaveformFunc) At(t float64) float64 { return f(t) }

// Gaussian is a pulse centered at Delay with 1/e half-width Width.
type Gaussian struct {
	Amplitude float64
	Delay     float64
	Width     float64
}

func (g Gaussian) At(t float64) float64 {
	x := (t - g.Delay) / g.Width
	return g.Amplitude * math.Exp(-x*x)
}

// Harmonic is a continuous sine wave.
type Harmonic struct {
	Amplitude float64
	Frequency float64
	Phase     float64
}

func (h Harmonic) At(t float64) float64 {
	return h.Amplitude * math.Sin(2*math.Pi*h.Frequency*t+h.Phase)
}

// Ricker is the second derivative of a Gaussian, peaking at Delay.
type Ricker struct {
	Amplitude     float64
	PeakFrequency float64
	Delay         float64
}

func (r Ricker) At(t float64) float64 {
	a := math.Pi * r.PeakFrequency * (t - r.Delay)
	a *= a
	return r.Amplitude * (1 - 2*a) * math.Exp(-a)
}

// ModulatedGaussian is a sine carrier under a Gaussian envelope.
type ModulatedGaussian struct {
	Amplitude float64
	Delay     float64
	Width     float64
	Frequency float64
}

func (m ModulatedGaussian) At(t float64) float64 {
	x := (t - m.Delay) / m.Width
	return m.Amplitude * math.Exp(-x*x) * math.Sin(2*math.Pi*m.Frequency*(t-m.Delay))
}
