package fdtd

import (
	"math"
	"testing"
)

func TestWaveforms(t *testing.T) {
	tests := []struct {
		name string
		w    Waveform
		t    float64
		want float64
	}{
		{"gaussian peak", Gaussian{Amplitude: 2, Delay: 1e-9, Width: 1e-10}, 1e-9, 2},
		{"gaussian one width", Gaussian{Amplitude: 1, Delay: 1e-9, Width: 1e-10}, 1.1e-9, math.Exp(-1)},
		{"harmonic quarter period", Harmonic{Amplitude: 1, Frequency: 1e9}, 0.25e-9, 1},
		{"harmonic phase", Harmonic{Amplitude: 1, Frequency: 1e9, Phase: math.Pi / 2}, 0, 1},
		{"ricker peak", Ricker{Amplitude: 1, PeakFrequency: 1e9, Delay: 2e-9}, 2e-9, 1},
		{"modulated at delay", ModulatedGaussian{Amplitude: 1, Delay: 1e-9, Width: 1e-10, Frequency: 1e9}, 1e-9, 0},
		{"func adapter", WaveformFunc(func(t float64) float64 { return 3 * t }), 2, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.w.At(tt.t); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("At(%g) = %g, want %g", tt.t, got, tt.want)
			}
		})
	}
}

func TestSourceRetardation(t *testing.T) {
	dt := 1e-11
	s := &Source{
		Waveform: WaveformFunc(func(t float64) float64 { return t / dt }),
		Eps:      4,
		Mu:       1,
		Sc:       0.5,
		Dt:       dt,
	}

	// n/Sc = 4, so half a cell back costs two time steps
	if got := s.E(0, 10); math.Abs(got-10) > 1e-9 {
		t.Errorf("E(0, 10) = %g, want 10", got)
	}
	if got := s.E(-0.5, 10.5); math.Abs(got-12.5) > 1e-9 {
		t.Errorf("E(-0.5, 10.5) = %g, want 12.5", got)
	}
}
