package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// Spectrum returns frequencies (Hz) and amplitudes for the one-sided
// spectrum of a series sampled every dt seconds.
func Spectrum(series []float64, dt float64) (freqs, amps []float64) {
	n := len(series)
	if n == 0 || dt <= 0 {
		return nil, nil
	}

	coeffs := fft.FFTReal(series)
	half := n/2 + 1
	freqs = make([]float64, half)
	amps = make([]float64, half)
	for k := 0; k < half; k++ {
		freqs[k] = float64(k) / (float64(n) * dt)
		amps[k] = cmplx.Abs(coeffs[k]) / float64(n)
	}
	return freqs, amps
}

// DominantFrequency returns the frequency of the strongest spectral line,
// ignoring DC. It returns 0 for series shorter than two samples.
func DominantFrequency(series []float64, dt float64) float64 {
	freqs, amps := Spectrum(series, dt)
	if len(amps) < 2 {
		return 0
	}
	return freqs[1+floats.MaxIdx(amps[1:])]
}

// PeakArrival returns the time and value of the sample with the largest
// magnitude. Sample k is taken at t = k*dt.
func PeakArrival(series []float64, dt float64) (t, value float64) {
	if len(series) == 0 {
		return 0, 0
	}
	best := 0
	for i, v := range series {
		if math.Abs(v) > math.Abs(series[best]) {
			best = i
		}
	}
	return float64(best) * dt, series[best]
}

// TransferFunction returns |Out(f)/In(f)| for the frequencies where the
// input amplitude is above floor times its maximum; other bins are NaN.
func TransferFunction(in, out []float64, dt, floor float64) (freqs, ratio []float64) {
	n := min(len(in), len(out))
	freqs, ain := Spectrum(in[:n], dt)
	_, aout := Spectrum(out[:n], dt)
	if len(ain) == 0 {
		return nil, nil
	}

	limit := floor * floats.Max(ain)
	ratio = make([]float64, len(ain))
	for k := range ain {
		if ain[k] <= limit || ain[k] == 0 {
			ratio[k] = math.NaN()
			continue
		}
		ratio[k] = aout[k] / ain[k]
	}
	return freqs, ratio
}
