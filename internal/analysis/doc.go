// Package analysis reduces probe time series to physical quantities.
//
//   - [Spectrum]: one-sided amplitude spectrum of a series
//   - [DominantFrequency]: strongest non-DC spectral line
//   - [PeakArrival]: time and value of the largest |sample|
//   - [TransferFunction]: |Out(f)/In(f)| between two probes
//
// A probe placed behind a directional source (on the -x side) lies in the
// scattered-field region and records only reflected waves, so the ratio of
// its spectrum to that of a probe in front of the source is a reflectance.
package analysis
