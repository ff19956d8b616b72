package fdtd

import "math"

const (
	// C is the speed of light in vacuum, m/s.
	C = 299792458.0

	// Mu0 is the vacuum permeability, H/m.
	Mu0 = 4e-7 * math.Pi

	// Eps0 is the vacuum permittivity, F/m.
	Eps0 = 1 / (Mu0 * C * C)

	// W0 is the wave impedance of free space, ohm.
	W0 = Mu0 * C
)

// indexTolerance absorbs floating point noise when physical lengths are
// divided by the space step, so 0.3/0.1 maps to 3 and not 2.
const indexTolerance = 1e-9

func floorDiv(x, step float64) int {
	q := x / step
	return int(math.Floor(q + indexTolerance*math.Abs(q)))
}
