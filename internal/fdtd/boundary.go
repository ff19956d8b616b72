package fdtd

import "math"

// Side selects a grid edge.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Boundary is an edge condition bound to one side of the grid.
//
// UpdateCoefficient receives the material next to the edge and the Courant
// number; the engine calls it once per run start. UpdateField sets the edge
// element of e after the interior E update.
type Boundary interface {
	Side() Side
	UpdateCoefficient(eps, mu, sc float64)
	UpdateField(e, h []float64)
	Reset()
}

// at maps a distance k from the edge to an index into an array of length n.
func at(side Side, n, k int) int {
	if side == Left {
		return k
	}
	return n - 1 - k
}

// PEC holds the edge field at zero (perfect electric conductor).
type PEC struct {
	side Side
}

func NewPEC(side Side) *PEC { return &PEC{side: side} }

func (b *PEC) Side() Side                        { return b.side }
func (b *PEC) UpdateCoefficient(_, _, _ float64) {}
func (b *PEC) Reset()                            {}

func (b *PEC) UpdateField(e, _ []float64) {
	e[at(b.side, len(e), 0)] = 0
}

// ABCFirstOrder is Mur's first-order absorbing boundary. It is exact for a
// normally incident wave when Sc/sqrt(eps*mu) == 1.
type ABCFirstOrder struct {
	side  Side
	coef  float64
	old   float64
	ready bool
}

func NewABCFirstOrder(side Side) *ABCFirstOrder { return &ABCFirstOrder{side: side} }

func (b *ABCFirstOrder) Side() Side { return b.side }

// Ready reports whether the coefficient has been computed.
func (b *ABCFirstOrder) Ready() bool { return b.ready }

// Coefficient returns (s-1)/(s+1) with s = Sc/sqrt(eps*mu).
func (b *ABCFirstOrder) Coefficient() float64 { return b.coef }

func (b *ABCFirstOrder) UpdateCoefficient(eps, mu, sc float64) {
	s := sc / math.Sqrt(eps*mu)
	b.coef = (s - 1) / (s + 1)
	b.ready = true
}

func (b *ABCFirstOrder) UpdateField(e, _ []float64) {
	n := len(e)
	if n < 2 {
		return
	}
	i0, i1 := at(b.side, n, 0), at(b.side, n, 1)
	e[i0] = b.old + b.coef*(e[i1]-e[i0])
	b.old = e[i1]
}

func (b *ABCFirstOrder) Reset() { b.old = 0 }

// ABCSecondOrder is a second-order absorbing boundary. It keeps the three
// nodes closest to the edge from the two previous steps.
type ABCSecondOrder struct {
	side       Side
	coef       [3]float64
	old1, old2 [3]float64
	ready      bool
}

func NewABCSecondOrder(side Side) *ABCSecondOrder { return &ABCSecondOrder{side: side} }

func (b *ABCSecondOrder) Side() Side               { return b.side }
func (b *ABCSecondOrder) Ready() bool              { return b.ready }
func (b *ABCSecondOrder) Coefficients() [3]float64 { return b.coef }

func (b *ABCSecondOrder) UpdateCoefficient(eps, mu, sc float64) {
	t1 := sc / math.Sqrt(eps*mu)
	t2 := 1/t1 + 2 + t1
	b.coef[0] = -(1/t1 - 2 + t1) / t2
	b.coef[1] = -2 * (t1 - 1/t1) / t2
	b.coef[2] = 4 * (t1 + 1/t1) / t2
	b.ready = true
}

func (b *ABCSecondOrder) UpdateField(e, _ []float64) {
	n := len(e)
	if n < 3 {
		return
	}
	i0, i1, i2 := at(b.side, n, 0), at(b.side, n, 1), at(b.side, n, 2)
	e[i0] = b.coef[0]*(e[i2]+b.old2[0]) +
		b.coef[1]*(b.old1[0]+b.old1[2]-e[i1]-b.old2[1]) +
		b.coef[2]*b.old1[1] - b.old2[2]

	for k, i := range [3]int{i0, i1, i2} {
		b.old2[k] = b.old1[k]
		b.old1[k] = e[i]
	}
}

func (b *ABCSecondOrder) Reset() {
	b.old1 = [3]float64{}
	b.old2 = [3]float64{}
}
