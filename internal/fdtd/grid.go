package fdtd

import "fmt"

// Grid holds the staggered field arrays and the material description.
//
// E, Eps and Sigma have one value per node; H and Mu have one value per
// cell, sitting half a cell to the right of the node with the same index.
// Sigma is the dimensionless loss factor used directly by the E update.
type Grid struct {
	E     []float64
	H     []float64
	Eps   []float64
	Mu    []float64
	Sigma []float64

	ceze []float64
	cezh []float64

	dx, dt, sc float64
}

func newGrid(n int, dx, sc float64) *Grid {
	g := &Grid{
		E:     make([]float64, n),
		H:     make([]float64, n-1),
		Eps:   make([]float64, n),
		Mu:    make([]float64, n-1),
		Sigma: make([]float64, n),
		ceze:  make([]float64, n),
		cezh:  make([]float64, n),
		dx:    dx,
		dt:    dx * sc / C,
		sc:    sc,
	}
	fill(g.Eps, 0, n, 1)
	fill(g.Mu, 0, n-1, 1)
	g.updateCoefficients()
	return g
}

func (g *Grid) Size() int           { return len(g.E) }
func (g *Grid) Dx() float64         { return g.dx }
func (g *Grid) Dt() float64         { return g.dt }
func (g *Grid) Sc() float64         { return g.sc }
func (g *Grid) Index(x float64) int { return floorDiv(x, g.dx) }

// FillMaterial overwrites eps and sigma over nodes [begin, end) and mu over
// the same range of cells. Ranges past the end of an array are clamped.
func (g *Grid) FillMaterial(begin, end int, eps, mu, sigma float64) error {
	if begin < 0 || end < begin {
		return fmt.Errorf("%w: [%d, %d)", ErrLayerBounds, begin, end)
	}
	g.fillMaterial(begin, end, eps, mu, sigma)
	return nil
}

func (g *Grid) fillMaterial(begin, end int, eps, mu, sigma float64) {
	fill(g.Eps, begin, end, eps)
	fill(g.Mu, begin, end, mu)
	fill(g.Sigma, begin, end, sigma)
}

// updateCoefficients recomputes the E update coefficients from eps and sigma.
func (g *Grid) updateCoefficients() {
	for i := range g.E {
		s := g.Sigma[i]
		g.ceze[i] = (1 - s) / (1 + s)
		g.cezh[i] = W0 / (g.Eps[i] * (1 + s))
	}
}

// edgeMaterial returns eps and mu next to the given edge.
func (g *Grid) edgeMaterial(side Side) (eps, mu float64) {
	mu = 1
	if side == Left {
		if len(g.Mu) > 0 {
			mu = g.Mu[0]
		}
		return g.Eps[0], mu
	}
	if len(g.Mu) > 0 {
		mu = g.Mu[len(g.Mu)-1]
	}
	return g.Eps[len(g.Eps)-1], mu
}

func (g *Grid) clearFields() {
	fill(g.E, 0, len(g.E), 0)
	fill(g.H, 0, len(g.H), 0)
}

func fill(arr []float64, begin, end int, v float64) {
	if end > len(arr) {
		end = len(arr)
	}
	for i := begin; i < end; i++ {
		arr[i] = v
	}
}
