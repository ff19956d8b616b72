package fdtd

import (
	"context"
	"fmt"
	"math"
)

// Config holds the engine construction parameters. Lengths are in metres,
// times in seconds; Sc is the Courant number.
type Config struct {
	AreaSize     float64
	SpaceStep    float64
	TimeDuration float64
	Sc           float64
}

// Validate checks the parameters in a fixed order and returns the first
// violation wrapped in a *ConfigError.
func (c Config) Validate() error {
	if !(c.AreaSize > 0) {
		return &ConfigError{Field: "area_size", Value: c.AreaSize, Wrapped: ErrAreaSize}
	}
	if !(c.SpaceStep > 0) || c.SpaceStep > c.AreaSize {
		return &ConfigError{Field: "space_step", Value: c.SpaceStep, Wrapped: ErrSpaceStep}
	}
	if !(c.Sc > 0) {
		return &ConfigError{Field: "sc", Value: c.Sc, Wrapped: ErrScValue}
	}
	if !(c.TimeDuration > 0) {
		return &ConfigError{Field: "time_duration", Value: c.TimeDuration, Wrapped: ErrTimeDuration}
	}
	if dt := c.SpaceStep * c.Sc / C; dt > c.TimeDuration {
		return &ConfigError{Field: "dt", Value: dt, Wrapped: ErrTimeStep}
	}
	return nil
}

// Observer is notified after every completed step.
type Observer interface {
	OnStep(e *Engine)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(e *Engine)

func (f ObserverFunc) OnStep(e *Engine) { f(e) }

// Engine owns the grid together with its layers, sources, probes and edge
// conditions, and advances the fields one time step at a time.
type Engine struct {
	grid         *Grid
	areaSize     float64
	timeDuration float64
	timeCounts   int

	left, right Boundary

	layers  []*Layer
	sources []*Source
	probes  []*Probe

	step          int
	started       bool
	boundaryDirty bool
	err           error
}

// New validates cfg and allocates a vacuum grid with PEC edges.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := newGrid(floorDiv(cfg.AreaSize, cfg.SpaceStep), cfg.SpaceStep, cfg.Sc)
	return &Engine{
		grid:         g,
		areaSize:     cfg.AreaSize,
		timeDuration: cfg.TimeDuration,
		timeCounts:   floorDiv(cfg.TimeDuration, g.dt),
		left:         NewPEC(Left),
		right:        NewPEC(Right),
		layers:       make([]*Layer, 0),
		sources:      make([]*Source, 0),
		probes:       make([]*Probe, 0),
	}, nil
}

func (e *Engine) Grid() *Grid             { return e.grid }
func (e *Engine) Sc() float64             { return e.grid.sc }
func (e *Engine) Dt() float64             { return e.grid.dt }
func (e *Engine) Dx() float64             { return e.grid.dx }
func (e *Engine) E() []float64            { return e.grid.E }
func (e *Engine) H() []float64            { return e.grid.H }
func (e *Engine) Eps() []float64          { return e.grid.Eps }
func (e *Engine) Mu() []float64           { return e.grid.Mu }
func (e *Engine) Sigma() []float64        { return e.grid.Sigma }
func (e *Engine) Size() int               { return e.grid.Size() }
func (e *Engine) AreaSize() float64       { return e.areaSize }
func (e *Engine) TimeDuration() float64   { return e.timeDuration }
func (e *Engine) TimeCounts() int         { return e.timeCounts }
func (e *Engine) StepIndex() int          { return e.step }
func (e *Engine) CurrentTime() float64    { return float64(e.step) * e.grid.dt }
func (e *Engine) Layers() []*Layer        { return e.layers }
func (e *Engine) Sources() []*Source      { return e.sources }
func (e *Engine) Probes() []*Probe        { return e.probes }
func (e *Engine) LeftBoundary() Boundary  { return e.left }
func (e *Engine) RightBoundary() Boundary { return e.right }

// Err returns the error that stopped Step, if any.
func (e *Engine) Err() error { return e.err }

// Done reports whether all TimeCounts steps have run.
func (e *Engine) Done() bool { return e.step >= e.timeCounts }

// HasNext reports whether Step would advance the fields.
func (e *Engine) HasNext() bool { return e.err == nil && !e.Done() }

// Borders lists the start and end of every live layer, in insertion order.
func (e *Engine) Borders() []float64 {
	out := make([]float64, 0, 2*len(e.layers))
	for _, l := range e.layers {
		out = append(out, l.Start, l.End)
	}
	return out
}

// AddLayer names the layer "Layer<n>", n being the current layer count, and
// writes its material over the covered range. Later layers overwrite
// earlier ones where they overlap.
func (e *Engine) AddLayer(l *Layer) error {
	if l.Start < 0 || l.End < l.Start {
		return fmt.Errorf("%w: [%g, %g)", ErrLayerBounds, l.Start, l.End)
	}
	if !(l.Eps > 0) || !(l.Mu > 0) || l.Sigma < 0 {
		return fmt.Errorf("%w: eps=%g mu=%g sigma=%g", ErrMaterial, l.Eps, l.Mu, l.Sigma)
	}

	begin, end := e.grid.Index(l.Start), e.grid.Index(l.End)
	if err := e.grid.FillMaterial(begin, end, l.Eps, l.Mu, l.Sigma); err != nil {
		return err
	}
	l.Name = fmt.Sprintf("Layer%d", len(e.layers))
	e.layers = append(e.layers, l)
	return nil
}

// DeleteLayer restores vacuum over the first layer called name and removes
// it. It reports whether a layer was found. The layer's range was checked
// by AddLayer.
func (e *Engine) DeleteLayer(name string) bool {
	for i, l := range e.layers {
		if l.Name != name {
			continue
		}
		begin, end := e.grid.Index(l.Start), e.grid.Index(l.End)
		e.grid.fillMaterial(begin, end, 1, 1, 0)
		e.layers = append(e.layers[:i], e.layers[i+1:]...)
		return true
	}
	return false
}

// AddSource places s on the grid and snapshots the material at its node.
func (e *Engine) AddSource(s *Source) error {
	if s == nil || s.Waveform == nil {
		return ErrWaveform
	}
	idx := e.grid.Index(s.Position)
	if idx < 1 || idx > e.grid.Size()-2 {
		return fmt.Errorf("%w: source at %g (node %d)", ErrPosition, s.Position, idx)
	}
	s.Index = idx
	s.Eps = e.grid.Eps[idx]
	s.Mu = e.grid.Mu[idx]
	s.Sc = e.grid.sc
	s.Dt = e.grid.dt
	e.sources = append(e.sources, s)
	return nil
}

// AddProbes creates one probe per position. Nothing is added if any
// position falls outside the grid.
func (e *Engine) AddProbes(positions ...float64) error {
	idx := make([]int, len(positions))
	for i, x := range positions {
		idx[i] = e.grid.Index(x)
		if idx[i] < 0 || idx[i] >= len(e.grid.H) {
			return fmt.Errorf("%w: probe at %g (node %d)", ErrPosition, x, idx[i])
		}
	}
	for i, x := range positions {
		e.probes = append(e.probes, newProbe(x, idx[i], e.timeCounts))
	}
	return nil
}

// SetLeftBoundary and SetRightBoundary replace an edge condition. A change
// made after the run started is checked and primed before the next step.
func (e *Engine) SetLeftBoundary(b Boundary) {
	e.left = b
	e.boundaryDirty = true
}

func (e *Engine) SetRightBoundary(b Boundary) {
	e.right = b
	e.boundaryDirty = true
}

// UpdateBoundary checks both edges and hands them the material next to
// the edge and the Courant number.
func (e *Engine) UpdateBoundary() error {
	for _, edge := range []struct {
		side Side
		b    Boundary
	}{{Left, e.left}, {Right, e.right}} {
		if edge.b == nil || edge.b.Side() != edge.side {
			return fmt.Errorf("%w: %s edge has %T", ErrBoundaryType, edge.side, edge.b)
		}
		eps, mu := e.grid.edgeMaterial(edge.side)
		edge.b.UpdateCoefficient(eps, mu, e.grid.sc)
	}
	return nil
}

// Start prepares a run: edge coefficients, E update coefficients, time
// and probe series are reset. Fields are left as they are.
func (e *Engine) Start() error {
	if err := e.UpdateBoundary(); err != nil {
		e.err = err
		return err
	}
	e.grid.updateCoefficients()
	for _, p := range e.probes {
		p.rewind()
	}
	e.step = 0
	e.started = true
	e.boundaryDirty = false
	e.err = nil
	return nil
}

// Reset zeroes the fields and the edge history and rewinds to t = 0. The
// next Step starts a fresh run.
func (e *Engine) Reset() {
	e.grid.clearFields()
	if e.left != nil {
		e.left.Reset()
	}
	if e.right != nil {
		e.right.Reset()
	}
	for _, p := range e.probes {
		p.rewind()
	}
	e.step = 0
	e.started = false
	e.err = nil
}

// Step advances the fields by one dt. The run is started on the first call.
// Step returns false, doing nothing, once TimeCounts steps have run or when
// the run could not start or an edge set mid-run is invalid (see Err).
func (e *Engine) Step() bool {
	if !e.started {
		if err := e.Start(); err != nil {
			return false
		}
	}
	if e.boundaryDirty {
		if err := e.UpdateBoundary(); err != nil {
			e.err = err
			return false
		}
		e.boundaryDirty = false
		e.err = nil
	}
	if e.Done() {
		return false
	}

	g := e.grid
	sc := g.sc
	q := float64(e.step)

	for i := range g.H {
		g.H[i] += (g.E[i+1] - g.E[i]) * sc / (W0 * g.Mu[i])
	}
	for _, s := range e.sources {
		i := s.Index - 1
		g.H[i] -= sc / (W0 * g.Mu[i]) * s.E(0, q)
	}

	for i := 1; i < len(g.E)-1; i++ {
		g.E[i] = g.ceze[i]*g.E[i] + (g.H[i]-g.H[i-1])*sc*g.cezh[i]
	}
	e.left.UpdateField(g.E, g.H)
	e.right.UpdateField(g.E, g.H)

	for _, s := range e.sources {
		i := s.Index
		g.E[i] += sc / math.Sqrt(g.Eps[i]*g.Mu[i]) * s.E(-0.5, q+0.5)
	}

	for _, p := range e.probes {
		p.record(g.E, g.H)
	}

	e.step++
	return true
}

// Run steps until the run completes or ctx is cancelled, notifying the
// observers after every step.
func (e *Engine) Run(ctx context.Context, observers ...Observer) error {
	if !e.started {
		if err := e.Start(); err != nil {
			return err
		}
	}

	for e.HasNext() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !e.Step() {
			break
		}
		for _, o := range observers {
			o.OnStep(e)
		}
	}
	return e.err
}
