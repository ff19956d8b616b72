package experiment

import (
	"context"
	"fmt"
	"slices"

	"github.com/san-kum/yeesim/internal/config"
	"github.com/san-kum/yeesim/internal/fdtd"
	"github.com/san-kum/yeesim/internal/metrics"
)

// ProbeSeries is a finished probe recording.
type ProbeSeries struct {
	Position float64
	Index    int
	E        []float64
	H        []float64
}

// Result is everything a run leaves behind for storage and display.
type Result struct {
	Config     *config.Config
	Size       int
	Dx         float64
	Dt         float64
	TimeCounts int
	Steps      int
	Borders    []float64
	Probes     []ProbeSeries
	FinalE     []float64
	FinalH     []float64
	Metrics    map[string]float64
}

// Times returns the sample times of the probe series.
func (r *Result) Times() []float64 {
	t := make([]float64, r.Steps)
	for i := range t {
		t[i] = float64(i) * r.Dt
	}
	return t
}

type Experiment struct {
	cfg     *config.Config
	engine  *fdtd.Engine
	metrics []metrics.Metric
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (x *Experiment) Setup(reg *Registry, ms []metrics.Metric) error {
	eng, err := reg.Build(x.cfg)
	if err != nil {
		return err
	}
	x.engine = eng
	x.metrics = ms
	return nil
}

// Engine returns the underlying engine for external driver loops.
func (x *Experiment) Engine() *fdtd.Engine {
	return x.engine
}

// Observers returns the metric observers, reset, for driver loops that step
// the engine themselves.
func (x *Experiment) Observers() []fdtd.Observer {
	for _, m := range x.metrics {
		m.Reset()
	}
	return metrics.Observers(x.metrics)
}

func (x *Experiment) Run(ctx context.Context, observers ...fdtd.Observer) (*Result, error) {
	if x.engine == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	for _, m := range x.metrics {
		m.Reset()
	}
	all := append(metrics.Observers(x.metrics), observers...)
	if err := x.engine.Run(ctx, all...); err != nil {
		return nil, err
	}
	return x.Result(), nil
}

// Result snapshots the engine state; it can be called between steps.
func (x *Experiment) Result() *Result {
	eng := x.engine
	res := &Result{
		Config:     x.cfg,
		Size:       eng.Size(),
		Dx:         eng.Dx(),
		Dt:         eng.Dt(),
		TimeCounts: eng.TimeCounts(),
		Steps:      eng.StepIndex(),
		Borders:    eng.Borders(),
		FinalE:     slices.Clone(eng.E()),
		FinalH:     slices.Clone(eng.H()),
		Metrics:    metrics.Collect(x.metrics),
	}
	for _, p := range eng.Probes() {
		res.Probes = append(res.Probes, ProbeSeries{
			Position: p.Position,
			Index:    p.Index,
			E:        p.EField(),
			H:        p.HField(),
		})
	}
	return res
}
