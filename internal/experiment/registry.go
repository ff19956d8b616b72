package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/yeesim/internal/config"
	"github.com/san-kum/yeesim/internal/fdtd"
	"github.com/san-kum/yeesim/internal/metrics"
)

type Registry struct {
	boundaries map[string]func(fdtd.Side) fdtd.Boundary
	waveforms  map[string]func(config.WaveformConfig) fdtd.Waveform
}

func NewRegistry() *Registry {
	r := &Registry{
		boundaries: make(map[string]func(fdtd.Side) fdtd.Boundary),
		waveforms:  make(map[string]func(config.WaveformConfig) fdtd.Waveform),
	}

	r.boundaries[config.BoundaryPEC] = func(s fdtd.Side) fdtd.Boundary { return fdtd.NewPEC(s) }
	r.boundaries[config.BoundaryABC1] = func(s fdtd.Side) fdtd.Boundary { return fdtd.NewABCFirstOrder(s) }
	r.boundaries[config.BoundaryABC2] = func(s fdtd.Side) fdtd.Boundary { return fdtd.NewABCSecondOrder(s) }

	r.waveforms[config.WaveformGaussian] = func(w config.WaveformConfig) fdtd.Waveform {
		return fdtd.Gaussian{Amplitude: w.Amplitude, Delay: w.Delay, Width: w.Width}
	}
	r.waveforms[config.WaveformHarmonic] = func(w config.WaveformConfig) fdtd.Waveform {
		return fdtd.Harmonic{Amplitude: w.Amplitude, Frequency: w.Frequency, Phase: w.Phase}
	}
	r.waveforms[config.WaveformRicker] = func(w config.WaveformConfig) fdtd.Waveform {
		return fdtd.Ricker{Amplitude: w.Amplitude, PeakFrequency: w.Frequency, Delay: w.Delay}
	}
	r.waveforms[config.WaveformModulated] = func(w config.WaveformConfig) fdtd.Waveform {
		return fdtd.ModulatedGaussian{Amplitude: w.Amplitude, Delay: w.Delay, Width: w.Width, Frequency: w.Frequency}
	}

	return r
}

func (r *Registry) GetBoundary(name string, side fdtd.Side) (fdtd.Boundary, error) {
	fn, ok := r.boundaries[name]
	if !ok {
		return nil, fmt.Errorf("unknown boundary: %s", name)
	}
	return fn(side), nil
}

func (r *Registry) GetWaveform(w config.WaveformConfig) (fdtd.Waveform, error) {
	fn, ok := r.waveforms[w.Type]
	if !ok {
		return nil, fmt.Errorf("unknown waveform: %s", w.Type)
	}
	return fn(w), nil
}

func (r *Registry) ListBoundaries() []string { return sortedKeys(r.boundaries) }
func (r *Registry) ListWaveforms() []string  { return sortedKeys(r.waveforms) }

func (r *Registry) DefaultMetrics() []metrics.Metric {
	return []metrics.Metric{
		metrics.NewPeakEnergy(),
		metrics.NewResidualEnergy(),
		metrics.NewPeakField(),
		metrics.NewStability(1e3),
	}
}

// Build creates an engine from cfg: edges, then layers, then sources (so
// they snapshot the layered material), then probes.
func (r *Registry) Build(cfg *config.Config) (*fdtd.Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	eng, err := fdtd.New(fdtd.Config{
		AreaSize:     cfg.Grid.AreaSize,
		SpaceStep:    cfg.Grid.SpaceStep,
		TimeDuration: cfg.Grid.TimeDuration,
		Sc:           cfg.Grid.Sc,
	})
	if err != nil {
		return nil, err
	}

	left, err := r.GetBoundary(cfg.Boundaries.Left, fdtd.Left)
	if err != nil {
		return nil, err
	}
	right, err := r.GetBoundary(cfg.Boundaries.Right, fdtd.Right)
	if err != nil {
		return nil, err
	}
	eng.SetLeftBoundary(left)
	eng.SetRightBoundary(right)

	for i, l := range cfg.Layers {
		if err := eng.AddLayer(fdtd.NewLayer(l.Start, l.End, l.Eps, l.Mu, l.Sigma)); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
	}
	for i, s := range cfg.Sources {
		w, err := r.GetWaveform(s.Waveform)
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		if err := eng.AddSource(fdtd.NewSource(s.Position, w)); err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
	}
	if len(cfg.Probes) > 0 {
		if err := eng.AddProbes(cfg.Probes...); err != nil {
			return nil, err
		}
	}
	return eng, nil
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
