package config

import "sort"

// pulse settings for dx = 1 cm at Sc = 1 (dt ~ 33.4 ps): delay ~30 steps, width ~10 steps.
const (
	pulseDelay = 1.0e-9
	pulseWidth = 3.3e-10
)

var Presets = map[string]*Config{
	"vacuum": {
		Name:       "vacuum",
		Grid:       GridConfig{AreaSize: 1.0, SpaceStep: 0.01, TimeDuration: 1e-8, Sc: 1.0},
		Boundaries: BoundaryConfig{Left: BoundaryPEC, Right: BoundaryPEC},
		Sources: []SourceConfig{
			{Position: 0.3, Waveform: WaveformConfig{Type: WaveformGaussian, Amplitude: 1, Delay: pulseDelay, Width: pulseWidth}},
		},
		Probes: []float64{0.2, 0.7},
	},
	"slab": {
		Name:       "slab",
		Grid:       GridConfig{AreaSize: 2.0, SpaceStep: 0.01, TimeDuration: 2e-8, Sc: 1.0},
		Boundaries: BoundaryConfig{Left: BoundaryABC1, Right: BoundaryABC1},
		Layers:     []LayerConfig{{Start: 1.2, End: 1.6, Eps: 4, Mu: 1, Sigma: 0}},
		Sources: []SourceConfig{
			{Position: 0.5, Waveform: WaveformConfig{Type: WaveformGaussian, Amplitude: 1, Delay: pulseDelay, Width: pulseWidth}},
		},
		Probes: []float64{0.4, 1.8},
	},
	"lossy": {
		Name:       "lossy",
		Grid:       GridConfig{AreaSize: 2.0, SpaceStep: 0.01, TimeDuration: 2e-8, Sc: 1.0},
		Boundaries: BoundaryConfig{Left: BoundaryABC1, Right: BoundaryABC1},
		Layers:     []LayerConfig{{Start: 1.0, End: 1.5, Eps: 2, Mu: 1, Sigma: 0.02}},
		Sources: []SourceConfig{
			{Position: 0.5, Waveform: WaveformConfig{Type: WaveformGaussian, Amplitude: 1, Delay: pulseDelay, Width: pulseWidth}},
		},
		Probes: []float64{0.8, 1.7},
	},
	"absorbing": {
		Name:       "absorbing",
		Grid:       GridConfig{AreaSize: 1.0, SpaceStep: 0.005, TimeDuration: 1e-8, Sc: 0.5},
		Boundaries: BoundaryConfig{Left: BoundaryABC2, Right: BoundaryABC2},
		Sources: []SourceConfig{
			{Position: 0.3, Waveform: WaveformConfig{Type: WaveformRicker, Amplitude: 1, Frequency: 1e9, Delay: 1.5e-9}},
		},
		Probes: []float64{0.1, 0.9},
	},
	"harmonic": {
		Name:       "harmonic",
		Grid:       GridConfig{AreaSize: 3.0, SpaceStep: 0.01, TimeDuration: 3e-8, Sc: 1.0},
		Boundaries: BoundaryConfig{Left: BoundaryABC1, Right: BoundaryABC1},
		Layers:     []LayerConfig{{Start: 2.0, End: 2.5, Eps: 2.25, Mu: 1, Sigma: 0}},
		Sources: []SourceConfig{
			{Position: 0.5, Waveform: WaveformConfig{Type: WaveformHarmonic, Amplitude: 1, Frequency: 1e9}},
		},
		Probes: []float64{1.0, 2.8},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
