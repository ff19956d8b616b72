package config

import (
	"fmt"
	"os"

	"github.com/san-kum/yeesim/internal/fdtd"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAreaSize     = 1.0
	DefaultSpaceStep    = 0.01
	DefaultTimeDuration = 1e-8
	DefaultSc           = 1.0
	DefaultBoundary     = BoundaryPEC
)

// Boundary names.
const (
	BoundaryPEC  = "pec"
	BoundaryABC1 = "abc1"
	BoundaryABC2 = "abc2"
)

// Waveform names.
const (
	WaveformGaussian  = "gaussian"
	WaveformHarmonic  = "harmonic"
	WaveformRicker    = "ricker"
	WaveformModulated = "modulated"
)

type Config struct {
	Name       string         `yaml:"name"`
	Grid       GridConfig     `yaml:"grid"`
	Boundaries BoundaryConfig `yaml:"boundaries"`
	Layers     []LayerConfig  `yaml:"layers,omitempty"`
	Sources    []SourceConfig `yaml:"sources,omitempty"`
	Probes     []float64      `yaml:"probes,omitempty"`
}

type GridConfig struct {
	AreaSize     float64 `yaml:"area_size"`
	SpaceStep    float64 `yaml:"space_step"`
	TimeDuration float64 `yaml:"time_duration"`
	Sc           float64 `yaml:"sc"`
}

type BoundaryConfig struct {
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
}

type LayerConfig struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
	Eps   float64 `yaml:"eps"`
	Mu    float64 `yaml:"mu"`
	Sigma float64 `yaml:"sigma"`
}

type SourceConfig struct {
	Position float64        `yaml:"position"`
	Waveform WaveformConfig `yaml:"waveform"`
}

// WaveformConfig describes a source signal. Times are in seconds,
// frequencies in hertz; unused fields are ignored by the chosen type.
type WaveformConfig struct {
	Type      string  `yaml:"type"`
	Amplitude float64 `yaml:"amplitude"`
	Delay     float64 `yaml:"delay,omitempty"`
	Width     float64 `yaml:"width,omitempty"`
	Frequency float64 `yaml:"frequency,omitempty"`
	Phase     float64 `yaml:"phase,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Name: "vacuum",
		Grid: GridConfig{
			AreaSize:     DefaultAreaSize,
			SpaceStep:    DefaultSpaceStep,
			TimeDuration: DefaultTimeDuration,
			Sc:           DefaultSc,
		},
		Boundaries: BoundaryConfig{
			Left:  DefaultBoundary,
			Right: DefaultBoundary,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks names the engine cannot check for itself. Grid values are
// validated by fdtd.New.
func (c *Config) Validate() error {
	for _, b := range []string{c.Boundaries.Left, c.Boundaries.Right} {
		switch b {
		case BoundaryPEC, BoundaryABC1, BoundaryABC2:
		default:
			return fmt.Errorf("unknown boundary: %q", b)
		}
	}
	for i, s := range c.Sources {
		switch s.Waveform.Type {
		case WaveformGaussian, WaveformModulated:
			if s.Waveform.Width <= 0 {
				return fmt.Errorf("source %d: %s waveform needs a positive width", i, s.Waveform.Type)
			}
		case WaveformHarmonic, WaveformRicker:
			if s.Waveform.Frequency <= 0 {
				return fmt.Errorf("source %d: %s waveform needs a positive frequency", i, s.Waveform.Type)
			}
		default:
			return fmt.Errorf("source %d: unknown waveform: %q", i, s.Waveform.Type)
		}
	}
	return nil
}

// Clone returns a deep copy, so presets can be modified safely.
func (c *Config) Clone() *Config {
	out := *c
	out.Layers = append([]LayerConfig(nil), c.Layers...)
	out.Sources = append([]SourceConfig(nil), c.Sources...)
	out.Probes = append([]float64(nil), c.Probes...)
	return &out
}

// Dt returns the time step implied by the grid settings.
func (c *Config) Dt() float64 {
	return c.Grid.SpaceStep * c.Grid.Sc / fdtd.C
}
