package fdtd

import (
	"errors"
	"fmt"
)

// Configuration errors. New checks them in the order listed.
var (
	// ErrAreaSize indicates a non-positive area size.
	ErrAreaSize = errors.New("fdtd: area size must be positive")

	// ErrSpaceStep indicates a space step that is non-positive or larger than the area.
	ErrSpaceStep = errors.New("fdtd: space step must be positive and not exceed area size")

	// ErrScValue indicates a non-positive Courant number.
	ErrScValue = errors.New("fdtd: courant number must be positive")

	// ErrTimeDuration indicates a non-positive simulated time.
	ErrTimeDuration = errors.New("fdtd: time duration must be positive")

	// ErrTimeStep indicates dt = dx*Sc/c is longer than the simulated time.
	ErrTimeStep = errors.New("fdtd: time step exceeds time duration")

	// ErrBoundaryType indicates an edge without a boundary, or one bound to the other edge.
	ErrBoundaryType = errors.New("fdtd: invalid boundary for edge")

	ErrLayerBounds = errors.New("fdtd: invalid layer bounds")
	ErrMaterial    = errors.New("fdtd: invalid layer material")
	ErrPosition    = errors.New("fdtd: position outside grid")
	ErrWaveform    = errors.New("fdtd: source without waveform")
)

// ConfigError wraps a configuration error with the offending parameter.
type ConfigError struct {
	Field   string
	Value   float64
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v (%s=%g)", e.Wrapped, e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}
