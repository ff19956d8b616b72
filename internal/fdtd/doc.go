// Package fdtd implements a one-dimensional Finite-Difference Time-Domain
// (Yee) solver for the reduced Maxwell equations (Ez, Hy).
//
// The package is organised around a few small types:
//
//   - [Grid]: the staggered E/H arrays and material arrays
//   - [Layer]: a region with overridden eps, mu and sigma
//   - [Source]: a one-way (total-field/scattered-field) excitation
//   - [Probe]: a fixed point recording (E, H) every step
//   - [Boundary]: edge conditions ([PEC], [ABCFirstOrder], [ABCSecondOrder])
//   - [Engine]: validates the configuration and advances time
//
// # Example
//
//	eng, err := fdtd.New(fdtd.Config{AreaSize: 1, SpaceStep: 0.01, TimeDuration: 1e-8, Sc: 1})
//	if err != nil {
//		return err
//	}
//	eng.AddSource(fdtd.NewSource(0.3, fdtd.Gaussian{Amplitude: 1, Delay: 1e-9, Width: 3e-10}))
//	eng.AddProbes(0.2, 0.7)
//	for eng.Step() {
//	}
//	if err := eng.Err(); err != nil {
//		return err
//	}
//
// # Update order
//
// Each call to [Engine.Step] runs: H update, source H-injection, interior E
// update, boundary E update, source E-injection, probe sampling, time
// advance.
//
// # Thread Safety
//
// An Engine is NOT safe for concurrent use. Observers run synchronously
// between steps and may read the arrays freely there.
package fdtd
