package metrics

import "github.com/san-kum/yeesim/internal/fdtd"

// Metric is an observer that reduces a run to a single number.
type Metric interface {
	fdtd.Observer
	Name() string
	Value() float64
	Reset()
}

// Collect returns name -> value for every metric.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// Observers converts metrics for fdtd.Engine.Run.
func Observers(ms []Metric) []fdtd.Observer {
	out := make([]fdtd.Observer, len(ms))
	for i, m := range ms {
		out[i] = m
	}
	return out
}
