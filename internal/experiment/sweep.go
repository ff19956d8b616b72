package experiment

import (
	"context"
	"fmt"
	"runtime"

	"github.com/san-kum/yeesim/internal/config"
	"golang.org/x/sync/errgroup"
)

// Sweep runs one independent copy of base per Courant number in parallel.
// Results come back in the order of scs; the first failure cancels the rest.
func Sweep(ctx context.Context, base *config.Config, scs []float64) ([]*Result, error) {
	results := make([]*Result, len(scs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, sc := range scs {
		g.Go(func() error {
			cfg := base.Clone()
			cfg.Grid.Sc = sc
			cfg.Name = fmt.Sprintf("%s_sc%g", base.Name, sc)

			reg := NewRegistry()
			x := New(cfg)
			if err := x.Setup(reg, reg.DefaultMetrics()); err != nil {
				return fmt.Errorf("sc=%g: %w", sc, err)
			}
			res, err := x.Run(ctx)
			if err != nil {
				return fmt.Errorf("sc=%g: %w", sc, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
