package export

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/san-kum/yeesim/internal/storage"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 5 * vg.Inch
)

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	p.X.Padding = vg.Points(8)
	p.Y.Padding = vg.Points(8)
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, min(len(x), len(y)))
	for i := range pts {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts
}

// ProbePlot draws E against time for every probe of a run.
func ProbePlot(meta *storage.RunMetadata, probes *storage.ProbeData) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: probe E(t)", meta.Name)
	p.X.Label.Text = "t (s)"
	p.Y.Label.Text = "E"
	stylePlot(p)

	for i, series := range probes.E {
		line, err := plotter.NewLine(xys(probes.Times, series))
		if err != nil {
			return nil, fmt.Errorf("probe %d: %w", i, err)
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = plotutil.Color(i)

		label := fmt.Sprintf("probe %d", i)
		if i < len(meta.Probes) {
			label = fmt.Sprintf("x = %g m", meta.Probes[i].Position)
		}
		p.Add(line)
		p.Legend.Add(label, line)
	}
	return p, nil
}

// FieldPlot draws the final E field along the grid with the layer borders
// as dashed vertical lines.
func FieldPlot(meta *storage.RunMetadata, x, e []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: E(x) at t = %.3g s", meta.Name, float64(meta.Steps)*meta.Dt)
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "E"
	stylePlot(p)

	line, err := plotter.NewLine(xys(x, e))
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = plotutil.Color(0)
	p.Add(line)

	lo, hi := span(e)
	for _, b := range meta.Borders {
		border, err := plotter.NewLine(plotter.XYs{{X: b, Y: lo}, {X: b, Y: hi}})
		if err != nil {
			return nil, err
		}
		border.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		border.LineStyle.Color = plotutil.Color(1)
		p.Add(border)
	}
	return p, nil
}

func span(v []float64) (lo, hi float64) {
	lo, hi = -1, 1
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi
}

// SavePlot writes p to path; the format (png, svg, pdf) follows the file
// extension.
func SavePlot(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("cannot save %s: %w", path, err)
	}
	return nil
}
