package chart

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/phonon.report/internal/fsutil"
)

// Static image size.
const (
	FigureWidth  = 10 * vg.Inch
	FigureHeight = 6 * vg.Inch
)

// curveColor is a half transparent blue shared by every curve.
var curveColor = color.NRGBA{R: 0, G: 0, B: 255, A: 128}

var tickGridColor = color.Gray{Y: 160}

func (d *Dispersion) buildPlot() (*plot.Plot, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = d.Title
	p.X.Label.Text = d.XLabel
	p.Y.Label.Text = d.YLabel

	for _, s := range d.Series {
		pts := make(plotter.XYs, len(d.X))
		for i, x := range d.X {
			pts[i] = plotter.XY{X: x, Y: s.Y[i]}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Name, err)
		}
		line.Color = curveColor
		line.Width = vg.Points(1)
		p.Add(line)
	}

	if len(d.Ticks) > 0 {
		ticks := make([]plot.Tick, len(d.Ticks))
		for i, v := range d.Ticks {
			ticks[i] = plot.Tick{Value: v, Label: fmt.Sprintf("%.3g", v)}
		}
		p.X.Tick.Marker = plot.ConstantTicks(ticks)

		grid := plotter.NewGrid()
		grid.Vertical.Color = tickGridColor
		grid.Horizontal.Color = nil
		p.Add(grid)
	}

	// Limits go last: Add widens the axes to fit the data.
	if d.YLimits != nil {
		p.Y.Min = d.YLimits.Min
		p.Y.Max = d.YLimits.Max
	}
	return p, nil
}

// Save renders the chart to path. The image format follows the file
// extension (png, jpg, svg, pdf, eps, tif).
func (d *Dispersion) Save(path string) error {
	return d.SaveFS(fsutil.OSFileSystem{}, path)
}

// SaveFS renders the chart to path on fsys.
func (d *Dispersion) SaveFS(fsys fsutil.FileSystem, path string) (err error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if format == "" {
		return fmt.Errorf("cannot infer image format from %q", path)
	}

	p, err := d.buildPlot()
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(FigureWidth, FigureHeight, format)
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}

	if err := fsutil.EnsureParentDir(fsys, path); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	out, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if _, err := wt.WriteTo(out); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
