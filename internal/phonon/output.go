package phonon

import (
	"fmt"
	"log"
	"reflect"

	"github.com/sbinet/npyio/npz"
	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/phonon.report/internal/chart"
	"github.com/banshee-data/phonon.report/internal/fsutil"
)

// PlotOptions controls Plot.
type PlotOptions struct {
	// YLimits clamps the frequency axis. Nil means fit to the data.
	YLimits *chart.Limits
	// OutputPath is the image to write. Empty means an interactive chart
	// opened in the browser.
	OutputPath string
}

// Chart builds the dispersion chart: one curve per mode against q_values,
// with a vertical grid line at every q tick.
func (d *Data) Chart(yLimits *chart.Limits) *chart.Dispersion {
	c := chart.New(d.QValues())
	for m := 0; m < d.NModes(); m++ {
		c.AddSeries(fmt.Sprintf("mode %d", m), mat.Col(nil, m, d.frequencies))
	}
	c.Ticks = d.QTicks()
	c.YLimits = yLimits
	return c
}

// Plot renders the dispersion chart as described by opts.
func (d *Data) Plot(opts PlotOptions) error {
	c := d.Chart(opts.YLimits)
	if opts.OutputPath == "" {
		_, err := c.Show()
		return err
	}
	if err := c.Save(opts.OutputPath); err != nil {
		return fmt.Errorf("plot dispersion: %w", err)
	}
	log.Printf("Dispersion plot saved to %s", opts.OutputPath)
	return nil
}

// Archive member names, as numpy.load exposes them without the suffix.
const (
	MemberFrequencies  = "frequencies.npy"
	MemberEigenvectors = "eigenvectors.npy"
	MemberQValues      = "q_values.npy"
	MemberQVector      = "q_vector.npy"
)

type member struct {
	name  string
	value interface{}
}

// members lists what SaveNumeric writes, in archive order. Matrices go to
// npyio as *mat.Dense so their (rows, cols) shape is kept.
func (d *Data) members() []member {
	return []member{
		{MemberFrequencies, d.Frequencies()},
		{MemberEigenvectors, eigenCube(d.eigenShape, d.eigenvectors)},
		{MemberQValues, d.QValues()},
		{MemberQVector, d.QVector()},
	}
}

// eigenCube copies the flat eigenvector tensor into a [n0][n1][n2]complex128
// array built at run time. npyio derives an N-d shape from nested arrays, and
// writes fixed-size arrays in one pass.
func eigenCube(shape [3]int, data []complex128) interface{} {
	elem := reflect.TypeOf(complex128(0))
	rt := reflect.ArrayOf(shape[0], reflect.ArrayOf(shape[1], reflect.ArrayOf(shape[2], elem)))
	cube := reflect.New(rt).Elem()
	i := 0
	for a := 0; a < shape[0]; a++ {
		plane := cube.Index(a)
		for b := 0; b < shape[1]; b++ {
			row := plane.Index(b)
			for c := 0; c < shape[2]; c++ {
				row.Index(c).SetComplex(data[i])
				i++
			}
		}
	}
	return cube.Addr().Interface()
}

// SaveNumeric writes the frequencies, eigenvectors, q_values and q_vector to
// path as a NumPy .npz archive.
func (d *Data) SaveNumeric(path string) error {
	return d.SaveNumericFS(fsutil.OSFileSystem{}, path)
}

// SaveNumericFS is SaveNumeric on fsys.
func (d *Data) SaveNumericFS(fsys fsutil.FileSystem, path string) (err error) {
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

	w := npz.NewWriter(out)
	for _, m := range d.members() {
		if err := w.Write(m.name, m.value); err != nil {
			return fmt.Errorf("save numeric data: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("save numeric data: %w", err)
	}
	return nil
}
