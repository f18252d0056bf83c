// Package chart renders dispersion curves: static images through gonum/plot
// and interactive HTML pages through go-echarts.
package chart

import (
	"fmt"
	"math"
)

// Limits is a closed interval on an axis.
type Limits struct {
	Min float64
	Max float64
}

// Validate checks that the interval is finite and not inverted.
func (l Limits) Validate() error {
	if math.IsNaN(l.Min) || math.IsNaN(l.Max) || math.IsInf(l.Min, 0) || math.IsInf(l.Max, 0) {
		return fmt.Errorf("limits must be finite, got [%g, %g]", l.Min, l.Max)
	}
	if l.Min >= l.Max {
		return fmt.Errorf("lower limit %g must be less than upper limit %g", l.Min, l.Max)
	}
	return nil
}

// Series is one curve sampled at the chart's X values.
type Series struct {
	Name string
	Y    []float64
}

// Dispersion is a set of curves that share one X axis, such as the
// frequency of every phonon mode along a q-point path.
type Dispersion struct {
	Title  string
	XLabel string
	YLabel string

	X      []float64
	Series []Series

	// Ticks marks special X positions (high-symmetry points); each gets a
	// vertical grid line.
	Ticks []float64

	// YLimits clamps the vertical axis when set.
	YLimits *Limits
}

// Default labels for dispersion charts.
const (
	DefaultTitle  = "Phonon Dispersion Relations"
	DefaultXLabel = "Wave Vector"
	DefaultYLabel = "Frequency (units)"
)

// New returns a chart with the default labels and no curves.
func New(x []float64) *Dispersion {
	return &Dispersion{
		Title:  DefaultTitle,
		XLabel: DefaultXLabel,
		YLabel: DefaultYLabel,
		X:      x,
	}
}

// AddSeries appends a curve.
func (d *Dispersion) AddSeries(name string, y []float64) {
	d.Series = append(d.Series, Series{Name: name, Y: y})
}

// Validate checks that every curve has one value per X position.
func (d *Dispersion) Validate() error {
	for _, s := range d.Series {
		if len(s.Y) != len(d.X) {
			return fmt.Errorf("series %q has %d values, want %d", s.Name, len(s.Y), len(d.X))
		}
	}
	if d.YLimits != nil {
		if err := d.YLimits.Validate(); err != nil {
			return fmt.Errorf("y limits: %w", err)
		}
	}
	return nil
}
