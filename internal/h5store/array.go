// Package h5store reads named multidimensional arrays out of hierarchical
// containers. HDF5 files are served by File; Memory holds the same shape of
// data in memory for tooling and tests.
package h5store

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Array is a fully read dataset. Data is row-major (C order) and always
// widened to float64, whatever the on-disk element type was.
type Array struct {
	Name  string
	Shape []int
	DType string
	Data  []float64
}

// Rank returns the number of dimensions. Scalars have rank 0.
func (a *Array) Rank() int {
	return len(a.Shape)
}

// Size returns the number of elements.
func (a *Array) Size() int {
	return len(a.Data)
}

// Dim returns the extent of dimension i, or 0 when the array has fewer dims.
func (a *Array) Dim(i int) int {
	if i < 0 || i >= len(a.Shape) {
		return 0
	}
	return a.Shape[i]
}

// MinMax returns the smallest and largest element. ok is false for an empty array.
func (a *Array) MinMax() (lo, hi float64, ok bool) {
	if len(a.Data) == 0 {
		return 0, 0, false
	}
	return floats.Min(a.Data), floats.Max(a.Data), true
}

// Clone returns a deep copy.
func (a *Array) Clone() *Array {
	return &Array{
		Name:  a.Name,
		Shape: append([]int(nil), a.Shape...),
		DType: a.DType,
		Data:  append([]float64(nil), a.Data...),
	}
}

// ShapeString formats the shape the way NumPy prints tuples: "()", "(5,)", "(3, 6)".
func (a *Array) ShapeString() string {
	return FormatShape(a.Shape)
}

// FormatShape formats a shape as a NumPy style tuple.
func FormatShape(shape []int) string {
	switch len(shape) {
	case 0:
		return "()"
	case 1:
		return "(" + strconv.Itoa(shape[0]) + ",)"
	}
	parts := make([]string, len(shape))
	for i, d := range shape {
		parts[i] = strconv.Itoa(d)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// NumElements returns the product of the dimensions, 1 for a scalar shape.
func NumElements(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

func (a *Array) String() string {
	return fmt.Sprintf("%s %s %s", a.Name, a.ShapeString(), a.DType)
}
