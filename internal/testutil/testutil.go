// Package testutil provides shared test utilities and fixtures.
//
// This package centralises the phonon dispersion fixtures used across test
// files: deterministic arrays in the layout the strict loader expects, an
// in-memory container holding them, and real HDF5 files written with the
// scigolib writer.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/scigolib/hdf5"

	"github.com/banshee-data/phonon.report/internal/h5store"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// FixtureArray is one named dataset of a fixture file.
type FixtureArray struct {
	Name  string
	Shape []int
	Data  []float64
}

// Dispersion describes a synthetic dispersion file with NQ q-points and
// NModes modes. NModes should be a multiple of 3.
type Dispersion struct {
	NQ     int
	NModes int
}

// SmallDispersion is the fixture most tests use: 4 q-points, 2 atoms.
var SmallDispersion = Dispersion{NQ: 4, NModes: 6}

// Frequency is the value stored at frequencies[q, m].
func (d Dispersion) Frequency(q, m int) float64 {
	return float64(m+1) * (1 + 0.25*float64(q))
}

// EigenRe is the value stored at eigenvectors_re[q, m, n].
func (d Dispersion) EigenRe(q, m, n int) float64 {
	return float64(q) + 0.1*float64(m) + 0.01*float64(n)
}

// EigenIm is the value stored at eigenvectors_im[q, m, n].
func (d Dispersion) EigenIm(q, m, n int) float64 {
	return -0.5*float64(q) + 0.03*float64(m) - 0.007*float64(n)
}

// Arrays returns every dataset of the strict schema in a fixed order.
func (d Dispersion) Arrays() []FixtureArray {
	nq, nm, na := d.NQ, d.NModes, d.NModes/3

	freq := make([]float64, 0, nq*nm)
	for q := 0; q < nq; q++ {
		for m := 0; m < nm; m++ {
			freq = append(freq, d.Frequency(q, m))
		}
	}

	qValues := make([]float64, nq)
	qVector := make([]float64, 0, nq*3)
	for q := 0; q < nq; q++ {
		x := 0.0
		if nq > 1 {
			x = float64(q) / float64(nq-1)
		}
		qValues[q] = x
		qVector = append(qVector, 0.5*x, 0.25*x, 0)
	}

	re := make([]float64, 0, nq*nm*nm)
	im := make([]float64, 0, nq*nm*nm)
	for q := 0; q < nq; q++ {
		for m := 0; m < nm; m++ {
			for n := 0; n < nm; n++ {
				re = append(re, d.EigenRe(q, m, n))
				im = append(im, d.EigenIm(q, m, n))
			}
		}
	}

	gv := make([]float64, 0, nq*nm*3)
	for q := 0; q < nq; q++ {
		for m := 0; m < nm; m++ {
			gv = append(gv, float64(q), float64(m), float64(q*m))
		}
	}

	site := make([]float64, 0, nq*nm*na)
	for q := 0; q < nq; q++ {
		for m := 0; m < nm; m++ {
			for a := 0; a < na; a++ {
				site = append(site, 1/float64(na))
			}
		}
	}

	return []FixtureArray{
		{Name: "frequencies", Shape: []int{nq, nm}, Data: freq},
		{Name: "q_values", Shape: []int{nq}, Data: qValues},
		{Name: "q_vector", Shape: []int{nq, 3}, Data: qVector},
		{Name: "q_ticks", Shape: []int{2}, Data: []float64{0, 1}},
		{Name: "eigenvectors_re", Shape: []int{nq, nm, nm}, Data: re},
		{Name: "eigenvectors_im", Shape: []int{nq, nm, nm}, Data: im},
		{Name: "group_velocities", Shape: []int{nq, nm, 3}, Data: gv},
		{Name: "site_projection_per_mode", Shape: []int{nq, nm, na}, Data: site},
	}
}

// Memory returns the fixture as an in-memory container, skipping any names in omit.
func (d Dispersion) Memory(omit ...string) *h5store.Memory {
	skip := make(map[string]bool, len(omit))
	for _, name := range omit {
		skip[name] = true
	}
	m := h5store.NewMemory()
	for _, a := range d.Arrays() {
		if !skip[a.Name] {
			m.AddArray(a.Name, a.Shape, a.Data)
		}
	}
	return m
}

// WriteHDF5 writes the fixture to dir and returns the file path.
func (d Dispersion) WriteHDF5(t *testing.T, dir string) string {
	t.Helper()
	filename := filepath.Join(dir, "outfile.dispersion_relations.hdf5")
	WriteHDF5(t, filename, d.Arrays()...)
	return filename
}

// WriteHDF5 writes root-level float64 datasets to filename. With no arrays
// the result is a valid file holding only the root group.
func WriteHDF5(t *testing.T, filename string, arrays ...FixtureArray) {
	t.Helper()

	fw, err := hdf5.CreateForWrite(filename, hdf5.CreateTruncate)
	if err != nil {
		t.Fatalf("create %s: %v", filename, err)
	}

	for _, a := range arrays {
		dims := make([]uint64, len(a.Shape))
		for i, d := range a.Shape {
			dims[i] = uint64(d)
		}
		ds, err := fw.CreateDataset("/"+a.Name, hdf5.Float64, dims)
		if err != nil {
			_ = fw.Close()
			t.Fatalf("create dataset %s: %v", a.Name, err)
		}
		if err := ds.Write(a.Data); err != nil {
			_ = fw.Close()
			t.Fatalf("write dataset %s: %v", a.Name, err)
		}
	}

	if err := fw.Close(); err != nil {
		t.Fatalf("close %s: %v", filename, err)
	}
}
