package h5store_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/phonon.report/internal/h5store"
	"github.com/banshee-data/phonon.report/internal/testutil"
)

func TestFile_ReadWrittenDatasets(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "arrays.h5")
	testutil.WriteHDF5(t, filename,
		testutil.FixtureArray{Name: "frequencies", Shape: []int{2, 3}, Data: []float64{0.5, 1, 1.5, 2, 2.5, 3}},
		testutil.FixtureArray{Name: "q_values", Shape: []int{2}, Data: []float64{0, 1}},
	)

	f, err := h5store.Open(filename)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"frequencies", "q_values"}, f.Keys())

	freq, err := f.Read("frequencies")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, freq.Shape)
	assert.Equal(t, "float64", freq.DType)
	assert.Equal(t, []float64{0.5, 1, 1.5, 2, 2.5, 3}, freq.Data)

	_, err = f.Read("eigenvectors")
	assert.ErrorIs(t, err, h5store.ErrNotFound)

	var nodes []h5store.Node
	require.NoError(t, f.Walk(func(n h5store.Node) error {
		nodes = append(nodes, n)
		return nil
	}))
	require.Len(t, nodes, 2)
	for _, n := range nodes {
		assert.Equal(t, h5store.KindArray, n.Kind)
		assert.Equal(t, "float64", n.DType)
	}
}

func TestFile_WalkStopsOnError(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "arrays.h5")
	testutil.WriteHDF5(t, filename,
		testutil.FixtureArray{Name: "a", Shape: []int{1}, Data: []float64{1}},
		testutil.FixtureArray{Name: "b", Shape: []int{1}, Data: []float64{2}},
	)

	f, err := h5store.Open(filename)
	require.NoError(t, err)
	defer f.Close()

	stop := errors.New("stop")
	visited := 0
	err = f.Walk(func(h5store.Node) error {
		visited++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, visited)
}

func TestFile_Empty(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "empty.h5")
	testutil.WriteHDF5(t, filename)

	f, err := h5store.Open(filename)
	require.NoError(t, err)
	defer f.Close()

	assert.Empty(t, f.Keys())
}

func TestOpen_Missing(t *testing.T) {
	_, err := h5store.Open(filepath.Join(t.TempDir(), "nope.h5"))
	assert.Error(t, err)
}
