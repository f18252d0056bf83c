package explorer

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/phonon.report/internal/h5store"
	"github.com/banshee-data/phonon.report/internal/testutil"
)

const banner = "HDF5 File Structure:\n===================\n"

func TestExplore_Hierarchy(t *testing.T) {
	c := h5store.NewMemory().
		AddArray("frequencies", []int{2, 6}, make([]float64, 12)).
		AddGroup("meta").
		AddTyped("meta/counts", "int32", []int{3}, []float64{1, 2, 3}).
		AddGroup("meta/empty")

	var buf bytes.Buffer
	n, err := Explore(c, &buf)
	testutil.AssertNoError(t, err)
	if n != 4 {
		t.Errorf("entries = %d, want 4", n)
	}

	want := banner +
		"Dataset: frequencies\n  Shape: (2, 6)\n  Type: float64\n\n" +
		"Group: meta/\n\n" +
		"Dataset: meta/counts\n  Shape: (3,)\n  Type: int32\n\n" +
		"Group: meta/empty/\n\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestExplore_EmptyContainer(t *testing.T) {
	var buf bytes.Buffer
	n, err := Explore(h5store.NewMemory(), &buf)
	testutil.AssertNoError(t, err)
	if n != 0 {
		t.Errorf("entries = %d, want 0", n)
	}
	if buf.String() != banner {
		t.Errorf("report = %q, want banner only", buf.String())
	}
}

func TestExploreFile_EmptyFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "empty.h5")
	testutil.WriteHDF5(t, filename)

	var buf bytes.Buffer
	n, err := ExploreFile(filename, &buf)
	testutil.AssertNoError(t, err)
	if n != 0 {
		t.Errorf("entries = %d, want 0", n)
	}
}

func TestExploreFile_Dispersion(t *testing.T) {
	filename := testutil.SmallDispersion.WriteHDF5(t, t.TempDir())

	var buf bytes.Buffer
	n, err := ExploreFile(filename, &buf)
	testutil.AssertNoError(t, err)
	if n != 8 {
		t.Errorf("entries = %d, want 8", n)
	}
	if !strings.Contains(buf.String(), "Dataset: eigenvectors_re\n  Shape: (4, 6, 6)\n  Type: float64\n") {
		t.Errorf("report missing eigenvectors_re entry:\n%s", buf.String())
	}
}

func TestExploreFile_Missing(t *testing.T) {
	var buf bytes.Buffer
	_, err := ExploreFile(filepath.Join(t.TempDir(), "missing.hdf5"), &buf)
	testutil.AssertError(t, err)
}
