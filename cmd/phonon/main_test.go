package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sbinet/npyio/npz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/phonon.report/internal/config"
	"github.com/banshee-data/phonon.report/internal/phonon"
	"github.com/banshee-data/phonon.report/internal/testutil"
)

func TestFlagDefaults(t *testing.T) {
	assert.Equal(t, config.DefaultInputPath, *inputPath)
	assert.Equal(t, config.DefaultPlotPath, *plotPath)
	assert.Equal(t, config.DefaultArchivePath, *archivePath)
	assert.False(t, *showVersion)
}

// withFlags sets flag values for one test and restores them afterwards.
func withFlags(t *testing.T, input, plot, archive string, lo, hi float64) {
	t.Helper()
	oldInput, oldPlot, oldArchive, oldLo, oldHi := *inputPath, *plotPath, *archivePath, *yMin, *yMax
	*inputPath, *plotPath, *archivePath, *yMin, *yMax = input, plot, archive, lo, hi
	t.Cleanup(func() {
		*inputPath, *plotPath, *archivePath, *yMin, *yMax = oldInput, oldPlot, oldArchive, oldLo, oldHi
	})
}

func TestResolveConfig_NoFlags(t *testing.T) {
	cfg, err := resolveConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultInputPath, cfg.GetInputPath())
	assert.Equal(t, config.DefaultPlotPath, cfg.GetPlotPath())
	assert.Equal(t, config.DefaultArchivePath, cfg.GetArchivePath())
}

func TestResolveConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"input_path": "file.hdf5", "npz_path": "file.npz"}`), 0644))

	withFlags(t, "flag.hdf5", "", config.DefaultArchivePath, 0, 10)

	cfg, err := resolveConfig(path, map[string]bool{"input": true, "plot": true, "ymin": true, "ymax": true})
	require.NoError(t, err)
	assert.Equal(t, "flag.hdf5", cfg.GetInputPath())
	assert.Equal(t, "", cfg.GetPlotPath())
	assert.Equal(t, "file.npz", cfg.GetArchivePath())

	lo, hi, ok := cfg.GetYLimits()
	assert.True(t, ok)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 10.0, hi)
}

func TestResolveConfig_Invalid(t *testing.T) {
	withFlags(t, config.DefaultInputPath, config.DefaultPlotPath, "out.zip", 5, 1)

	_, err := resolveConfig("", map[string]bool{"ymin": true, "ymax": true})
	assert.Error(t, err)

	_, err = resolveConfig("", map[string]bool{"ymin": true})
	assert.Error(t, err)

	_, err = resolveConfig("", map[string]bool{"npz": true})
	assert.Error(t, err)

	_, err = resolveConfig(filepath.Join(t.TempDir(), "absent.json"), nil)
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := testutil.SmallDispersion.WriteHDF5(t, dir)
	plot := filepath.Join(dir, "phonon_dispersion.png")
	archive := filepath.Join(dir, "phonon_data.npz")

	cfg := config.Empty()
	cfg.InputPath = &input
	cfg.PlotPath = &plot
	cfg.ArchivePath = &archive
	cfg.SetYLimits(0, 12)

	var out bytes.Buffer
	require.NoError(t, run(cfg, &out))

	assert.Contains(t, out.String(), "Number of q-points: 4")
	assert.Contains(t, out.String(), "Frequency range: 1.0000 to 10.5000")
	assert.Contains(t, out.String(), "[1 2 3 4 5 6]")

	info, err := os.Stat(plot)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	r, err := npz.Open(archive)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, []string{
		phonon.MemberFrequencies, phonon.MemberEigenvectors, phonon.MemberQValues, phonon.MemberQVector,
	}, r.Keys())
}

func TestRun_MissingInput(t *testing.T) {
	input := filepath.Join(t.TempDir(), "absent.hdf5")
	cfg := config.Empty()
	cfg.InputPath = &input

	var out bytes.Buffer
	assert.Error(t, run(cfg, &out))
}
