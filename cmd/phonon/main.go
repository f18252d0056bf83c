// Command phonon loads a phonon dispersion file, prints a summary, plots the
// dispersion curves and saves the key arrays as a NumPy archive.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/banshee-data/phonon.report/internal/chart"
	"github.com/banshee-data/phonon.report/internal/config"
	"github.com/banshee-data/phonon.report/internal/phonon"
	"github.com/banshee-data/phonon.report/internal/report"
	"github.com/banshee-data/phonon.report/internal/version"
)

var (
	configPath  = flag.String("config", "", "Optional JSON config file; flags override its values")
	inputPath   = flag.String("input", config.DefaultInputPath, "Dispersion HDF5 file")
	plotPath    = flag.String("plot", config.DefaultPlotPath, "Chart image path; empty shows the chart in a browser")
	archivePath = flag.String("npz", config.DefaultArchivePath, "NumPy archive output path")
	yMin        = flag.Float64("ymin", 0, "Lower frequency axis limit (use with -ymax)")
	yMax        = flag.Float64("ymax", 0, "Upper frequency axis limit (use with -ymin)")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

// resolveConfig loads the optional config file and applies the flags the
// user set explicitly on top of it.
func resolveConfig(path string, set map[string]bool) (*config.Config, error) {
	cfg := config.Empty()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if set["input"] {
		cfg.InputPath = inputPath
	}
	if set["plot"] {
		cfg.PlotPath = plotPath
	}
	if set["npz"] {
		cfg.ArchivePath = archivePath
	}
	if set["ymin"] {
		cfg.YMin = yMin
	}
	if set["ymax"] {
		cfg.YMax = yMax
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(cfg *config.Config, w io.Writer) error {
	fmt.Fprintln(w, "Loading phonon data...")
	d, err := phonon.Load(cfg.GetInputPath())
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	if err := report.WritePhononSummary(w, d); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nPlotting dispersion relations...")
	opts := phonon.PlotOptions{OutputPath: cfg.GetPlotPath()}
	if lo, hi, ok := cfg.GetYLimits(); ok {
		opts.YLimits = &chart.Limits{Min: lo, Max: hi}
	}
	if err := d.Plot(opts); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nSaving data in numpy format...")
	if err := d.SaveNumeric(cfg.GetArchivePath()); err != nil {
		return err
	}

	fmt.Fprintln(w)
	return report.WriteGamma(w, d)
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("phonon"))
		return
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := resolveConfig(*configPath, set)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if err := run(cfg, os.Stdout); err != nil {
		log.Fatalf("phonon: %v", err)
	}
}
