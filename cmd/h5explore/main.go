// Command h5explore prints the structure of an HDF5 file and a summary of
// every dataset that can be read from its root.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/banshee-data/phonon.report/internal/config"
	"github.com/banshee-data/phonon.report/internal/dispersion"
	"github.com/banshee-data/phonon.report/internal/explorer"
	"github.com/banshee-data/phonon.report/internal/h5store"
	"github.com/banshee-data/phonon.report/internal/report"
	"github.com/banshee-data/phonon.report/internal/version"
)

var (
	configPath  = flag.String("config", "", "Optional JSON config file; -input overrides its input_path")
	inputPath   = flag.String("input", config.DefaultInputPath, "HDF5 file to explore")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func run(path string, w io.Writer) error {
	fmt.Fprintln(w, "Exploring file structure...")
	n, err := explorer.ExploreFile(path, w)
	if err != nil {
		return err
	}
	log.Printf("Explored %d entries in %s", n, path)

	fmt.Fprintln(w, "\nReading dispersion data...")
	res, err := dispersion.ReadFile(path)
	if err != nil {
		return err
	}

	keys := res.Keys()
	if len(keys) == 0 {
		fmt.Fprintln(w, "\nNo datasets could be read.")
		return nil
	}
	arrays := res.Arrays()
	ordered := make([]*h5store.Array, 0, len(keys))
	for _, k := range keys {
		ordered = append(ordered, arrays[k])
	}

	fmt.Fprintln(w)
	return report.WriteArraySummary(w, ordered)
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("h5explore"))
		return
	}

	cfg := config.Empty()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load configuration: %v", err)
		}
		cfg = loaded
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "input" {
			cfg.InputPath = inputPath
		}
	})

	if err := run(cfg.GetInputPath(), os.Stdout); err != nil {
		log.Fatalf("h5explore: %v", err)
	}
}
