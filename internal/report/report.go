// Package report formats the console summaries printed by the commands.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/banshee-data/phonon.report/internal/h5store"
	"github.com/banshee-data/phonon.report/internal/phonon"
)

// GammaModes is how many Γ-point frequencies WriteGamma prints.
const GammaModes = 10

// WriteArraySummary prints name, shape, type and value range of each array
// in the order given. The range is omitted for empty arrays.
func WriteArraySummary(w io.Writer, arrays []*h5store.Array) error {
	var b strings.Builder
	b.WriteString("Data Summary:\n")
	for _, a := range arrays {
		fmt.Fprintf(&b, "%s:\n", a.Name)
		fmt.Fprintf(&b, "  Shape: %s\n", a.ShapeString())
		fmt.Fprintf(&b, "  Type: %s\n", a.DType)
		if lo, hi, ok := a.MinMax(); ok {
			fmt.Fprintf(&b, "  Min: %v\n", lo)
			fmt.Fprintf(&b, "  Max: %v\n", hi)
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WritePhononSummary prints the dataset counts and frequency range.
func WritePhononSummary(w io.Writer, d *phonon.Data) error {
	lo, hi := d.FrequencyRange()

	var b strings.Builder
	b.WriteString("Data Summary:\n")
	fmt.Fprintf(&b, "Number of q-points: %d\n", d.NQPoints())
	fmt.Fprintf(&b, "Number of modes: %d\n", d.NModes())
	fmt.Fprintf(&b, "Number of atoms: %d\n", d.NAtoms())
	fmt.Fprintf(&b, "\nFrequency range: %.4f to %.4f\n", lo, hi)
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteGamma prints the first GammaModes frequencies at q index 0 (Γ).
func WriteGamma(w io.Writer, d *phonon.Data) error {
	freqs, err := d.FrequenciesAt(0)
	if err != nil {
		return err
	}
	if len(freqs) > GammaModes {
		freqs = freqs[:GammaModes]
	}

	var b strings.Builder
	b.WriteString("Data at Γ point:\n")
	fmt.Fprintf(&b, "Frequencies at Γ (first %d modes):\n", GammaModes)
	fmt.Fprintf(&b, "%v\n", freqs)
	_, err = io.WriteString(w, b.String())
	return err
}
