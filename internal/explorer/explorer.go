// Package explorer prints the layout of a hierarchical data file: every group
// and every array with its shape and element type.
package explorer

import (
	"fmt"
	"io"

	"github.com/banshee-data/phonon.report/internal/h5store"
)

// Explore writes the structure report for c to w and returns the number of
// entries reported. The root itself is not an entry.
func Explore(c h5store.Container, w io.Writer) (int, error) {
	if _, err := fmt.Fprint(w, "HDF5 File Structure:\n===================\n"); err != nil {
		return 0, err
	}

	count := 0
	err := c.Walk(func(n h5store.Node) error {
		count++
		return writeNode(w, n)
	})
	if err != nil {
		return count, fmt.Errorf("walk: %w", err)
	}
	return count, nil
}

// ExploreFile opens filename read-only, reports its structure and closes it.
func ExploreFile(filename string, w io.Writer) (int, error) {
	f, err := h5store.Open(filename)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return Explore(f, w)
}

func writeNode(w io.Writer, n h5store.Node) error {
	var err error
	switch n.Kind {
	case h5store.KindGroup:
		_, err = fmt.Fprintf(w, "Group: %s/\n\n", n.Path)
	default:
		_, err = fmt.Fprintf(w, "Dataset: %s\n  Shape: %s\n  Type: %s\n\n",
			n.Path, h5store.FormatShape(n.Shape), n.DType)
	}
	return err
}
