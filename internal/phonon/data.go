// Package phonon loads a phonon dispersion file with a fixed schema and
// exposes per-q-point views of it.
//
// A file holds, for n_qpoints points along a path in reciprocal space and
// n_modes vibrational modes:
//
//	frequencies               (n_qpoints, n_modes)
//	q_values                  (n_qpoints,)
//	q_vector                  (n_qpoints, 3)
//	q_ticks                   (n_ticks,)
//	eigenvectors_re/_im       (n_qpoints, n_modes, n_modes)
//	group_velocities          (n_qpoints, n_modes, 3)
//	site_projection_per_mode  (n_qpoints, n_modes, n_atoms)
//
// Loading is all or nothing: every key must be present and readable.
package phonon

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/phonon.report/internal/h5store"
)

// Required dataset keys.
const (
	KeyFrequencies     = "frequencies"
	KeyQValues         = "q_values"
	KeyQVector         = "q_vector"
	KeyQTicks          = "q_ticks"
	KeyEigenvectorsRe  = "eigenvectors_re"
	KeyEigenvectorsIm  = "eigenvectors_im"
	KeyGroupVelocities = "group_velocities"
	KeySiteProjections = "site_projection_per_mode"
)

// RequiredKeys lists every key Load reads, in read order.
var RequiredKeys = []string{
	KeyFrequencies,
	KeyQValues,
	KeyQVector,
	KeyQTicks,
	KeyEigenvectorsRe,
	KeyEigenvectorsIm,
	KeyGroupVelocities,
	KeySiteProjections,
}

var (
	// ErrMissingKey is returned when a required dataset is absent.
	ErrMissingKey = errors.New("required dataset missing")
	// ErrOutOfRange is returned for a q-point index outside [0, n_qpoints).
	ErrOutOfRange = errors.New("q-point index out of range")
	// ErrShapeMismatch is returned when datasets cannot be indexed together.
	ErrShapeMismatch = errors.New("dataset shape mismatch")
)

// tensor3 is a dense rank-3 array in row-major order.
type tensor3 struct {
	shape [3]int
	data  []float64
}

func newTensor3(a *h5store.Array) tensor3 {
	return tensor3{shape: [3]int{a.Shape[0], a.Shape[1], a.Shape[2]}, data: a.Data}
}

// slab copies the [q, :, :] sub-array.
func (t tensor3) slab(q int) [][]float64 {
	rows, cols := t.shape[1], t.shape[2]
	base := q * rows * cols
	out := make([][]float64, rows)
	for i := range out {
		out[i] = append([]float64(nil), t.data[base+i*cols:base+(i+1)*cols]...)
	}
	return out
}

// Data is one loaded dispersion file. It is not modified after Load returns
// and every accessor hands out copies.
type Data struct {
	frequencies *mat.Dense
	qValues     []float64
	qVector     *mat.Dense
	qTicks      []float64

	eigenShape   [3]int
	eigenvectors []complex128

	groupVelocities tensor3
	siteProjections tensor3
}

// Load reads the dispersion file at path.
func Load(path string) (*Data, error) {
	f, err := h5store.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := FromContainer(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return d, nil
}

// FromContainer reads and checks every required dataset of c.
// A file with zero q-points or zero modes is rejected with ErrShapeMismatch
// because the frequency and q-vector tables are gonum matrices, and
// mat.NewDense cannot hold a zero-length dimension.
func FromContainer(c h5store.Container) (*Data, error) {
	arrays := make(map[string]*h5store.Array, len(RequiredKeys))
	for _, key := range RequiredKeys {
		if !h5store.Has(c, key) {
			return nil, fmt.Errorf("%w: %s", ErrMissingKey, key)
		}
		a, err := c.Read(key)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		arrays[key] = a
	}
	return build(arrays)
}

func checkRank(a *h5store.Array, rank int) error {
	if a.Rank() != rank {
		return fmt.Errorf("%w: %s has shape %s, want rank %d", ErrShapeMismatch, a.Name, a.ShapeString(), rank)
	}
	return nil
}

func checkLeading(a *h5store.Array, nq int) error {
	if a.Dim(0) != nq {
		return fmt.Errorf("%w: %s has shape %s, want %d q-points", ErrShapeMismatch, a.Name, a.ShapeString(), nq)
	}
	return nil
}

func build(arrays map[string]*h5store.Array) (*Data, error) {
	freq := arrays[KeyFrequencies]
	if err := checkRank(freq, 2); err != nil {
		return nil, err
	}
	nq, nm := freq.Shape[0], freq.Shape[1]
	if nq == 0 || nm == 0 {
		return nil, fmt.Errorf("%w: %s has empty shape %s, need at least one q-point and one mode for a dense matrix",
			ErrShapeMismatch, freq.Name, freq.ShapeString())
	}

	qValues := arrays[KeyQValues]
	if err := checkRank(qValues, 1); err != nil {
		return nil, err
	}
	if err := checkLeading(qValues, nq); err != nil {
		return nil, err
	}

	qVector := arrays[KeyQVector]
	if err := checkRank(qVector, 2); err != nil {
		return nil, err
	}
	if err := checkLeading(qVector, nq); err != nil {
		return nil, err
	}
	if qVector.Shape[1] == 0 {
		return nil, fmt.Errorf("%w: %s has empty shape %s", ErrShapeMismatch, qVector.Name, qVector.ShapeString())
	}

	for _, key := range []string{KeyEigenvectorsRe, KeyEigenvectorsIm, KeyGroupVelocities, KeySiteProjections} {
		a := arrays[key]
		if err := checkRank(a, 3); err != nil {
			return nil, err
		}
		if err := checkLeading(a, nq); err != nil {
			return nil, err
		}
	}

	re, im := arrays[KeyEigenvectorsRe], arrays[KeyEigenvectorsIm]
	if re.ShapeString() != im.ShapeString() {
		return nil, fmt.Errorf("%w: %s %s and %s %s differ", ErrShapeMismatch,
			re.Name, re.ShapeString(), im.Name, im.ShapeString())
	}
	eigenvectors := make([]complex128, len(re.Data))
	for i := range eigenvectors {
		eigenvectors[i] = complex(re.Data[i], im.Data[i])
	}

	return &Data{
		frequencies:     mat.NewDense(nq, nm, freq.Data),
		qValues:         qValues.Data,
		qVector:         mat.NewDense(nq, qVector.Shape[1], qVector.Data),
		qTicks:          arrays[KeyQTicks].Data,
		eigenShape:      [3]int{re.Shape[0], re.Shape[1], re.Shape[2]},
		eigenvectors:    eigenvectors,
		groupVelocities: newTensor3(arrays[KeyGroupVelocities]),
		siteProjections: newTensor3(arrays[KeySiteProjections]),
	}, nil
}

// NQPoints returns the number of q-points.
func (d *Data) NQPoints() int {
	r, _ := d.frequencies.Dims()
	return r
}

// NModes returns the number of vibrational modes.
func (d *Data) NModes() int {
	_, c := d.frequencies.Dims()
	return c
}

// NAtoms returns the number of atoms, three modes per atom.
func (d *Data) NAtoms() int {
	return d.NModes() / 3
}

func (d *Data) checkQ(q int) error {
	if q < 0 || q >= d.NQPoints() {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, q, d.NQPoints())
	}
	return nil
}

// FrequenciesAt returns the frequency of every mode at q-point q.
func (d *Data) FrequenciesAt(q int) ([]float64, error) {
	if err := d.checkQ(q); err != nil {
		return nil, err
	}
	return mat.Row(nil, q, d.frequencies), nil
}

// EigenvectorsAt returns the complex eigenvector matrix at q-point q.
func (d *Data) EigenvectorsAt(q int) ([][]complex128, error) {
	if err := d.checkQ(q); err != nil {
		return nil, err
	}
	rows, cols := d.eigenShape[1], d.eigenShape[2]
	base := q * rows * cols
	out := make([][]complex128, rows)
	for i := range out {
		out[i] = append([]complex128(nil), d.eigenvectors[base+i*cols:base+(i+1)*cols]...)
	}
	return out, nil
}

// GroupVelocitiesAt returns the group velocity vector of every mode at q-point q.
func (d *Data) GroupVelocitiesAt(q int) ([][]float64, error) {
	if err := d.checkQ(q); err != nil {
		return nil, err
	}
	return d.groupVelocities.slab(q), nil
}

// SiteProjectionsAt returns the per-atom weight of every mode at q-point q.
func (d *Data) SiteProjectionsAt(q int) ([][]float64, error) {
	if err := d.checkQ(q); err != nil {
		return nil, err
	}
	return d.siteProjections.slab(q), nil
}

// Frequencies returns a copy of the full frequency matrix.
func (d *Data) Frequencies() *mat.Dense {
	return mat.DenseCopyOf(d.frequencies)
}

// QValues returns the path coordinate of every q-point.
func (d *Data) QValues() []float64 {
	return append([]float64(nil), d.qValues...)
}

// QVector returns a copy of the q-point coordinates.
func (d *Data) QVector() *mat.Dense {
	return mat.DenseCopyOf(d.qVector)
}

// QTicks returns the path coordinates of the labelled points.
func (d *Data) QTicks() []float64 {
	return append([]float64(nil), d.qTicks...)
}

// FrequencyRange returns the smallest and largest frequency over all modes.
func (d *Data) FrequencyRange() (lo, hi float64) {
	return mat.Min(d.frequencies), mat.Max(d.frequencies)
}
