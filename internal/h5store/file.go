package h5store

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/scigolib/hdf5"
)

// File is a Container backed by an HDF5 file opened read-only.
type File struct {
	path string
	h5   *hdf5.File
}

// Open opens an HDF5 file for reading. The caller must Close it.
func Open(filename string) (*File, error) {
	h5, err := hdf5.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filename, err)
	}
	return &File{path: filename, h5: h5}, nil
}

// Path returns the file name passed to Open.
func (f *File) Path() string {
	return f.path
}

// Close releases the underlying file handle. It is safe to call more than once.
func (f *File) Close() error {
	return f.h5.Close()
}

// Keys returns the names of the root group's children.
func (f *File) Keys() []string {
	children := f.h5.Root().Children()
	keys := make([]string, 0, len(children))
	for _, child := range children {
		keys = append(keys, objectName(child))
	}
	return keys
}

// Read loads the dataset at key. Nested datasets are addressed with "/".
func (f *File) Read(key string) (*Array, error) {
	obj, err := f.lookup(key)
	if err != nil {
		return nil, err
	}
	ds, ok := obj.(*hdf5.Dataset)
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrNotArray)
	}
	return readDataset(cleanKey(key), ds)
}

// Walk visits every group and dataset below the root in file order.
func (f *File) Walk(fn WalkFunc) error {
	return walkGroup(f.h5.Root(), "", fn)
}

// walkGroup recurses by hand because hdf5.File.Walk cannot stop on an error.
func walkGroup(g *hdf5.Group, prefix string, fn WalkFunc) error {
	for _, child := range g.Children() {
		p := path.Join(prefix, objectName(child))
		switch obj := child.(type) {
		case *hdf5.Group:
			if err := fn(Node{Path: p, Kind: KindGroup}); err != nil {
				return err
			}
			if err := walkGroup(obj, p, fn); err != nil {
				return err
			}
		case *hdf5.Dataset:
			n := Node{Path: p, Kind: KindArray, DType: "unknown"}
			if info, err := obj.Info(); err == nil {
				if m, err := parseInfo(info); err == nil {
					n.Shape = m.shape
					n.DType = m.dtype
				}
			}
			if err := fn(n); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *File) lookup(key string) (hdf5.Object, error) {
	parts := strings.Split(cleanKey(key), "/")
	var cur hdf5.Object = f.h5.Root()
	for _, part := range parts {
		g, ok := cur.(*hdf5.Group)
		if !ok {
			return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
		}
		var next hdf5.Object
		for _, child := range g.Children() {
			if objectName(child) == part {
				next = child
				break
			}
		}
		if next == nil {
			return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
		}
		cur = next
	}
	return cur, nil
}

func readDataset(name string, ds *hdf5.Dataset) (*Array, error) {
	info, err := ds.Info()
	if err != nil {
		return nil, fmt.Errorf("%s: read metadata: %w", name, err)
	}
	m, err := parseInfo(info)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if !m.numeric {
		return nil, fmt.Errorf("%s: %s: %w", name, m.dtype, ErrUnsupportedType)
	}

	data, err := ds.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: read data: %w", name, err)
	}
	if want := NumElements(m.shape); len(data) != want {
		return nil, fmt.Errorf("%s: read %d elements, dataspace %s holds %d",
			name, len(data), FormatShape(m.shape), want)
	}

	return &Array{Name: name, Shape: m.shape, DType: m.dtype, Data: data}, nil
}

// objectName strips any leading path from a child's name.
func objectName(obj hdf5.Object) string {
	return path.Base("/" + strings.Trim(obj.Name(), "/"))
}

// datasetMeta is what the library's dataset description tells us.
type datasetMeta struct {
	dtype   string
	shape   []int
	numeric bool
}

var (
	// e.g. "Dataset: float (size=8 bytes), 2D array [3 x 6], contiguous (...)"
	datatypeRe  = regexp.MustCompile(`^Dataset: (\w+) \(size=(\d+) bytes\)`)
	dataspaceRe = regexp.MustCompile(`(\d+)D array \[([^\]]*)\]`)
	scalarRe    = regexp.MustCompile(`, (scalar|null),`)
)

// parseInfo decodes the string produced by hdf5.Dataset.Info.
//
// The description carries the datatype class and byte width but not the
// sign bit, so every fixed-point dataset is reported as int<N>, including
// unsigned ones. Read still returns the values as float64 either way.
func parseInfo(info string) (datasetMeta, error) {
	var m datasetMeta

	dt := datatypeRe.FindStringSubmatch(info)
	if dt == nil {
		return m, fmt.Errorf("unrecognised dataset description %q", info)
	}
	size, _ := strconv.Atoi(dt[2])
	switch dt[1] {
	case "float":
		m.dtype = "float" + strconv.Itoa(size*8)
		m.numeric = true
	case "integer":
		m.dtype = "int" + strconv.Itoa(size*8)
		m.numeric = true
	default:
		m.dtype = dt[1]
	}

	if sp := dataspaceRe.FindStringSubmatch(info); sp != nil {
		rank, _ := strconv.Atoi(sp[1])
		fields := strings.Fields(strings.ReplaceAll(sp[2], "x", " "))
		if len(fields) != rank {
			return m, fmt.Errorf("dataspace rank %d does not match dims %q", rank, sp[2])
		}
		m.shape = make([]int, rank)
		for i, f := range fields {
			d, err := strconv.Atoi(f)
			if err != nil {
				return m, fmt.Errorf("bad dimension %q: %w", f, err)
			}
			m.shape[i] = d
		}
		return m, nil
	}
	if scalarRe.MatchString(info) {
		m.shape = []int{}
		return m, nil
	}
	return m, fmt.Errorf("unrecognised dataspace in %q", info)
}
