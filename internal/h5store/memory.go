package h5store

import (
	"fmt"
	"path"
)

// Memory is an in-memory Container. Entries are kept in insertion order and a
// parent group must be added before its children.
type Memory struct {
	order   []string
	entries map[string]*memEntry
}

type memEntry struct {
	kind  NodeKind
	array *Array
	shape []int
	dtype string
	err   error
}

// NewMemory returns an empty container.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]*memEntry)}
}

// AddGroup registers a group at p.
func (m *Memory) AddGroup(p string) *Memory {
	m.add(p, &memEntry{kind: KindGroup})
	return m
}

// AddArray registers a float64 array. It panics if data does not fill shape.
func (m *Memory) AddArray(p string, shape []int, data []float64) *Memory {
	return m.AddTyped(p, "float64", shape, data)
}

// AddTyped registers an array with an explicit element type name.
func (m *Memory) AddTyped(p, dtype string, shape []int, data []float64) *Memory {
	if NumElements(shape) != len(data) {
		panic(fmt.Sprintf("h5store: %s: %d values do not fill shape %s", p, len(data), FormatShape(shape)))
	}
	key := cleanKey(p)
	arr := &Array{
		Name:  key,
		Shape: append([]int(nil), shape...),
		DType: dtype,
		Data:  append([]float64(nil), data...),
	}
	m.add(p, &memEntry{kind: KindArray, array: arr, shape: arr.Shape, dtype: dtype})
	return m
}

// AddUnreadable registers an array whose metadata is visible but whose Read
// always fails with err.
func (m *Memory) AddUnreadable(p string, shape []int, err error) *Memory {
	m.add(p, &memEntry{kind: KindArray, shape: append([]int(nil), shape...), dtype: "float64", err: err})
	return m
}

func (m *Memory) add(p string, e *memEntry) {
	key := cleanKey(p)
	if parent := path.Dir(key); parent != "." {
		if pe, ok := m.entries[parent]; !ok || pe.kind != KindGroup {
			panic(fmt.Sprintf("h5store: parent group %q of %q not registered", parent, key))
		}
	}
	if _, ok := m.entries[key]; !ok {
		m.order = append(m.order, key)
	}
	m.entries[key] = e
}

// Keys returns the top-level entries in insertion order.
func (m *Memory) Keys() []string {
	var keys []string
	for _, k := range m.order {
		if path.Dir(k) == "." {
			keys = append(keys, k)
		}
	}
	return keys
}

// Read returns a copy of the array at key.
func (m *Memory) Read(key string) (*Array, error) {
	e, ok := m.entries[cleanKey(key)]
	switch {
	case !ok:
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	case e.kind == KindGroup:
		return nil, fmt.Errorf("%s: %w", key, ErrNotArray)
	case e.err != nil:
		return nil, fmt.Errorf("%s: %w", key, e.err)
	}
	return e.array.Clone(), nil
}

// Walk visits entries depth first, children in insertion order.
func (m *Memory) Walk(fn WalkFunc) error {
	return m.walk(".", fn)
}

func (m *Memory) walk(parent string, fn WalkFunc) error {
	for _, k := range m.order {
		if path.Dir(k) != parent {
			continue
		}
		e := m.entries[k]
		n := Node{Path: k, Kind: e.kind}
		if e.kind == KindArray {
			n.Shape = append([]int(nil), e.shape...)
			n.DType = e.dtype
		}
		if err := fn(n); err != nil {
			return err
		}
		if e.kind == KindGroup {
			if err := m.walk(k, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}
