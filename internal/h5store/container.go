package h5store

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a key has no entry in the container.
	ErrNotFound = errors.New("entry not found")
	// ErrNotArray is returned when a read targets a group.
	ErrNotArray = errors.New("entry is a group, not an array")
	// ErrUnsupportedType is returned for element types that cannot be widened to float64.
	ErrUnsupportedType = errors.New("unsupported element type")
)

// NodeKind tags an entry of the hierarchy.
type NodeKind int

const (
	KindGroup NodeKind = iota
	KindArray
)

func (k NodeKind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Node describes one entry met while walking a container. Path is relative to
// the root and uses "/" separators with no leading slash. Shape and DType are
// only set for arrays.
type Node struct {
	Path  string
	Kind  NodeKind
	Shape []int
	DType string
}

// WalkFunc is called for every node in depth-first order. Returning an error
// stops the walk and the error is returned from Walk.
type WalkFunc func(n Node) error

// Container is a read-only hierarchy of named arrays and groups.
type Container interface {
	// Keys returns the top-level entry names in container order.
	Keys() []string
	// Read loads the full array stored at key.
	Read(key string) (*Array, error)
	// Walk visits every entry below the root, depth first.
	Walk(fn WalkFunc) error
	Close() error
}

// Has reports whether key is one of the container's top-level entries.
func Has(c Container, key string) bool {
	for _, k := range c.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

func cleanKey(key string) string {
	return strings.Trim(key, "/")
}
