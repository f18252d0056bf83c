// Package dispersion extracts whatever arrays it can from a dispersion file
// whose schema is not known in advance. Every top-level key is attempted on
// its own; one unreadable dataset never fails the whole read.
package dispersion

import (
	"log"

	"github.com/banshee-data/phonon.report/internal/h5store"
)

// Logf prints the root key listing and one line per dataset that Read
// skips. Read never returns those skips as errors, so this is where they
// surface on the command line.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger sends Read's diagnostics to f instead of the standard logger.
// A nil f discards them.
func SetLogger(f func(format string, v ...interface{})) {
	if f != nil {
		Logf = f
		return
	}
	Logf = func(string, ...interface{}) {}
}

// PreferredKeys are read first, in this order, when present.
var PreferredKeys = []string{"eigenvalues", "eigenvectors", "qpoints", "frequencies"}

// KeyResult is the outcome of reading one key: either Array or Err is set.
type KeyResult struct {
	Key   string
	Array *h5store.Array
	Err   error
}

// OK reports whether the key was read.
func (r KeyResult) OK() bool {
	return r.Err == nil && r.Array != nil
}

// Result aggregates the per-key outcomes of one read.
type Result struct {
	// RootKeys are the container's top-level keys as enumerated.
	RootKeys []string
	// Entries holds one result per attempted key, in attempt order.
	Entries []KeyResult
}

// Arrays returns the successfully read arrays keyed by name.
func (r *Result) Arrays() map[string]*h5store.Array {
	out := make(map[string]*h5store.Array)
	for _, e := range r.Entries {
		if e.OK() {
			out[e.Key] = e.Array
		}
	}
	return out
}

// Keys returns the successfully read keys in the order they were captured.
func (r *Result) Keys() []string {
	var keys []string
	for _, e := range r.Entries {
		if e.OK() {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// Failures returns the read error for every key that could not be read.
func (r *Result) Failures() map[string]error {
	out := make(map[string]error)
	for _, e := range r.Entries {
		if !e.OK() {
			out[e.Key] = e.Err
		}
	}
	return out
}

// Read pulls every readable top-level array out of c. Preferred keys go first;
// the rest follow in container order. Each key is attempted once.
func Read(c h5store.Container) *Result {
	keys := c.Keys()
	Logf("Available root keys: %v", keys)

	present := make(map[string]bool, len(keys))
	for _, k := range keys {
		present[k] = true
	}

	res := &Result{RootKeys: keys}
	attempted := make(map[string]bool, len(keys))
	attempt := func(key string) {
		attempted[key] = true
		arr, err := c.Read(key)
		if err != nil {
			Logf("Could not read dataset: %v", err)
			res.Entries = append(res.Entries, KeyResult{Key: key, Err: err})
			return
		}
		res.Entries = append(res.Entries, KeyResult{Key: key, Array: arr})
	}

	for _, key := range PreferredKeys {
		if present[key] {
			attempt(key)
		}
	}
	for _, key := range keys {
		if !attempted[key] {
			attempt(key)
		}
	}
	return res
}

// ReadFile opens filename, reads it with Read and closes it. Only failing to
// open the file is an error.
func ReadFile(filename string) (*Result, error) {
	f, err := h5store.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f), nil
}
