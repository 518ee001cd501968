package cell

import (
	"sort"
	"sync"
)

// Family memoizes atoms by string key. The first Get for a key builds the
// atom; later calls return the identical *Atom, which is how two readers of the
// same path end up sharing state. Keys are compared exactly.
type Family[T any] struct {
	name  string
	mu    sync.Mutex
	build func(key string) *Atom[T]
	atoms map[string]*Atom[T]
}

// NewFamily creates a family. name prefixes the labels of the atoms it builds.
func NewFamily[T any](name string, build func(key string) *Atom[T]) *Family[T] {
	return &Family[T]{
		name:  name,
		build: build,
		atoms: make(map[string]*Atom[T]),
	}
}

// Get returns the atom for key, building it on first use.
func (f *Family[T]) Get(key string) *Atom[T] {
	f.mu.Lock()
	defer f.mu.Unlock()

	if a, ok := f.atoms[key]; ok {
		return a
	}
	a := f.build(key).Named(f.name + "(" + key + ")")
	f.atoms[key] = a
	return a
}

// Lookup returns the atom for key if it has been built.
func (f *Family[T]) Lookup(key string) (*Atom[T], bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.atoms[key]
	return a, ok
}

// Delete forgets the atom for key. A later Get builds a new atom.
func (f *Family[T]) Delete(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.atoms, key)
}

// Keys returns the built keys in sorted order.
func (f *Family[T]) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	keys := make([]string, 0, len(f.atoms))
	for k := range f.atoms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of built atoms.
func (f *Family[T]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.atoms)
}

// Name returns the family name.
func (f *Family[T]) Name() string {
	return f.name
}
