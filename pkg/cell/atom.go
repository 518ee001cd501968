package cell

import (
	"fmt"
	"reflect"
	"sync/atomic"
)

// atomSeq hands out atom identities. Atoms are definitions, not state, so the
// counter is the only process-wide value in this package.
var atomSeq atomic.Uint64

// Cell is implemented by every *Atom regardless of its value type. It lets the
// store and its callers refer to cells without knowing T.
type Cell interface {
	fmt.Stringer

	cellID() uint64
	initial() any
	derived() bool
	writable() bool
	compute(r Reader) (any, error)
	apply(w Writer, v any) error
	same(a, b any) bool
}

// Atom describes a cell holding a value of type T. An Atom is only a
// definition: its value lives in a Store, so the same Atom can be used with
// several independent stores.
//
// There are three flavours:
//   - primitive atoms (New) own a value;
//   - derived atoms (Derived) compute their value from other cells and are read-only;
//   - writable derived atoms (Writable) additionally fan writes out to other cells.
type Atom[T any] struct {
	id    uint64
	label string
	init  T
	read  func(r Reader) (T, error)
	write func(r Reader, w Writer, v T) error
	equal func(a, b T) bool
}

// New creates a primitive cell with the given initial value.
func New[T any](initial T) *Atom[T] {
	return newAtom(initial, nil, nil)
}

// Derived creates a read-only cell computed by read. Every cell read through
// the supplied Reader becomes a dependency; the value is recomputed whenever
// one of them changes.
func Derived[T any](read func(r Reader) (T, error)) *Atom[T] {
	var zero T
	return newAtom(zero, read, nil)
}

// Writable creates a derived cell that also accepts writes. Setting it runs
// write, which is expected to set zero or more other cells; the derived cell
// has no storage of its own.
func Writable[T any](read func(r Reader) (T, error), write func(r Reader, w Writer, v T) error) *Atom[T] {
	var zero T
	return newAtom(zero, read, write)
}

func newAtom[T any](initial T, read func(Reader) (T, error), write func(Reader, Writer, T) error) *Atom[T] {
	id := atomSeq.Add(1)
	return &Atom[T]{
		id:    id,
		label: fmt.Sprintf("cell#%d", id),
		init:  initial,
		read:  read,
		write: write,
	}
}

// Named sets the label used in errors, logs and observer callbacks.
func (a *Atom[T]) Named(label string) *Atom[T] {
	a.label = label
	return a
}

// WithEqual replaces the default reflect.DeepEqual comparison used to decide
// whether a new value is a change.
func (a *Atom[T]) WithEqual(eq func(x, y T) bool) *Atom[T] {
	a.equal = eq
	return a
}

// String returns the atom's label.
func (a *Atom[T]) String() string { return a.label }

func (a *Atom[T]) cellID() uint64 { return a.id }
func (a *Atom[T]) initial() any   { return a.init }
func (a *Atom[T]) derived() bool  { return a.read != nil }
func (a *Atom[T]) writable() bool { return a.read == nil || a.write != nil }

func (a *Atom[T]) compute(r Reader) (any, error) {
	v, err := a.read(r)
	return v, err
}

func (a *Atom[T]) apply(w Writer, v any) error {
	return a.write(w, w, cast[T](v))
}

func (a *Atom[T]) same(x, y any) bool {
	if a.equal != nil {
		return a.equal(cast[T](x), cast[T](y))
	}
	return reflect.DeepEqual(x, y)
}

// cast converts a stored value back to T. A nil interface maps to the zero
// value, which matters when T is itself an interface type.
func cast[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}

// Reader reads cell values. *Store is a Reader; read functions receive a
// Reader that also records dependencies.
type Reader interface {
	load(c Cell) (any, error)
}

// Writer writes cell values. *Store is a Writer; write functions receive a
// Writer bound to the running batch.
type Writer interface {
	Reader
	store(c Cell, v any) error
	modify(c Cell, fn func(old any) any) error
}

// Get returns the current value of a. Derived cells that are stale are
// recomputed first, so a Get following a Set always sees the new value.
func Get[T any](r Reader, a *Atom[T]) (T, error) {
	v, err := r.load(a)
	if err != nil {
		var zero T
		return zero, err
	}
	return cast[T](v), nil
}

// MustGet is Get for callers that know the read cannot fail, such as reads of
// primitive cells. It panics on error.
func MustGet[T any](r Reader, a *Atom[T]) T {
	v, err := Get(r, a)
	if err != nil {
		panic(err)
	}
	return v
}

// Set stores v into a. For a writable derived cell the write function runs
// instead; for a read-only derived cell a *ReadOnlyCellError is returned.
func Set[T any](w Writer, a *Atom[T], v T) error {
	return w.store(a, v)
}

// Update sets a to fn applied to its current value.
func Update[T any](w Writer, a *Atom[T], fn func(old T) T) error {
	return w.modify(a, func(old any) any {
		return fn(cast[T](old))
	})
}

// Subscribe registers fn to be called with the new value of a after every
// batch that changes it. The returned function removes the subscription and
// may be called more than once.
func Subscribe[T any](s *Store, a *Atom[T], fn func(v T)) (unsubscribe func()) {
	return s.subscribe(a, func(v any) {
		fn(cast[T](v))
	})
}
