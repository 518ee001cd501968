package cell

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/nksaraf/magiql/pkg/logging"
)

// Store holds the state of every cell used with it: primitive values, cached
// derived values, the dependency graph and subscriptions.
//
// All public entry points take the store lock. Read and write functions run
// under that lock and must only touch cells through the Reader/Writer they are
// given; calling Get or Set on the *Store from inside them deadlocks.
// Subscribers are called after the lock is released.
type Store struct {
	mu      sync.Mutex
	entries map[uint64]*entry

	// batch state
	depth   int
	dirty   map[uint64]*entry
	touched map[uint64]*entry

	nextListener int
	observer     Observer
	logger       *slog.Logger
}

type entry struct {
	cell  Cell
	value any
	err   error

	ready     bool
	stale     bool
	computing bool

	deps       map[uint64]*entry
	dependents map[uint64]*entry

	listeners []listener
	seen      any
}

type listener struct {
	id int
	fn func(any)
}

type notification struct {
	value     any
	listeners []listener
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithObserver installs observability hooks.
func WithObserver(o Observer) StoreOption {
	return func(s *Store) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		entries:  make(map[uint64]*entry),
		dirty:    make(map[uint64]*entry),
		touched:  make(map[uint64]*entry),
		observer: &NoopObserver{},
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len returns the number of cells that currently have state in the store.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Has reports whether c has state in the store, i.e. it has been read,
// written or subscribed to.
func (s *Store) Has(c Cell) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[c.cellID()]
	return ok
}

// Batch runs fn as a single batch: derived cells are recomputed and
// subscribers notified once, after fn returns. Writes made before an error
// are kept.
func (s *Store) Batch(fn func(w Writer) error) error {
	pending, err := s.batch(fn)
	deliver(pending)
	return err
}

// batch runs fn under the lock. A panic in fn releases the lock and the batch
// depth before it propagates; writes staged so far are flushed by the next
// batch.
func (s *Store) batch(fn func(w Writer) error) ([]notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.depth++
	err := func() error {
		defer func() { s.depth-- }()
		return fn(&txn{s: s})
	}()
	return s.flush(), err
}

// Forget drops the state of c. Cells that are observed or that other cells
// depend on are kept; the return value reports whether c was dropped.
func (s *Store) Forget(c Cell) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[c.cellID()]
	if !ok {
		return false
	}
	if len(e.listeners) > 0 || len(e.dependents) > 0 {
		return false
	}
	for _, d := range e.deps {
		delete(d.dependents, c.cellID())
	}
	delete(s.entries, c.cellID())
	delete(s.dirty, c.cellID())
	delete(s.touched, c.cellID())
	return true
}

func (s *Store) load(c Cell) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(c, nil)
}

func (s *Store) store(c Cell, v any) error {
	return s.Batch(func(w Writer) error {
		return w.store(c, v)
	})
}

func (s *Store) modify(c Cell, fn func(old any) any) error {
	return s.Batch(func(w Writer) error {
		return w.modify(c, fn)
	})
}

func (s *Store) subscribe(c Cell, fn func(any)) func() {
	e, id := s.mount(c, fn)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, l := range e.listeners {
				if l.id == id {
					e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
					break
				}
			}
		})
	}
}

func (s *Store) mount(c Cell, fn func(any)) (*entry, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entry(c)
	if c.derived() && (!e.ready || e.stale) {
		// Mounting computes the value so dependency edges exist before the
		// first write.
		_, _ = s.recompute(e)
	}
	e.seen = e.value
	s.nextListener++
	e.listeners = append(e.listeners, listener{id: s.nextListener, fn: fn})
	return e, s.nextListener
}

// entry returns the state for c, creating it on first access.
func (s *Store) entry(c Cell) *entry {
	if e, ok := s.entries[c.cellID()]; ok {
		return e
	}
	e := &entry{
		cell:       c,
		deps:       make(map[uint64]*entry),
		dependents: make(map[uint64]*entry),
	}
	if !c.derived() {
		e.value = c.initial()
		e.ready = true
	}
	s.entries[c.cellID()] = e
	return e
}

// read returns the value of c, recording a dependency edge from owner when
// owner is non-nil.
func (s *Store) read(c Cell, owner *entry) (any, error) {
	e := s.entry(c)
	if owner != nil {
		owner.deps[c.cellID()] = e
		e.dependents[owner.cell.cellID()] = owner
	}
	if !c.derived() || (e.ready && !e.stale) {
		return e.value, e.err
	}
	return s.recompute(e)
}

func (s *Store) recompute(e *entry) (any, error) {
	label := e.cell.String()
	if e.computing {
		err := &CycleError{Cell: label}
		s.observer.OnError(label, "read", err)
		return nil, err
	}

	id := e.cell.cellID()
	for _, d := range e.deps {
		delete(d.dependents, id)
	}
	e.deps = make(map[uint64]*entry)

	start := time.Now()
	v, err := func() (any, error) {
		e.computing = true
		defer func() { e.computing = false }()
		return e.cell.compute(&tracker{s: s, owner: e})
	}()

	e.value, e.err = v, err
	e.ready, e.stale = true, false
	if err != nil {
		s.observer.OnError(label, "read", err)
		s.logger.Debug("cell read failed", "cell", label, "error", err)
	}
	s.observer.OnRecompute(label, time.Since(start))
	return v, err
}

func (s *Store) write(c Cell, v any) error {
	label := c.String()
	if !c.writable() {
		err := &ReadOnlyCellError{Cell: label}
		s.observer.OnError(label, "write", err)
		return err
	}

	if c.derived() {
		if err := c.apply(&txn{s: s}, v); err != nil {
			s.observer.OnError(label, "write", err)
			return err
		}
		return nil
	}

	e := s.entry(c)
	if c.same(e.value, v) {
		return nil
	}
	e.value = v
	s.touched[c.cellID()] = e
	s.invalidate(e)
	s.observer.OnSet(label)
	return nil
}

// invalidate marks every transitive dependent of e stale.
func (s *Store) invalidate(e *entry) {
	for id, d := range e.dependents {
		if d.stale {
			continue
		}
		d.stale = true
		s.dirty[id] = d
		s.invalidate(d)
	}
}

// flush finishes the outermost batch: stale derived cells are recomputed
// eagerly and the notifications to deliver are collected.
func (s *Store) flush() []notification {
	if s.depth > 0 {
		return nil
	}

	for len(s.dirty) > 0 {
		for id, e := range s.dirty {
			delete(s.dirty, id)
			s.touched[id] = e
			if e.stale {
				_, _ = s.recompute(e)
			}
		}
	}

	if len(s.touched) == 0 {
		return nil
	}

	changed := make([]*entry, 0, len(s.touched))
	for id, e := range s.touched {
		delete(s.touched, id)
		if len(e.listeners) == 0 || e.cell.same(e.seen, e.value) {
			continue
		}
		changed = append(changed, e)
	}
	sort.Slice(changed, func(i, j int) bool {
		return changed[i].cell.cellID() < changed[j].cell.cellID()
	})

	pending := make([]notification, 0, len(changed))
	for _, e := range changed {
		e.seen = e.value
		ls := make([]listener, len(e.listeners))
		copy(ls, e.listeners)
		pending = append(pending, notification{value: e.value, listeners: ls})
		s.observer.OnNotify(e.cell.String(), len(ls))
	}
	return pending
}

func deliver(pending []notification) {
	for _, n := range pending {
		for _, l := range n.listeners {
			l.fn(n.value)
		}
	}
}

// tracker is the Reader handed to read functions.
type tracker struct {
	s     *Store
	owner *entry
}

func (t *tracker) load(c Cell) (any, error) {
	return t.s.read(c, t.owner)
}

// txn is the Writer handed to write functions and Batch callbacks. It runs
// under the store lock inside an open batch.
type txn struct {
	s *Store
}

func (t *txn) load(c Cell) (any, error) {
	return t.s.read(c, nil)
}

func (t *txn) store(c Cell, v any) error {
	return t.s.write(c, v)
}

func (t *txn) modify(c Cell, fn func(old any) any) error {
	old, err := t.s.read(c, nil)
	if err != nil {
		return err
	}
	return t.s.write(c, fn(old))
}
