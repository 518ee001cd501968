package cell

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PrimitiveGetSet(t *testing.T) {
	s := NewStore()
	count := New(1)

	v, err := Get(s, count)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	require.NoError(t, Set(s, count, 5))
	assert.Equal(t, 5, MustGet(s, count))

	require.NoError(t, Update(s, count, func(old int) int { return old * 2 }))
	assert.Equal(t, 10, MustGet(s, count))
}

func TestStore_IndependentStores(t *testing.T) {
	a := NewStore()
	b := NewStore()
	name := New("initial")

	require.NoError(t, Set(a, name, "changed"))

	assert.Equal(t, "changed", MustGet(a, name))
	assert.Equal(t, "initial", MustGet(b, name))
}

func TestStore_DerivedRecomputes(t *testing.T) {
	s := NewStore()
	base := New(2)
	calls := 0
	double := Derived(func(r Reader) (int, error) {
		calls++
		v, err := Get(r, base)
		return v * 2, err
	})

	assert.Equal(t, 4, MustGet(s, double))
	assert.Equal(t, 4, MustGet(s, double))
	assert.Equal(t, 1, calls, "unchanged inputs must not recompute")

	require.NoError(t, Set(s, base, 3))
	assert.Equal(t, 2, calls, "set must recompute dependents eagerly")
	assert.Equal(t, 6, MustGet(s, double))
	assert.Equal(t, 2, calls)
}

func TestStore_DerivedChain(t *testing.T) {
	s := NewStore()
	base := New(1)
	plusOne := Derived(func(r Reader) (int, error) {
		v, err := Get(r, base)
		return v + 1, err
	})
	timesTen := Derived(func(r Reader) (int, error) {
		v, err := Get(r, plusOne)
		return v * 10, err
	})

	assert.Equal(t, 20, MustGet(s, timesTen))
	require.NoError(t, Set(s, base, 4))
	assert.Equal(t, 50, MustGet(s, timesTen))
}

func TestStore_DynamicDependencies(t *testing.T) {
	s := NewStore()
	useLeft := New(true)
	left := New("left")
	right := New("right")
	pick := Derived(func(r Reader) (string, error) {
		if MustGet(r, useLeft) {
			return Get(r, left)
		}
		return Get(r, right)
	})

	var seen []string
	unsubscribe := Subscribe(s, pick, func(v string) { seen = append(seen, v) })
	defer unsubscribe()

	require.NoError(t, Set(s, right, "right2"))
	assert.Empty(t, seen, "right is not a dependency yet")

	require.NoError(t, Set(s, useLeft, false))
	require.NoError(t, Set(s, left, "left2"))
	assert.Equal(t, []string{"right2"}, seen, "left is no longer a dependency")
}

func TestStore_ReadOnlyDerived(t *testing.T) {
	s := NewStore()
	ro := Derived(func(r Reader) (int, error) { return 1, nil }).Named("answer")

	err := Set(s, ro, 2)
	var roErr *ReadOnlyCellError
	require.True(t, errors.As(err, &roErr))
	assert.Equal(t, "answer", roErr.Cell)
	assert.Contains(t, err.Error(), "read-only")
}

func TestStore_WritableFansOut(t *testing.T) {
	s := NewStore()
	first := New("Ada")
	last := New("Lovelace")
	full := Writable(
		func(r Reader) (string, error) {
			return MustGet(r, first) + " " + MustGet(r, last), nil
		},
		func(r Reader, w Writer, v string) error {
			parts := strings.SplitN(v, " ", 2)
			if err := Set(w, first, parts[0]); err != nil {
				return err
			}
			return Set(w, last, parts[1])
		},
	)

	var seen []string
	unsubscribe := Subscribe(s, full, func(v string) { seen = append(seen, v) })
	defer unsubscribe()

	require.NoError(t, Set(s, full, "Grace Hopper"))

	assert.Equal(t, "Grace", MustGet(s, first))
	assert.Equal(t, "Hopper", MustGet(s, last))
	assert.Equal(t, "Grace Hopper", MustGet(s, full))
	assert.Equal(t, []string{"Grace Hopper"}, seen, "no intermediate state may be observed")
}

func TestStore_ReadAfterWriteInsideWrite(t *testing.T) {
	s := NewStore()
	base := New(1)
	double := Derived(func(r Reader) (int, error) { return MustGet(r, base) * 2, nil })

	var observed int
	err := s.Batch(func(w Writer) error {
		if err := Set(w, base, 21); err != nil {
			return err
		}
		v, err := Get(w, double)
		observed = v
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 42, observed)
}

func TestStore_SetIsIdempotent(t *testing.T) {
	metrics := NewMetricsObserver()
	s := NewStore(WithObserver(metrics))
	items := New([]string{"a"})

	notifications := 0
	unsubscribe := Subscribe(s, items, func([]string) { notifications++ })
	defer unsubscribe()

	require.NoError(t, Set(s, items, []string{"a", "b"}))
	require.NoError(t, Set(s, items, []string{"a", "b"}))

	assert.Equal(t, []string{"a", "b"}, MustGet(s, items))
	assert.Equal(t, 1, notifications)
	assert.Equal(t, int64(1), metrics.Snapshot().SetCount)
}

func TestStore_DerivedNotifiesOnlyOnChange(t *testing.T) {
	s := NewStore()
	n := New(1)
	parity := Derived(func(r Reader) (bool, error) { return MustGet(r, n)%2 == 0, nil })

	var seen []bool
	unsubscribe := Subscribe(s, parity, func(v bool) { seen = append(seen, v) })
	defer unsubscribe()

	require.NoError(t, Set(s, n, 3))
	require.NoError(t, Set(s, n, 4))
	require.NoError(t, Set(s, n, 6))

	assert.Equal(t, []bool{true}, seen)
}

func TestStore_Unsubscribe(t *testing.T) {
	s := NewStore()
	n := New(0)

	calls := 0
	unsubscribe := Subscribe(s, n, func(int) { calls++ })
	require.NoError(t, Set(s, n, 1))
	unsubscribe()
	unsubscribe()
	require.NoError(t, Set(s, n, 2))

	assert.Equal(t, 1, calls)
}

func TestStore_SubscriberCanWrite(t *testing.T) {
	s := NewStore()
	src := New(0)
	mirror := New(0)

	unsubscribe := Subscribe(s, src, func(v int) {
		require.NoError(t, Set(s, mirror, v))
	})
	defer unsubscribe()

	require.NoError(t, Set(s, src, 7))
	assert.Equal(t, 7, MustGet(s, mirror))
}

func TestStore_ReadErrorPropagates(t *testing.T) {
	s := NewStore()
	boom := errors.New("boom")
	flag := New(false)
	failing := Derived(func(r Reader) (int, error) {
		if MustGet(r, flag) {
			return 0, boom
		}
		return 1, nil
	})

	assert.Equal(t, 1, MustGet(s, failing))
	require.NoError(t, Set(s, flag, true))
	_, err := Get(s, failing)
	assert.ErrorIs(t, err, boom)
}

func TestStore_Cycle(t *testing.T) {
	s := NewStore()
	var a, b *Atom[int]
	a = Derived(func(r Reader) (int, error) { return Get(r, b) })
	b = Derived(func(r Reader) (int, error) { return Get(r, a) })

	_, err := Get(s, a)
	var cycle *CycleError
	assert.True(t, errors.As(err, &cycle))
}

func TestStore_Forget(t *testing.T) {
	s := NewStore()
	base := New(1)
	derived := Derived(func(r Reader) (int, error) { return MustGet(r, base), nil })

	MustGet(s, derived)
	assert.True(t, s.Has(base))
	assert.False(t, s.Forget(base), "base has a dependent")
	assert.True(t, s.Forget(derived))
	assert.True(t, s.Forget(base))
	assert.False(t, s.Has(base))
	assert.Equal(t, 0, s.Len())

	assert.Equal(t, 1, MustGet(s, base), "forgotten cells restart from their initial value")
}

func TestStore_BatchError(t *testing.T) {
	s := NewStore()
	n := New(0)
	fail := errors.New("stop")

	err := s.Batch(func(w Writer) error {
		if err := Set(w, n, 1); err != nil {
			return err
		}
		return fail
	})
	assert.ErrorIs(t, err, fail)
	assert.Equal(t, 1, MustGet(s, n), "writes before the error are kept")
}

func TestStore_BatchPanicReleasesLock(t *testing.T) {
	s := NewStore()
	n := New(0)
	var seen []int
	defer Subscribe(s, n, func(v int) { seen = append(seen, v) })()

	assert.PanicsWithValue(t, "boom", func() {
		_ = s.Batch(func(w Writer) error {
			if err := Set(w, n, 1); err != nil {
				return err
			}
			panic("boom")
		})
	})

	require.NoError(t, Set(s, n, 2))
	assert.Equal(t, 2, MustGet(s, n))
	assert.Equal(t, []int{2}, seen)

	derived := Derived(func(r Reader) (int, error) {
		panic("read")
	})
	assert.Panics(t, func() { Subscribe(s, derived, func(int) {}) })
	assert.Equal(t, 2, MustGet(s, n), "store is still usable")
}

func TestMetricsObserver(t *testing.T) {
	m := NewMetricsObserver()
	s := NewStore(WithObserver(m))
	n := New(0)
	d := Derived(func(r Reader) (int, error) { return MustGet(r, n) + 1, nil })

	unsubscribe := Subscribe(s, d, func(int) {})
	defer unsubscribe()
	require.NoError(t, Set(s, n, 1))
	_ = Set(s, d, 5)

	snap := m.Snapshot()
	assert.Equal(t, int64(1), snap.SetCount)
	assert.Equal(t, int64(2), snap.RecomputeCount)
	assert.Equal(t, int64(1), snap.NotifyCount)
	assert.Equal(t, int64(1), snap.ErrorCount)

	m.Reset()
	assert.Equal(t, MetricsSnapshot{}, m.Snapshot())
}
