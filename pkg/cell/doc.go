// Package cell provides a small synchronous dataflow engine: primitive cells,
// derived cells computed from other cells, and families that memoize cells by
// string key.
//
// Cells are declared as *Atom values and hold no state themselves. State lives
// in a Store, which is passed explicitly so that independent documents and
// tests never share cells.
//
// # Usage
//
//	store := cell.NewStore()
//	first := cell.New("Ada")
//	last := cell.New("Lovelace")
//	full := cell.Writable(
//	    func(r cell.Reader) (string, error) {
//	        f, _ := cell.Get(r, first)
//	        l, _ := cell.Get(r, last)
//	        return f + " " + l, nil
//	    },
//	    func(r cell.Reader, w cell.Writer, v string) error {
//	        parts := strings.SplitN(v, " ", 2)
//	        if err := cell.Set(w, first, parts[0]); err != nil {
//	            return err
//	        }
//	        return cell.Set(w, last, parts[1])
//	    },
//	)
//
//	unsubscribe := cell.Subscribe(store, full, func(v string) { fmt.Println(v) })
//	defer unsubscribe()
//	_ = cell.Set(store, full, "Grace Hopper") // prints "Grace Hopper" once
//
// # Propagation
//
// Every top-level Set, Update or Batch is one batch. Writes inside it are
// applied immediately, dependent derived cells are invalidated, and when the
// batch ends every invalidated cell is recomputed before the call returns.
// Subscribers are notified once per batch with the settled value, so the
// intermediate states of a multi-cell write are never observed.
//
// Setting a value equal to the current one is a no-op. Equality defaults to
// reflect.DeepEqual and can be replaced per atom with WithEqual.
package cell
