// Package ordmap implements an ordered, unique-key container backed by an
// XOR-linked scapegoat tree: nodes store the bitwise XOR of their left and
// right children's addresses with their own parent's address instead of
// two separate child pointers plus a parent pointer, and rebalance by
// rebuilding whichever subtree the latest insertion made too lopsided
// rather than through per-node rotations.
package ordmap

import (
	"github.com/GerHobbelt/xsg-go/errs"
	"github.com/GerHobbelt/xsg-go/internal/debug"
	"github.com/GerHobbelt/xsg-go/internal/xlink"
)

// Map is an ordered map from K to V. The zero value is not usable; build
// one with New.
type Map[K, V any] struct {
	cmp  Comparator[K]
	root *node[K, V]
	reg  xlink.Registry[node[K, V]]
	sz   int
}

// New builds an empty Map ordered by cmp.
func New[K, V any](cmp Comparator[K]) *Map[K, V] {
	debug.Assert(cmp != nil, "ordmap.New: comparator must not be nil")

	return &Map[K, V]{cmp: cmp}
}

// Len reports the number of entries.
func (m *Map[K, V]) Len() int { return m.sz }

// Height reports the number of edges on the longest root-to-leaf path.
// An empty map has height 0, as does a single-entry map.
func (m *Map[K, V]) Height() int { return heightOf(m.root, nil) }

// safely runs fn, recovering any panic (a panicking Comparator, most
// commonly) into an error rather than letting it unwind through the
// tree's own bookkeeping.
func safely(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errs.Recover(r)
		}
	}()

	fn()

	return nil
}

// Insert adds key with value val if key is not already present.
// inserted reports whether a new entry was created; when it is false,
// the map is unchanged and prev holds the entry's existing value.
func (m *Map[K, V]) Insert(key K, val V) (prev V, inserted bool, err error) {
	err = safely(func() {
		n, _, ins := m.emplace(key, val)
		inserted = ins

		if !ins {
			prev = n.val
		}

		debug.Log(nil, "ordmap.Insert", "key=%v inserted=%v size=%d", key, inserted, m.sz)
	})

	return prev, inserted, err
}

// InsertOrAssign inserts key/val, or overwrites the value of an existing
// entry for key. inserted reports whether a new entry was created.
func (m *Map[K, V]) InsertOrAssign(key K, val V) (inserted bool, err error) {
	err = safely(func() {
		n, _, ins := m.emplace(key, val)
		inserted = ins

		if !ins {
			n.val = val
		}

		debug.Log(nil, "ordmap.InsertOrAssign", "key=%v inserted=%v size=%d", key, inserted, m.sz)
	})

	return inserted, err
}

// Get returns the value stored for key, if any.
func (m *Map[K, V]) Get(key K) (val V, ok bool) {
	n, _ := findNode(m.root, nil, m.cmp, key)
	if n == nil {
		return val, false
	}

	return n.val, true
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	n, _ := findNode(m.root, nil, m.cmp, key)

	return n != nil
}

// Find returns a cursor on key's entry, if present.
func (m *Map[K, V]) Find(key K) (Cursor[K, V], bool) {
	n, p := findNode(m.root, nil, m.cmp, key)
	if n == nil {
		return Cursor[K, V]{}, false
	}

	return Cursor[K, V]{cmp: m.cmp, n: n, p: p}, true
}

// LowerBound returns a cursor on the first entry not less than key, or an
// invalid cursor if every entry is less than key.
func (m *Map[K, V]) LowerBound(key K) Cursor[K, V] {
	en, ep, gn, gp := equalRange(m.root, m.cmp, key)
	if en != nil {
		return Cursor[K, V]{cmp: m.cmp, n: en, p: ep}
	}

	return Cursor[K, V]{cmp: m.cmp, n: gn, p: gp}
}

// UpperBound returns a cursor on the first entry strictly greater than
// key, or an invalid cursor if no entry is greater than key.
func (m *Map[K, V]) UpperBound(key K) Cursor[K, V] {
	_, _, gn, gp := equalRange(m.root, m.cmp, key)

	return Cursor[K, V]{cmp: m.cmp, n: gn, p: gp}
}

// EqualRange returns the [first, last) cursor pair spanning key's entry:
// a single entry wide if key is present, empty (first == last) otherwise.
func (m *Map[K, V]) EqualRange(key K) (first, last Cursor[K, V]) {
	return m.LowerBound(key), m.UpperBound(key)
}

// First returns a cursor on the smallest entry, or an invalid cursor if
// the map is empty.
func (m *Map[K, V]) First() Cursor[K, V] {
	if m.root == nil {
		return Cursor[K, V]{}
	}

	n, p := firstNode(m.root, nil)

	return Cursor[K, V]{cmp: m.cmp, n: n, p: p}
}

// Last returns a cursor on the largest entry, or an invalid cursor if the
// map is empty.
func (m *Map[K, V]) Last() Cursor[K, V] {
	if m.root == nil {
		return Cursor[K, V]{}
	}

	n, p := lastNode(m.root, nil)

	return Cursor[K, V]{cmp: m.cmp, n: n, p: p}
}

// Delete removes key, reporting whether it was present.
func (m *Map[K, V]) Delete(key K) (deleted bool, err error) {
	err = safely(func() {
		deleted = m.eraseKey(key)

		debug.Log(nil, "ordmap.Delete", "key=%v deleted=%v size=%d", key, deleted, m.sz)
	})

	return deleted, err
}

// DeleteCursor removes the entry c points at, returning a cursor on its
// in-order successor so iteration can continue. c must be Valid.
func (m *Map[K, V]) DeleteCursor(c Cursor[K, V]) (next Cursor[K, V], err error) {
	debug.Assert(c.n != nil, "ordmap.DeleteCursor: cursor is not valid")

	err = safely(func() {
		nn, np := m.eraseAt(c.n, c.p)
		next = Cursor[K, V]{cmp: m.cmp, n: nn, p: np}
	})

	return next, err
}

// DeleteRange removes every entry in [first, last), returning the count
// removed.
func (m *Map[K, V]) DeleteRange(first, last Cursor[K, V]) (n int, err error) {
	err = safely(func() {
		for first.Valid() && first.n != last.n {
			var nn, np *node[K, V]
			nn, np = m.eraseAt(first.n, first.p)
			first = Cursor[K, V]{cmp: m.cmp, n: nn, p: np}
			n++
		}
	})

	return n, err
}

// Assign replaces m's contents with a copy of src's. Assigning a Map to
// itself is a documented no-op rather than the self-assignment bug the
// original library leaves unguarded: clearing src before copying it back
// into itself would otherwise discard everything.
func (m *Map[K, V]) Assign(src *Map[K, V]) error {
	if m == src {
		return nil
	}

	m.Clear()

	for c := src.First(); c.Valid(); c = c.Next() {
		if _, _, err := m.Insert(c.Key(), c.Value()); err != nil {
			return err
		}
	}

	return nil
}

// Clear removes every entry.
func (m *Map[K, V]) Clear() {
	var unpin func(n, p *node[K, V])

	unpin = func(n, p *node[K, V]) {
		if n == nil {
			return
		}

		unpin(leftNode(n, p), n)
		unpin(rightNode(n, p), n)
		m.reg.Unpin(n)
	}

	unpin(m.root, nil)

	m.root = nil
	m.sz = 0
}
