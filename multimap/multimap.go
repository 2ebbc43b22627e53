// Package multimap implements an ordered, multi-key container: the same
// XOR-linked scapegoat tree as ordmap, but with every value sharing a
// key stored in that key's own bucket rather than one tree node per
// value. Inserting a duplicate key never touches the tree's balance.
package multimap

import (
	"github.com/GerHobbelt/xsg-go/errs"
	"github.com/GerHobbelt/xsg-go/internal/debug"
	"github.com/GerHobbelt/xsg-go/internal/xlink"
)

// Map is an ordered multimap from K to V. The zero value is not usable;
// build one with New.
type Map[K, V any] struct {
	cmp  Comparator[K]
	root *node[K, V]
	reg  xlink.Registry[node[K, V]]
	keys int // distinct keys, drives scapegoat rebalancing
	sz   int // total values
}

// New builds an empty Map ordered by cmp.
func New[K, V any](cmp Comparator[K]) *Map[K, V] {
	debug.Assert(cmp != nil, "multimap.New: comparator must not be nil")

	return &Map[K, V]{cmp: cmp}
}

// Len reports the total number of values across every key.
func (m *Map[K, V]) Len() int { return m.sz }

// KeyCount reports the number of distinct keys.
func (m *Map[K, V]) KeyCount() int { return m.keys }

// Height reports the number of edges on the longest root-to-leaf path,
// measured in distinct keys, not values.
func (m *Map[K, V]) Height() int { return heightOf(m.root, nil) }

func safely(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errs.Recover(r)
		}
	}()

	fn()

	return nil
}

// Insert appends val under key, creating a new entry for key if none
// exists yet. It always succeeds: multimap never rejects a duplicate
// key.
func (m *Map[K, V]) Insert(key K, val V) (err error) {
	err = safely(func() {
		_, _, ins := m.emplace(key, val)
		m.sz++

		debug.Log(nil, "multimap.Insert", "key=%v newKey=%v size=%d", key, ins, m.sz)
	})

	return err
}

// Count reports how many values are stored under key.
func (m *Map[K, V]) Count(key K) int {
	n, _ := findNode(m.root, nil, m.cmp, key)
	if n == nil {
		return 0
	}

	return n.bucket.Len()
}

// Contains reports whether key has at least one value.
func (m *Map[K, V]) Contains(key K) bool {
	n, _ := findNode(m.root, nil, m.cmp, key)

	return n != nil
}

// Values returns a copy of every value stored under key, in insertion
// order.
func (m *Map[K, V]) Values(key K) []V {
	n, _ := findNode(m.root, nil, m.cmp, key)
	if n == nil {
		return nil
	}

	out := make([]V, 0, n.bucket.Len())
	for e := n.bucket.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(V))
	}

	return out
}

// Find returns a cursor on the first value stored under key, if any.
func (m *Map[K, V]) Find(key K) (Cursor[K, V], bool) {
	n, p := findNode(m.root, nil, m.cmp, key)
	if n == nil {
		return Cursor[K, V]{}, false
	}

	return Cursor[K, V]{cmp: m.cmp, n: n, p: p, elem: n.bucket.Front()}, true
}

// LowerBound returns a cursor on the first value of the first key not
// less than key, or an invalid cursor if every key is less than key.
func (m *Map[K, V]) LowerBound(key K) Cursor[K, V] {
	en, ep, gn, gp := equalRange(m.root, m.cmp, key)

	n, p := gn, gp
	if en != nil {
		n, p = en, ep
	}

	if n == nil {
		return Cursor[K, V]{}
	}

	return Cursor[K, V]{cmp: m.cmp, n: n, p: p, elem: n.bucket.Front()}
}

// UpperBound returns a cursor on the first value of the first key
// strictly greater than key.
func (m *Map[K, V]) UpperBound(key K) Cursor[K, V] {
	_, _, gn, gp := equalRange(m.root, m.cmp, key)
	if gn == nil {
		return Cursor[K, V]{}
	}

	return Cursor[K, V]{cmp: m.cmp, n: gn, p: gp, elem: gn.bucket.Front()}
}

// EqualRange returns the [first, last) cursor pair spanning every value
// stored under key.
func (m *Map[K, V]) EqualRange(key K) (first, last Cursor[K, V]) {
	return m.LowerBound(key), m.UpperBound(key)
}

// First returns a cursor on the first value of the smallest key.
func (m *Map[K, V]) First() Cursor[K, V] {
	if m.root == nil {
		return Cursor[K, V]{}
	}

	n, p := firstNode(m.root, nil)

	return Cursor[K, V]{cmp: m.cmp, n: n, p: p, elem: n.bucket.Front()}
}

// Last returns a cursor on the last value of the largest key.
func (m *Map[K, V]) Last() Cursor[K, V] {
	if m.root == nil {
		return Cursor[K, V]{}
	}

	n, p := lastNode(m.root, nil)

	return Cursor[K, V]{cmp: m.cmp, n: n, p: p, elem: n.bucket.Back()}
}

// DeleteKey removes every value stored under key, reporting how many
// were removed.
func (m *Map[K, V]) DeleteKey(key K) (removed int, err error) {
	err = safely(func() {
		removed = m.eraseKey(key)

		debug.Log(nil, "multimap.DeleteKey", "key=%v removed=%d size=%d", key, removed, m.sz)
	})

	return removed, err
}

// deleteCursor is DeleteCursor's body, factored out so DeleteRange can
// drive it across several values inside a single recover frame.
func (m *Map[K, V]) deleteCursor(c Cursor[K, V]) Cursor[K, V] {
	n, p, elem := c.n, c.p, c.elem

	if n.bucket.Len() == 1 {
		nn, np := m.eraseAt(n, p)
		m.sz--

		if nn == nil {
			return Cursor[K, V]{cmp: m.cmp}
		}

		return Cursor[K, V]{cmp: m.cmp, n: nn, p: np, elem: nn.bucket.Front()}
	}

	if elem.Next() == nil {
		nn, np := nextNode(n, p, m.cmp)
		n.bucket.Remove(elem)
		m.sz--

		if nn == nil {
			return Cursor[K, V]{cmp: m.cmp}
		}

		return Cursor[K, V]{cmp: m.cmp, n: nn, p: np, elem: nn.bucket.Front()}
	}

	after := elem.Next()
	n.bucket.Remove(elem)
	m.sz--

	return Cursor[K, V]{cmp: m.cmp, n: n, p: p, elem: after}
}

// DeleteCursor removes the single value c points at. If that was the
// last value under its key, the whole node is spliced out of the tree.
// Returns a cursor on the value that followed it. c must be Valid.
func (m *Map[K, V]) DeleteCursor(c Cursor[K, V]) (next Cursor[K, V], err error) {
	debug.Assert(c.n != nil && c.elem != nil, "multimap.DeleteCursor: cursor is not valid")

	err = safely(func() {
		next = m.deleteCursor(c)
	})

	return next, err
}

// DeleteRange removes every value in [first, last), the same "erase a
// whole span" contract as map.hpp's common iterator-pair erase:
// `for (; a != b; i = erase(a), a = i)`. Returns the count removed.
func (m *Map[K, V]) DeleteRange(first, last Cursor[K, V]) (n int, err error) {
	err = safely(func() {
		for first.Valid() && !(first.n == last.n && first.elem == last.elem) {
			first = m.deleteCursor(first)
			n++
		}
	})

	return n, err
}

// Assign replaces m's contents with a copy of src's, key order and each
// key's bucket order preserved. Assigning a Map to itself is a
// documented no-op rather than the self-assignment bug the original
// library leaves unguarded.
func (m *Map[K, V]) Assign(src *Map[K, V]) error {
	if m == src {
		return nil
	}

	m.Clear()

	for c := src.First(); c.Valid(); c = c.Next() {
		if err := m.Insert(c.Key(), c.Value()); err != nil {
			return err
		}
	}

	return nil
}

// Clear removes every key and value.
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
	m.keys = 0
	m.sz = 0
}
