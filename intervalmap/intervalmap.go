// Package intervalmap implements an interval-stabbing container: the
// same XOR-linked scapegoat tree as ordmap, keyed on each interval's Lo
// endpoint, with every interval sharing a Lo in that node's bucket and
// every node augmented with the max Hi endpoint across its own subtree.
// Any and All answer which stored intervals overlap a query interval
// without visiting subtrees the augmentation rules out.
package intervalmap

import (
	"github.com/GerHobbelt/xsg-go/errs"
	"github.com/GerHobbelt/xsg-go/internal/debug"
	"github.com/GerHobbelt/xsg-go/internal/xlink"
)

// Map stores values keyed by Interval[K]. The zero value is not usable;
// build one with New.
type Map[K, V any] struct {
	cmp  Comparator[K]
	root *node[K, V]
	reg  xlink.Registry[node[K, V]]
	keys int // distinct Lo endpoints, drives scapegoat rebalancing
	sz   int // total intervals
}

// New builds an empty Map ordered by cmp.
func New[K, V any](cmp Comparator[K]) *Map[K, V] {
	debug.Assert(cmp != nil, "intervalmap.New: comparator must not be nil")

	return &Map[K, V]{cmp: cmp}
}

// Len reports the total number of intervals across every Lo.
func (m *Map[K, V]) Len() int { return m.sz }

// KeyCount reports the number of distinct Lo endpoints.
func (m *Map[K, V]) KeyCount() int { return m.keys }

// Height reports the number of edges on the longest root-to-leaf path,
// measured in distinct Lo endpoints, not intervals.
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

// Insert stores val under iv, creating a new tree node only if iv.Lo
// has no entries yet. It always succeeds: intervalmap never rejects a
// duplicate Lo, or even a duplicate interval.
func (m *Map[K, V]) Insert(iv Interval[K], val V) (err error) {
	debug.Assert(m.cmp(iv.Lo, iv.Hi) <= 0, "intervalmap.Insert: iv.Lo must not be greater than iv.Hi")

	err = safely(func() {
		_, _, ins := m.emplace(iv, val)
		m.sz++

		debug.Log(nil, "intervalmap.Insert", "iv=%v newKey=%v size=%d", iv, ins, m.sz)
	})

	return err
}

// Count reports how many stored intervals exactly equal iv (both
// endpoints), as opposed to merely overlapping it.
func (m *Map[K, V]) Count(iv Interval[K]) int {
	n, _ := findNode(m.root, nil, m.cmp, iv.Lo)
	if n == nil {
		return 0
	}

	count := 0

	for e := n.bucket.Front(); e != nil; e = e.Next() {
		if m.cmp(e.Value.(bucketEntry[K, V]).iv.Hi, iv.Hi) == 0 {
			count++
		}
	}

	return count
}

// Contains reports whether any interval is stored under lo.
func (m *Map[K, V]) Contains(lo K) bool {
	n, _ := findNode(m.root, nil, m.cmp, lo)

	return n != nil
}

// Find returns a cursor on the first interval stored under lo, if any.
func (m *Map[K, V]) Find(lo K) (Cursor[K, V], bool) {
	n, p := findNode(m.root, nil, m.cmp, lo)
	if n == nil {
		return Cursor[K, V]{}, false
	}

	return Cursor[K, V]{cmp: m.cmp, n: n, p: p, elem: n.bucket.Front()}, true
}

// LowerBound returns a cursor on the first interval of the first Lo not
// less than lo, or an invalid cursor if every Lo is less than lo.
func (m *Map[K, V]) LowerBound(lo K) Cursor[K, V] {
	en, ep, gn, gp := equalRange(m.root, m.cmp, lo)

	n, p := gn, gp
	if en != nil {
		n, p = en, ep
	}

	if n == nil {
		return Cursor[K, V]{}
	}

	return Cursor[K, V]{cmp: m.cmp, n: n, p: p, elem: n.bucket.Front()}
}

// UpperBound returns a cursor on the first interval of the first Lo
// strictly greater than lo.
func (m *Map[K, V]) UpperBound(lo K) Cursor[K, V] {
	_, _, gn, gp := equalRange(m.root, m.cmp, lo)
	if gn == nil {
		return Cursor[K, V]{}
	}

	return Cursor[K, V]{cmp: m.cmp, n: gn, p: gp, elem: gn.bucket.Front()}
}

// EqualRange returns the [first, last) cursor pair spanning every
// interval stored under lo.
func (m *Map[K, V]) EqualRange(lo K) (first, last Cursor[K, V]) {
	return m.LowerBound(lo), m.UpperBound(lo)
}

// First returns a cursor on the first interval of the smallest Lo.
func (m *Map[K, V]) First() Cursor[K, V] {
	if m.root == nil {
		return Cursor[K, V]{}
	}

	n, p := firstNode(m.root, nil)

	return Cursor[K, V]{cmp: m.cmp, n: n, p: p, elem: n.bucket.Front()}
}

// Last returns a cursor on the last interval of the largest Lo.
func (m *Map[K, V]) Last() Cursor[K, V] {
	if m.root == nil {
		return Cursor[K, V]{}
	}

	n, p := lastNode(m.root, nil)

	return Cursor[K, V]{cmp: m.cmp, n: n, p: p, elem: n.bucket.Back()}
}

// Any reports whether any stored interval overlaps query. A degenerate
// query (query.Lo == query.Hi) is a single-point query: it matches a
// stored interval containing that point, including one whose Lo is
// exactly that point.
func (m *Map[K, V]) Any(query Interval[K]) bool {
	if m.root == nil {
		return false
	}

	eq := m.cmp(query.Lo, query.Hi) == 0

	return anyNode(m.root, nil, m.cmp, query, eq)
}

// All calls visit once for every stored interval/value pair overlapping
// query, stopping early if visit returns false.
func (m *Map[K, V]) All(query Interval[K], visit func(Interval[K], V) bool) {
	if m.root == nil {
		return
	}

	eq := m.cmp(query.Lo, query.Hi) == 0

	allNode(m.root, nil, m.cmp, query, eq, visit)
}

// DeleteKey removes every interval stored under lo, reporting how many
// were removed.
func (m *Map[K, V]) DeleteKey(lo K) (removed int, err error) {
	err = safely(func() {
		removed = m.eraseKey(lo)

		debug.Log(nil, "intervalmap.DeleteKey", "lo=%v removed=%d size=%d", lo, removed, m.sz)
	})

	return removed, err
}

// deleteCursor is DeleteCursor's body, factored out so DeleteRange can
// drive it across several intervals inside a single recover frame.
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

	after := elem.Next()

	n.bucket.Remove(elem)
	m.sz--
	resetMax(m.root, nil, m.cmp, n.key)

	if after != nil {
		return Cursor[K, V]{cmp: m.cmp, n: n, p: p, elem: after}
	}

	nn, np := nextNode(n, p, m.cmp)
	if nn == nil {
		return Cursor[K, V]{cmp: m.cmp}
	}

	return Cursor[K, V]{cmp: m.cmp, n: nn, p: np, elem: nn.bucket.Front()}
}

// DeleteCursor removes the single interval c points at. If that was
// the last interval under its Lo, the whole node is spliced out of the
// tree and every ancestor's max-endpoint is repaired. Returns a cursor
// on the interval that followed it. c must be Valid.
func (m *Map[K, V]) DeleteCursor(c Cursor[K, V]) (next Cursor[K, V], err error) {
	debug.Assert(c.n != nil && c.elem != nil, "intervalmap.DeleteCursor: cursor is not valid")

	err = safely(func() {
		next = m.deleteCursor(c)
	})

	return next, err
}

// DeleteRange removes every interval in [first, last), the same "erase
// a whole span" contract as common.hpp's iterator-pair erase. Returns
// the count removed.
func (m *Map[K, V]) DeleteRange(first, last Cursor[K, V]) (n int, err error) {
	err = safely(func() {
		for first.Valid() && !(first.n == last.n && first.elem == last.elem) {
			first = m.deleteCursor(first)
			n++
		}
	})

	return n, err
}

// Assign replaces m's contents with a copy of src's, Lo order and each
// Lo's bucket order preserved. Assigning a Map to itself is a
// documented no-op rather than the self-assignment bug the original
// library leaves unguarded.
func (m *Map[K, V]) Assign(src *Map[K, V]) error {
	if m == src {
		return nil
	}

	m.Clear()

	for c := src.First(); c.Valid(); c = c.Next() {
		if err := m.Insert(c.Interval(), c.Value()); err != nil {
			return err
		}
	}

	return nil
}

// Clear removes every interval.
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
