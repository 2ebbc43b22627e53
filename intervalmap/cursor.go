package intervalmap

import "container/list"

// Cursor identifies a single interval/value pair: the tree node its Lo
// lands on, that node's current parent, and the bucket element holding
// the pair. Iterating visits every pair across every Lo in ascending
// order, and in insertion order within a Lo's bucket.
type Cursor[K, V any] struct {
	cmp  Comparator[K]
	n    *node[K, V]
	p    *node[K, V]
	elem *list.Element
}

// Valid reports whether the cursor refers to a pair.
func (c Cursor[K, V]) Valid() bool { return c.n != nil && c.elem != nil }

// Interval returns the interval the cursor's pair was stored under.
// Panics if the cursor is not Valid.
func (c Cursor[K, V]) Interval() Interval[K] { return c.elem.Value.(bucketEntry[K, V]).iv }

// Value returns the value the cursor points at. Panics if the cursor is
// not Valid.
func (c Cursor[K, V]) Value() V { return c.elem.Value.(bucketEntry[K, V]).val }

// SetValue replaces the value in place, keeping the stored interval.
// Panics if the cursor is not Valid.
func (c Cursor[K, V]) SetValue(v V) {
	iv := c.elem.Value.(bucketEntry[K, V]).iv
	c.elem.Value = bucketEntry[K, V]{iv: iv, val: v}
}

// Next returns a cursor on the next pair: the following element in the
// same bucket if there is one, otherwise the first pair of the next Lo.
// Returns an invalid cursor once the last pair has been visited.
func (c Cursor[K, V]) Next() Cursor[K, V] {
	if c.n == nil {
		return c
	}

	if next := c.elem.Next(); next != nil {
		return Cursor[K, V]{cmp: c.cmp, n: c.n, p: c.p, elem: next}
	}

	nn, np := nextNode(c.n, c.p, c.cmp)
	if nn == nil {
		return Cursor[K, V]{cmp: c.cmp}
	}

	return Cursor[K, V]{cmp: c.cmp, n: nn, p: np, elem: nn.bucket.Front()}
}

// Prev returns a cursor on the previous pair, symmetric with Next.
func (c Cursor[K, V]) Prev() Cursor[K, V] {
	if c.n == nil {
		return c
	}

	if prev := c.elem.Prev(); prev != nil {
		return Cursor[K, V]{cmp: c.cmp, n: c.n, p: c.p, elem: prev}
	}

	pn, pp := prevNode(c.n, c.p, c.cmp)
	if pn == nil {
		return Cursor[K, V]{cmp: c.cmp}
	}

	return Cursor[K, V]{cmp: c.cmp, n: pn, p: pp, elem: pn.bucket.Back()}
}
