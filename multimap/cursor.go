package multimap

import "container/list"

// Cursor identifies a single value stored under some key: the tree node
// that key lives on, that node's current parent, and the bucket element
// holding the value. Iterating visits every value across every key in
// ascending key order, and in insertion order within a key's bucket.
type Cursor[K, V any] struct {
	cmp  Comparator[K]
	n    *node[K, V]
	p    *node[K, V]
	elem *list.Element
}

// Valid reports whether the cursor refers to a value.
func (c Cursor[K, V]) Valid() bool { return c.n != nil && c.elem != nil }

// Key returns the key the cursor's value is stored under. Panics if the
// cursor is not Valid.
func (c Cursor[K, V]) Key() K { return c.n.key }

// Value returns the value the cursor points at. Panics if the cursor is
// not Valid.
func (c Cursor[K, V]) Value() V { return c.elem.Value.(V) }

// SetValue replaces the value in place. Panics if the cursor is not
// Valid.
func (c Cursor[K, V]) SetValue(v V) { c.elem.Value = v }

// Next returns a cursor on the next value: the following element in the
// same bucket if there is one, otherwise the first value of the next
// key. Returns an invalid cursor once the last value has been visited.
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

// Prev returns a cursor on the previous value, symmetric with Next.
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
