package ordmap

// Cursor identifies a single entry in a Map by its node and that node's
// current parent. Neither field is an address a caller can compare across
// mutations of unrelated entries: a rebuild or splice can relocate any
// node's parent, so a Cursor is only valid until the next call that
// mutates the Map it came from.
type Cursor[K, V any] struct {
	cmp Comparator[K]
	n   *node[K, V]
	p   *node[K, V]
}

// Valid reports whether the cursor refers to an entry.
func (c Cursor[K, V]) Valid() bool { return c.n != nil }

// Key returns the entry's key. Panics if the cursor is not Valid.
func (c Cursor[K, V]) Key() K { return c.n.key }

// Value returns the entry's value. Panics if the cursor is not Valid.
func (c Cursor[K, V]) Value() V { return c.n.val }

// SetValue replaces the entry's value in place. Panics if the cursor is
// not Valid.
func (c Cursor[K, V]) SetValue(v V) { c.n.val = v }

// Next returns a cursor on the in-order successor of c, or an invalid
// cursor if c is already on the last entry.
func (c Cursor[K, V]) Next() Cursor[K, V] {
	if c.n == nil {
		return c
	}

	n, p := nextNode(c.n, c.p, c.cmp)

	return Cursor[K, V]{cmp: c.cmp, n: n, p: p}
}

// Prev returns a cursor on the in-order predecessor of c, or an invalid
// cursor if c is already on the first entry.
func (c Cursor[K, V]) Prev() Cursor[K, V] {
	if c.n == nil {
		return c
	}

	n, p := prevNode(c.n, c.p, c.cmp)

	return Cursor[K, V]{cmp: c.cmp, n: n, p: p}
}
