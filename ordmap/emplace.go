package ordmap

import "github.com/GerHobbelt/xsg-go/internal/xlink"

// emplacer carries the state a single insertion threads through the
// recursive descent: the key/value being inserted, the comparator, and
// the node the descent ultimately lands on (freshly allocated or already
// present).
type emplacer[K, V any] struct {
	cmp      Comparator[K]
	key      K
	val      V
	reg      *xlink.Registry[node[K, V]]
	result   *node[K, V]
	resultP  *node[K, V]
	inserted bool
}

// walk descends to the leaf where key belongs, then checks balance
// bottom-up. It returns the (possibly rebuilt) root of the subtree rooted
// at n, the subtree's size, and whether the ancestors can skip their own
// balance check (true only when key was already present, so no node was
// added). A rebuild keeps the subtree's size, so every ancestor still
// checks its own balance after one; the highest violating ancestor is the
// last to rebuild.
func (e *emplacer[K, V]) walk(n, p *node[K, V]) (*node[K, V], int, bool) {
	c := e.cmp(e.key, n.key)

	var sl, sr int

	switch {
	case c < 0:
		if l := leftNode(n, p); l != nil {
			nn, s, done := e.walk(l, n)
			n.l = xlink.Encode(nn, p)

			if done {
				return n, 0, true
			}

			sl = s
		} else {
			q := &node[K, V]{key: e.key, val: e.val}
			e.reg.Pin(q)
			q.l, q.r = xlink.Encode[node[K, V]](nil, n), xlink.Encode[node[K, V]](nil, n)
			n.l = xlink.Encode(q, p)

			e.result, e.resultP, e.inserted = q, p, true
			sl = 1
		}

		sr = sizeOf(rightNode(n, p), n)
	case c > 0:
		if r := rightNode(n, p); r != nil {
			nn, s, done := e.walk(r, n)
			n.r = xlink.Encode(nn, p)

			if done {
				return n, 0, true
			}

			sr = s
		} else {
			q := &node[K, V]{key: e.key, val: e.val}
			e.reg.Pin(q)
			q.l, q.r = xlink.Encode[node[K, V]](nil, n), xlink.Encode[node[K, V]](nil, n)
			n.r = xlink.Encode(q, p)

			e.result, e.resultP, e.inserted = q, p, true
			sr = 1
		}

		sl = sizeOf(leftNode(n, p), n)
	default:
		e.result, e.resultP = n, p

		return n, 0, true
	}

	s := 1 + sl + sr
	if 3*sl > 2*s || 3*sr > 2*s {
		return rebuildSubtree(n, p, e.cmp), s, false
	}

	return n, s, false
}

// emplace finds or inserts key, returning the resulting node, its parent,
// and whether a new node was allocated.
func (m *Map[K, V]) emplace(key K, val V) (*node[K, V], *node[K, V], bool) {
	if m.root == nil {
		q := &node[K, V]{key: key, val: val}
		m.reg.Pin(q)
		m.root = q
		m.sz = 1

		return q, nil, true
	}

	e := &emplacer[K, V]{cmp: m.cmp, key: key, val: val, reg: &m.reg}

	root, _, _ := e.walk(m.root, nil)
	m.root = root

	if e.inserted {
		m.sz++

		// A rebuild may have moved the new node under a different parent.
		e.result, e.resultP = findNode(m.root, nil, m.cmp, key)
	}

	return e.result, e.resultP, e.inserted
}
