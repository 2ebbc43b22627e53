package intervalmap

import "github.com/GerHobbelt/xsg-go/internal/xlink"

type emplacer[K, V any] struct {
	cmp      Comparator[K]
	iv       Interval[K]
	val      V
	reg      *xlink.Registry[node[K, V]]
	result   *node[K, V]
	resultP  *node[K, V]
	inserted bool
}

func newLeaf[K, V any](iv Interval[K], val V) *node[K, V] {
	q := &node[K, V]{key: iv.Lo, m: iv.Hi}
	q.bucket.PushBack(bucketEntry[K, V]{iv: iv, val: val})

	return q
}

// walk descends to the leaf where iv.Lo belongs, maintaining m
// monotonically on every node it visits along the way (this is the only
// place m ever grows outside of a rebuild or reset_max repair), then
// rebuilds bottom-up exactly as ordmap does.
func (e *emplacer[K, V]) walk(n, p *node[K, V]) (*node[K, V], int, bool) {
	n.m = maxK(e.cmp, n.m, e.iv.Hi)

	c := e.cmp(e.iv.Lo, n.key)

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
			q := newLeaf(e.iv, e.val)
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
			q := newLeaf(e.iv, e.val)
			e.reg.Pin(q)
			q.l, q.r = xlink.Encode[node[K, V]](nil, n), xlink.Encode[node[K, V]](nil, n)
			n.r = xlink.Encode(q, p)

			e.result, e.resultP, e.inserted = q, p, true
			sr = 1
		}

		sl = sizeOf(leftNode(n, p), n)
	default:
		n.bucket.PushBack(bucketEntry[K, V]{iv: e.iv, val: e.val})
		e.result, e.resultP = n, p

		return n, 0, true
	}

	s := 1 + sl + sr
	if 3*sl > 2*s || 3*sr > 2*s {
		// A rebuild keeps the subtree's size, so the ancestors still
		// check their own balance; the highest violating one rebuilds last.
		return rebuildSubtree(n, p, e.cmp), s, false
	}

	return n, s, false
}

// emplace inserts iv/val, creating a new tree node only if iv.Lo has no
// entries yet.
func (m *Map[K, V]) emplace(iv Interval[K], val V) (*node[K, V], *node[K, V], bool) {
	if m.root == nil {
		q := newLeaf(iv, val)
		m.reg.Pin(q)
		m.root = q
		m.keys = 1

		return q, nil, true
	}

	e := &emplacer[K, V]{cmp: m.cmp, iv: iv, val: val, reg: &m.reg}

	root, _, _ := e.walk(m.root, nil)
	m.root = root

	if e.inserted {
		m.keys++
	}

	return e.result, e.resultP, e.inserted
}
