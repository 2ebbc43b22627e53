package multimap

import "github.com/GerHobbelt/xsg-go/internal/xlink"

// emplacer threads a single insertion's state through the recursive
// descent. Unlike ordmap, finding an existing key is not a no-op: the new
// value is appended to that node's bucket and that node is reported via
// result with inserted left false, but the tree itself never changes.
type emplacer[K, V any] struct {
	cmp      Comparator[K]
	key      K
	val      V
	reg      *xlink.Registry[node[K, V]]
	result   *node[K, V]
	resultP  *node[K, V]
	inserted bool
}

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
			q := &node[K, V]{key: e.key}
			q.bucket.PushBack(e.val)
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
			q := &node[K, V]{key: e.key}
			q.bucket.PushBack(e.val)
			e.reg.Pin(q)
			q.l, q.r = xlink.Encode[node[K, V]](nil, n), xlink.Encode[node[K, V]](nil, n)
			n.r = xlink.Encode(q, p)

			e.result, e.resultP, e.inserted = q, p, true
			sr = 1
		}

		sl = sizeOf(leftNode(n, p), n)
	default:
		n.bucket.PushBack(e.val)
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

// emplace appends val under key, creating a new tree node only if key has
// no entries yet.
func (m *Map[K, V]) emplace(key K, val V) (*node[K, V], *node[K, V], bool) {
	if m.root == nil {
		q := &node[K, V]{key: key}
		q.bucket.PushBack(val)
		m.reg.Pin(q)
		m.root = q
		m.keys = 1

		return q, nil, true
	}

	e := &emplacer[K, V]{cmp: m.cmp, key: key, val: val, reg: &m.reg}

	root, _, _ := e.walk(m.root, nil)
	m.root = root

	if e.inserted {
		m.keys++
	}

	return e.result, e.resultP, e.inserted
}
