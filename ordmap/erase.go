package ordmap

import "github.com/GerHobbelt/xsg-go/internal/xlink"

// spliceOut removes n (parent p, grandparent pp) from the tree, rewriting
// whichever single link pointed at n: *q if n hangs off a parent, or the
// tree's root field if n was the root. It returns the in-order successor
// of the removed node, the cursor a caller can resume iteration from.
//
// This never rewalks or rebuilds the subtrees below n: the node that
// replaces n (a successor or predecessor donor) is reparented in place
// with O(1) XOR toggles per affected child, the same trick that makes
// insert's rebuild the only place this tree ever touches more than a
// handful of nodes.
func (m *Map[K, V]) spliceOut(pp, p, n *node[K, V], q *xlink.Link) (*node[K, V], *node[K, V]) {
	nnn, nnp := nextNode(n, p, m.cmp)

	l, r := leftNode(n, p), rightNode(n, p)

	switch {
	case l != nil && r != nil:
		if sizeOf(l, n) < sizeOf(r, n) {
			fnn, fnp := firstNode(r, n)
			if fnn == nnn {
				nnp = p
			}

			if q != nil {
				*q = xlink.Encode(fnn, pp)
			} else {
				m.root = fnn
			}

			fnn.l = xlink.Encode(l, p)

			nfnn := xlink.Encode(n, fnn)
			l.l ^= nfnn
			l.r ^= nfnn

			if r == fnn {
				r.r ^= xlink.Encode(n, p)
			} else {
				fnpp := leftNode(fnp, fnn)
				rn := rightNode(fnn, fnp)
				fnp.l = xlink.Encode(rn, fnpp)

				if rn != nil {
					fnnfnp := xlink.Encode(fnn, fnp)
					rn.l ^= fnnfnp
					rn.r ^= fnnfnp
				}

				fnn.r = xlink.Encode(r, p)
				r.l ^= nfnn
				r.r ^= nfnn
			}
		} else {
			lnn, lnp := lastNode(l, n)
			if r == nnn {
				nnp = lnn
			}

			if q != nil {
				*q = xlink.Encode(lnn, pp)
			} else {
				m.root = lnn
			}

			lnn.r = xlink.Encode(r, p)

			nlnn := xlink.Encode(n, lnn)
			r.l ^= nlnn
			r.r ^= nlnn

			if l == lnn {
				l.l ^= xlink.Encode(n, p)
			} else {
				lnpp := rightNode(lnp, lnn)
				ln := leftNode(lnn, lnp)
				lnp.r = xlink.Encode(ln, lnpp)

				if ln != nil {
					lnnlnp := xlink.Encode(lnn, lnp)
					ln.l ^= lnnlnp
					ln.r ^= lnnlnp
				}

				lnn.l = xlink.Encode(l, p)
				l.l ^= nlnn
				l.r ^= nlnn
			}
		}
	default:
		lr := l
		if lr == nil {
			lr = r
		}

		if lr != nil {
			if lr == nnn {
				nnp = p
			}

			np := xlink.Encode(n, p)
			lr.l ^= np
			lr.r ^= np
		}

		if q != nil {
			*q = xlink.Encode(lr, pp)
		} else {
			m.root = lr
		}
	}

	m.reg.Unpin(n)
	m.sz--

	return nnn, nnp
}

// eraseKey locates key and splices it out, reporting whether it was
// present.
func (m *Map[K, V]) eraseKey(key K) bool {
	var pp, p *node[K, V]

	var q *xlink.Link

	n := m.root

	for n != nil {
		c := m.cmp(key, n.key)

		switch {
		case c < 0:
			next := leftNode(n, p)
			pp, p, q = p, n, &n.l
			n = next
		case c > 0:
			next := rightNode(n, p)
			pp, p, q = p, n, &n.r
			n = next
		default:
			m.spliceOut(pp, p, n, q)

			return true
		}
	}

	return false
}

// eraseAt splices out the node a cursor points at, given its parent.
func (m *Map[K, V]) eraseAt(n, p *node[K, V]) (*node[K, V], *node[K, V]) {
	var pp *node[K, V]

	var q *xlink.Link

	if p != nil {
		if m.cmp(n.key, p.key) < 0 {
			pp, q = leftNode(p, n), &p.l
		} else {
			pp, q = rightNode(p, n), &p.r
		}
	}

	return m.spliceOut(pp, p, n, q)
}
