package multimap

import "github.com/GerHobbelt/xsg-go/internal/xlink"

// spliceOut removes the whole node n (bucket and all) from the tree. It
// is identical to ordmap's splice: the node on the other side of whatever
// link pointed at n is reparented in place with an XOR toggle, never a
// subtree rewrite.
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
	m.keys--

	return nnn, nnp
}

// eraseAt splices node n (parent p) out of the tree entirely, dropping
// every value in its bucket.
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

// eraseKey removes every value stored under key, reporting how many were
// removed.
func (m *Map[K, V]) eraseKey(key K) int {
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
			count := n.bucket.Len()
			m.spliceOut(pp, p, n, q)
			m.sz -= count

			return count
		}
	}

	return 0
}
