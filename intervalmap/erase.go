package intervalmap

import "github.com/GerHobbelt/xsg-go/internal/xlink"

// spliceOut removes node n (parent p, grandparent pp) entirely, the same
// structural splice ordmap and multimap use, plus the max-endpoint
// repair every affected ancestor needs: whichever node now stands in
// n's place has an m field reset_max recomputes by walking down from
// the root to it.
func (m *Map[K, V]) spliceOut(pp, p, n *node[K, V], q *xlink.Link) (*node[K, V], *node[K, V]) {
	nnn, nnp := nextNode(n, p, m.cmp)

	l, r := leftNode(n, p), rightNode(n, p)

	switch {
	case l != nil && r != nil:
		if sizeOf(r, n) > sizeOf(l, n) {
			fnn, fnp := firstNode(r, n)
			if fnn == nnn {
				nnp = p
			}

			nfnn := xlink.Encode(n, fnn)
			l.l ^= nfnn
			l.r ^= nfnn
			fnn.l = xlink.Encode(l, p)

			var resetFrom K

			if r == fnn {
				fnn.r ^= xlink.Encode(n, p)

				resetFrom = fnn.key
			} else {
				fnpp := leftNode(fnp, fnn)
				rn := rightNode(fnn, fnp)

				if rn != nil {
					fnnfnp := xlink.Encode(fnn, fnp)
					rn.l ^= fnnfnp
					rn.r ^= fnnfnp
				}

				fnp.l = xlink.Encode(rn, fnpp)

				r.l ^= nfnn
				r.r ^= nfnn
				fnn.r = xlink.Encode(r, p)

				resetFrom = fnp.key
			}

			if q != nil {
				*q = xlink.Encode(fnn, pp)
			} else {
				m.root = fnn
			}

			resetMax(m.root, nil, m.cmp, resetFrom)
		} else {
			lnn, lnp := lastNode(l, n)
			if r == nnn {
				nnp = lnn
			}

			nlnn := xlink.Encode(n, lnn)
			r.l ^= nlnn
			r.r ^= nlnn
			lnn.r = xlink.Encode(r, p)

			var resetFrom K

			if l == lnn {
				lnn.l ^= xlink.Encode(n, p)

				resetFrom = lnn.key
			} else {
				lnpp := rightNode(lnp, lnn)
				ln := leftNode(lnn, lnp)

				if ln != nil {
					lnnlnp := xlink.Encode(lnn, lnp)
					ln.l ^= lnnlnp
					ln.r ^= lnnlnp
				}

				lnp.r = xlink.Encode(ln, lnpp)

				l.l ^= nlnn
				l.r ^= nlnn
				lnn.l = xlink.Encode(l, p)

				resetFrom = lnp.key
			}

			if q != nil {
				*q = xlink.Encode(lnn, pp)
			} else {
				m.root = lnn
			}

			resetMax(m.root, nil, m.cmp, resetFrom)
		}
	default:
		lr := l
		if lr == nil {
			lr = r
		}

		if lr != nil {
			np := xlink.Encode(n, p)
			lr.l ^= np
			lr.r ^= np

			if lr == nnn {
				nnp = p
			}
		}

		if q != nil {
			*q = xlink.Encode(lr, pp)

			resetMax(m.root, nil, m.cmp, p.key)
		} else {
			m.root = lr
		}
	}

	m.reg.Unpin(n)
	m.keys--

	return nnn, nnp
}

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

// eraseKey removes every interval stored under the exact Lo key, the
// whole node and its bucket, reporting how many were removed.
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
