package ordmap

import "github.com/GerHobbelt/xsg-go/internal/xlink"

// node is a single entry in the tree. Its only pointers to neighbours are
// the XOR-encoded l and r links; the node's parent is never stored, it is
// always supplied by whichever cursor is currently visiting the node.
type node[K any, V any] struct {
	l, r xlink.Link
	key  K
	val  V
}

func leftNode[K, V any](n, p *node[K, V]) *node[K, V]  { return xlink.Decode(n.l, p) }
func rightNode[K, V any](n, p *node[K, V]) *node[K, V] { return xlink.Decode(n.r, p) }

// firstNode walks left from (n, p) and returns the minimum node of that
// subtree together with its parent.
func firstNode[K, V any](n, p *node[K, V]) (*node[K, V], *node[K, V]) {
	for {
		l := leftNode(n, p)
		if l == nil {
			return n, p
		}
		n, p = l, n
	}
}

// lastNode walks right from (n, p) and returns the maximum node of that
// subtree together with its parent.
func lastNode[K, V any](n, p *node[K, V]) (*node[K, V], *node[K, V]) {
	for {
		r := rightNode(n, p)
		if r == nil {
			return n, p
		}
		n, p = r, n
	}
}

// nextNode returns the in-order successor of (n, p), or (nil, nil) if n is
// the maximum of the whole tree.
func nextNode[K, V any](n, p *node[K, V], cmp Comparator[K]) (*node[K, V], *node[K, V]) {
	if r := rightNode(n, p); r != nil {
		return firstNode(r, n)
	}

	for p != nil {
		if cmp(n.key, p.key) < 0 {
			return p, leftNode(p, n)
		}

		n, p = p, rightNode(p, n)
	}

	return nil, nil
}

// prevNode returns the in-order predecessor of (n, p), or (nil, nil) if n
// is the minimum of the whole tree.
func prevNode[K, V any](n, p *node[K, V], cmp Comparator[K]) (*node[K, V], *node[K, V]) {
	if l := leftNode(n, p); l != nil {
		return lastNode(l, n)
	}

	for p != nil {
		if cmp(n.key, p.key) > 0 {
			return p, rightNode(p, n)
		}

		n, p = p, leftNode(p, n)
	}

	return nil, nil
}

func heightOf[K, V any](n, p *node[K, V]) int {
	if n == nil {
		return 0
	}

	l, r := leftNode(n, p), rightNode(n, p)
	hl, hr := heightOf(l, n), heightOf(r, n)

	inc := 0
	if l != nil || r != nil {
		inc = 1
	}

	if hl > hr {
		return inc + hl
	}

	return inc + hr
}

func sizeOf[K, V any](n, p *node[K, V]) int {
	if n == nil {
		return 0
	}

	return 1 + sizeOf(leftNode(n, p), n) + sizeOf(rightNode(n, p), n)
}

func findNode[K, V any](n, p *node[K, V], cmp Comparator[K], k K) (*node[K, V], *node[K, V]) {
	for n != nil {
		c := cmp(k, n.key)

		switch {
		case c < 0:
			n, p = leftNode(n, p), n
		case c > 0:
			n, p = rightNode(n, p), n
		default:
			return n, p
		}
	}

	return nil, nil
}

// equalRange locates the node equal to k (if any) alongside the nearest
// node strictly greater than k, walking the tree once.
func equalRange[K, V any](root *node[K, V], cmp Comparator[K], k K) (en, ep, gn, gp *node[K, V]) {
	n, p := root, (*node[K, V])(nil)

	for n != nil {
		c := cmp(k, n.key)

		switch {
		case c < 0:
			l := leftNode(n, p)
			gn, gp = n, p
			n, p = l, n
		case c > 0:
			n, p = rightNode(n, p), n
		default:
			if r := rightNode(n, p); r != nil {
				gn, gp = firstNode(r, n)
			}

			return n, p, gn, gp
		}
	}

	return nil, nil, gn, gp
}

// rebuildSubtree flattens the subtree rooted at (n, p) into sorted order
// and rebuilds it as a perfectly weight-balanced tree, returning the new
// subtree root (already linked to p).
func rebuildSubtree[K, V any](n, p *node[K, V], cmp Comparator[K]) *node[K, V] {
	count := sizeOf(n, p)
	list := make([]*node[K, V], 0, count)

	cn, cp := firstNode(n, p)
	for i := 0; i < count; i++ {
		list = append(list, cn)
		cn, cp = nextNode(cn, cp, cmp)
	}

	var build func(parent *node[K, V], a, b int) *node[K, V]

	build = func(parent *node[K, V], a, b int) *node[K, V] {
		i := (a + b) / 2
		nd := list[i]

		switch b - a {
		case 0:
			nd.l, nd.r = xlink.Encode[node[K, V]](nil, parent), xlink.Encode[node[K, V]](nil, parent)
		case 1:
			nb := list[b]
			nd.l = xlink.Encode[node[K, V]](nil, parent)
			nd.r = xlink.Encode(nb, parent)
			nb.l, nb.r = xlink.Encode[node[K, V]](nil, nd), xlink.Encode[node[K, V]](nil, nd)
		default:
			left := build(nd, a, i-1)
			right := build(nd, i+1, b)
			nd.l = xlink.Encode(left, parent)
			nd.r = xlink.Encode(right, parent)
		}

		return nd
	}

	return build(p, 0, count-1)
}
