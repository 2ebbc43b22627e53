package multimap

import (
	"container/list"

	"github.com/GerHobbelt/xsg-go/internal/xlink"
)

// node is a single distinct key in the tree. Every value inserted under
// an equal key lands in the same node's bucket rather than creating a
// new tree node, so the tree's own weight-balance accounting is driven
// entirely by the number of distinct keys, never by how many values a
// single key accumulates.
type node[K, V any] struct {
	l, r   xlink.Link
	key    K
	bucket list.List
}

func leftNode[K, V any](n, p *node[K, V]) *node[K, V]  { return xlink.Decode(n.l, p) }
func rightNode[K, V any](n, p *node[K, V]) *node[K, V] { return xlink.Decode(n.r, p) }

func firstNode[K, V any](n, p *node[K, V]) (*node[K, V], *node[K, V]) {
	for {
		l := leftNode(n, p)
		if l == nil {
			return n, p
		}
		n, p = l, n
	}
}

func lastNode[K, V any](n, p *node[K, V]) (*node[K, V], *node[K, V]) {
	for {
		r := rightNode(n, p)
		if r == nil {
			return n, p
		}
		n, p = r, n
	}
}

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

// sizeOf counts distinct keys in the subtree, not total values.
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
