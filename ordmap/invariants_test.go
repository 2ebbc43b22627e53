package ordmap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// weightCheck walks the subtree rooted at (n, p), failing t if any node
// violates the §3 α-weight bound (3·sL ≤ 2·s, 3·sR ≤ 2·s), and returns
// the subtree's size.
func weightCheck(t *testing.T, n, p *node[int, int]) int {
	t.Helper()

	if n == nil {
		return 0
	}

	l, r := leftNode(n, p), rightNode(n, p)
	sl := weightCheck(t, l, n)
	sr := weightCheck(t, r, n)
	s := 1 + sl + sr

	require.Falsef(t, 3*sl > 2*s || 3*sr > 2*s,
		"alpha-weight balance violated at key=%d: size=%d left=%d right=%d", n.key, s, sl, sr)

	return s
}

func TestAlphaWeightBalanceHoldsAfterEveryInsert(t *testing.T) {
	m := New[int, int](OrderedComparator[int]())

	r := rand.New(rand.NewSource(17))

	for i := 0; i < 3000; i++ {
		_, _, _ = m.Insert(r.Intn(1000), i)
		weightCheck(t, m.root, nil)
	}
}

// bstOrderCheck fails t if some node's key does not strictly bound its
// left and right subtrees, the invariant the scapegoat rebuild and the
// erase splice must never violate.
func bstOrderCheck(t *testing.T, n, p *node[int, int], lo, hi *int) {
	t.Helper()

	if n == nil {
		return
	}

	require.Falsef(t, lo != nil && n.key <= *lo,
		"BST order violated: key=%d not greater than lower bound=%d", n.key, *lo)

	require.Falsef(t, hi != nil && n.key >= *hi,
		"BST order violated: key=%d not less than upper bound=%d", n.key, *hi)

	bstOrderCheck(t, leftNode(n, p), n, lo, &n.key)
	bstOrderCheck(t, rightNode(n, p), n, &n.key, hi)
}

func TestBSTOrderHoldsAfterInsertAndDeleteInterleaving(t *testing.T) {
	m := New[int, int](OrderedComparator[int]())

	r := rand.New(rand.NewSource(29))

	for i := 0; i < 4000; i++ {
		k := r.Intn(800)

		if r.Intn(3) == 0 {
			_, _ = m.Delete(k)
		} else {
			_, _, _ = m.Insert(k, i)
		}

		bstOrderCheck(t, m.root, nil, nil, nil)
	}
}

