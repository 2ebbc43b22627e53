package intervalmap

// allNode walks the subtree rooted at n (parent p), visiting every
// bucket entry whose interval overlaps query: query.Lo < entry.Hi and
// entry.Lo < query.Hi (the eq case lets a degenerate point query at
// query.Hi == entry.Lo still match). The m augmentation prunes any
// subtree whose largest Hi can't reach query.Lo. Stops early, returning
// false, the first time visit returns false.
func allNode[K, V any](n, p *node[K, V], cmp Comparator[K], query Interval[K], eq bool, visit func(Interval[K], V) bool) bool {
	if n == nil || cmp(query.Lo, n.m) >= 0 {
		return true
	}

	c := cmp(query.Hi, n.key)
	cg0 := c > 0

	if cg0 || (eq && c == 0) {
		for e := n.bucket.Front(); e != nil; e = e.Next() {
			be := e.Value.(bucketEntry[K, V])

			if cmp(query.Lo, be.iv.Hi) < 0 {
				if !visit(be.iv, be.val) {
					return false
				}
			}
		}

		if cg0 {
			if !allNode(rightNode(n, p), n, cmp, query, eq, visit) {
				return false
			}
		}
	}

	return allNode(leftNode(n, p), n, cmp, query, eq, visit)
}

// anyNode is allNode's short-circuiting twin: true as soon as a single
// overlapping entry is found.
func anyNode[K, V any](n, p *node[K, V], cmp Comparator[K], query Interval[K], eq bool) bool {
	if n == nil || cmp(query.Lo, n.m) >= 0 {
		return false
	}

	c := cmp(query.Hi, n.key)
	cg0 := c > 0

	if cg0 || (eq && c == 0) {
		for e := n.bucket.Front(); e != nil; e = e.Next() {
			be := e.Value.(bucketEntry[K, V])

			if cmp(query.Lo, be.iv.Hi) < 0 {
				return true
			}
		}

		if cg0 && anyNode(rightNode(n, p), n, cmp, query, eq) {
			return true
		}
	}

	return anyNode(leftNode(n, p), n, cmp, query, eq)
}
