package intervalmap

import "cmp"

// Comparator orders both keys and interval endpoints: negative if a < b,
// zero if a == b, positive if a > b. The same comparator is used for the
// tree's BST ordering (on Interval.Lo) and for the max-endpoint
// augmentation (on Interval.Hi), so K must be a single totally ordered
// domain for both.
type Comparator[K any] func(a, b K) int

// OrderedComparator builds a Comparator from any type with a natural
// ordering, using cmp.Compare.
func OrderedComparator[K cmp.Ordered]() Comparator[K] {
	return cmp.Compare[K]
}

func maxK[K any](cmp Comparator[K], a, b K) K {
	if cmp(a, b) < 0 {
		return b
	}

	return a
}
