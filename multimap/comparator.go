package multimap

import "cmp"

// Comparator orders two keys the way a three-way comparison does: negative
// if a < b, zero if a == b, positive if a > b.
type Comparator[K any] func(a, b K) int

// OrderedComparator builds a Comparator from any type with a natural
// ordering, using cmp.Compare.
func OrderedComparator[K cmp.Ordered]() Comparator[K] {
	return cmp.Compare[K]
}
