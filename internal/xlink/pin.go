package xlink

// Registry pins every node reachable only through XOR-encoded links so the
// garbage collector does not reclaim it. Go's collector traces typed
// pointer fields, not the uintptr arithmetic a Link is built from, so a
// node linked in purely via its siblings' L/R fields is — as far as the
// collector can tell — unreachable the moment its own stack frame returns.
//
// This mirrors the teacher's arena.Arena.KeepAlive: tie memory the
// allocator didn't itself give out to something the collector does trace.
// Here that something is Registry, not a custom allocator — every node is
// still a single, individually heap-allocated Go value (new(node[K, V])),
// matching the one-heap-node-per-logical-entry constraint; Registry only
// holds the extra strong reference that keeps it alive.
type Registry[T any] struct {
	live map[*T]struct{}
}

// Pin adds n to the registry. Call it immediately after allocating n and
// before any link rewriting touches it, so an allocation that later fails
// (comparator panic, out-of-memory) never leaves an un-pinned node
// reachable from a half-built tree.
func (r *Registry[T]) Pin(n *T) {
	if r.live == nil {
		r.live = make(map[*T]struct{})
	}

	r.live[n] = struct{}{}
}

// Unpin drops the strong reference to n. Call it once n has been fully
// spliced out of the tree; after this call the node is eligible for
// collection.
func (r *Registry[T]) Unpin(n *T) {
	delete(r.live, n)
}

// Len reports how many nodes are currently pinned.
func (r *Registry[T]) Len() int { return len(r.live) }
