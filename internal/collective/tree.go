// Package collective implements the rooted-binary-tree embedding shared
// by Barrier, Bcast, and Reduce, plus the Collect/Distribute skeleton
// and its status-folding discipline.
package collective

// fanout is the number of children per tree node: the tree is arranged
// as a binary heap.
const fanout = 2

// Neighbours computes the parent and children of rank in the tree
// rooted at root, over a world of size processes. Ranks are rotated so
// root becomes logical position 1 in a 1-indexed binary heap. parent is
// -1 when rank is the root; a child slot is -1 when the corresponding
// logical position exceeds size.
func Neighbours(rank, root, size int) (parent int, children [fanout]int) {
	index := (size+rank-root)%size + 1

	if index == 1 {
		parent = -1
	} else {
		parent = (index/fanout + root - 1) % size
	}

	for i := 0; i < fanout; i++ {
		child := index*fanout + i
		if child > size {
			children[i] = -1
			continue
		}
		children[i] = (child + root - 1) % size
	}
	return parent, children
}
