package collective

import "testing"

func TestNeighboursRootHasNoParent(t *testing.T) {
	parent, _ := Neighbours(2, 2, 4)
	if parent != -1 {
		t.Fatalf("root's parent = %d, want -1", parent)
	}
}

func TestNeighboursFourRanksRootZero(t *testing.T) {
	// Rotated tree over ranks {0,1,2,3} rooted at 0: logical positions
	// 1,2,3,4 map directly onto ranks 0,1,2,3. Position 1 (rank 0) has
	// children at positions 2 and 3 (ranks 1 and 2); position 2 (rank 1)
	// has a child at position 4 (rank 3).
	parent, children := Neighbours(0, 0, 4)
	if parent != -1 {
		t.Fatalf("rank 0 parent = %d, want -1", parent)
	}
	if children != ([2]int{1, 2}) {
		t.Fatalf("rank 0 children = %v, want [1 2]", children)
	}

	parent, children = Neighbours(1, 0, 4)
	if parent != 0 {
		t.Fatalf("rank 1 parent = %d, want 0", parent)
	}
	if children != ([2]int{3, -1}) {
		t.Fatalf("rank 1 children = %v, want [3 -1]", children)
	}

	parent, children = Neighbours(2, 0, 4)
	if parent != 0 {
		t.Fatalf("rank 2 parent = %d, want 0", parent)
	}
	if children != ([2]int{-1, -1}) {
		t.Fatalf("rank 2 children = %v, want [-1 -1]", children)
	}

	parent, _ = Neighbours(3, 0, 4)
	if parent != 1 {
		t.Fatalf("rank 3 parent = %d, want 1", parent)
	}
}

func TestNeighboursRotateWithNonZeroRoot(t *testing.T) {
	// Rooted at 2 over 4 ranks: logical order is 2,3,0,1.
	parent, children := Neighbours(2, 2, 4)
	if parent != -1 {
		t.Fatalf("root parent = %d, want -1", parent)
	}
	if children != ([2]int{3, 0}) {
		t.Fatalf("root children = %v, want [3 0]", children)
	}

	parent, _ = Neighbours(0, 2, 4)
	if parent != 2 {
		t.Fatalf("rank 0's parent = %d, want 2", parent)
	}
}

func TestNeighboursEveryNonRootHasExactlyOnePathToRoot(t *testing.T) {
	const size = 7
	for root := 0; root < size; root++ {
		for rank := 0; rank < size; rank++ {
			steps := 0
			cur := rank
			for cur != root {
				parent, _ := Neighbours(cur, root, size)
				if parent == -1 {
					t.Fatalf("root=%d rank=%d: hit a dead end at %d before reaching root", root, rank, cur)
				}
				cur = parent
				steps++
				if steps > size {
					t.Fatalf("root=%d rank=%d: cycle detected", root, rank)
				}
			}
		}
	}
}
