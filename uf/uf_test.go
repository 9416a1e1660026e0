package uf

import "testing"

func TestMergeJoinsActiveClusters(t *testing.T) {
	u := New(4)
	u.AddActiveCount(0, 1)
	u.AddActiveCount(2, 1)
	u.Commit()
	if u.NumActiveClusters() != 2 {
		t.Fatalf("want 2 active clusters, got %d", u.NumActiveClusters())
	}
	u.Merge(0, 1)
	u.Merge(1, 2)
	u.Commit()
	if u.NumActiveClusters() != 1 {
		t.Fatalf("want 1 active cluster after merge, got %d", u.NumActiveClusters())
	}
	if u.Root(0) != u.Root(3-1) {
		t.Fatalf("0 and 2 should be in the same cluster")
	}
}

func TestRedoRestoresCommittedState(t *testing.T) {
	u := New(3)
	u.AddActiveCount(0, 1)
	u.AddActiveCount(1, 1)
	u.Commit()
	if u.NumActiveClusters() != 2 {
		t.Fatalf("want 2, got %d", u.NumActiveClusters())
	}
	u.Merge(0, 1)
	if u.NumActiveClusters() != 1 {
		t.Fatalf("want 1 mid-transaction, got %d", u.NumActiveClusters())
	}
	u.Redo()
	if u.NumActiveClusters() != 2 {
		t.Fatalf("want 2 after redo, got %d", u.NumActiveClusters())
	}
	if u.Root(0) == u.Root(1) {
		t.Fatalf("merge should have been undone")
	}
}

func TestAddActiveCountNegative(t *testing.T) {
	u := New(2)
	u.AddActiveCount(0, 2)
	u.Commit()
	if u.NumActiveClusters() != 1 {
		t.Fatalf("want 1, got %d", u.NumActiveClusters())
	}
	u.AddActiveCount(0, -2)
	u.Commit()
	if u.NumActiveClusters() != 0 {
		t.Fatalf("want 0, got %d", u.NumActiveClusters())
	}
}

func TestMergeIsNoOpOnSameCluster(t *testing.T) {
	u := New(3)
	u.Merge(0, 1)
	u.Commit()
	before := u.Root(0)
	u.Merge(1, 0)
	if u.Root(0) != before {
		t.Fatalf("merging an already-joined pair changed the root")
	}
}

func TestRedoWithNoPriorWritesIsNoOp(t *testing.T) {
	u := New(5)
	u.Redo()
	if u.NumActiveClusters() != 0 {
		t.Fatalf("want 0, got %d", u.NumActiveClusters())
	}
}
