package dlist

import "testing"

func newList() *Link {
	return Init(&Link{})
}

func TestEmptyList(t *testing.T) {
	s := newList()
	if !IsEmpty(s) {
		t.Fatal("new list must be empty")
	}
	if Length(s) != 0 {
		t.Fatal("new list must have length 0")
	}
	if First(s) != nil || Last(s) != nil {
		t.Fatal("First/Last on empty list must be nil")
	}
	if PopFront(s) != nil || PopBack(s) != nil {
		t.Fatal("pop on empty list must be nil")
	}
}

func TestPushFrontBack(t *testing.T) {
	s := newList()
	var a, b, c Link
	PushBack(s, &a)
	PushBack(s, &b)
	PushFront(s, &c)

	if Length(s) != 3 {
		t.Fatalf("Length = %d, want 3", Length(s))
	}
	if First(s) != &c || Last(s) != &b {
		t.Fatal("unexpected order after PushFront/PushBack")
	}

	var order []*Link
	Traverse(s, func(e *Link) bool {
		order = append(order, e)
		return false
	})
	want := []*Link{&c, &a, &b}
	if len(order) != len(want) {
		t.Fatalf("traverse length mismatch: %d", len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order[%d] = %p, want %p", i, order[i], want[i])
		}
	}
}

func TestUnlinkIsIdempotent(t *testing.T) {
	s := newList()
	var a Link
	PushBack(s, &a)

	if Unlink(&a) != &a {
		t.Fatal("unlink of a linked element must return it")
	}
	if a.Linked() {
		t.Fatal("element must be unlinked after Unlink")
	}
	if Unlink(&a) != nil {
		t.Fatal("unlink of an already-unlinked element must be a no-op returning nil")
	}
	if !IsEmpty(s) {
		t.Fatal("list must be empty after unlinking its only element")
	}
}

func TestPopFrontBack(t *testing.T) {
	s := newList()
	var a, b, c Link
	PushBack(s, &a)
	PushBack(s, &b)
	PushBack(s, &c)

	if PopFront(s) != &a {
		t.Fatal("PopFront must return the first element")
	}
	if PopBack(s) != &c {
		t.Fatal("PopBack must return the last element")
	}
	if Length(s) != 1 || First(s) != &b {
		t.Fatal("only b should remain")
	}
}

func TestInsertBefore(t *testing.T) {
	s := newList()
	var a, b, c Link
	PushBack(s, &a)
	PushBack(s, &c)
	InsertBefore(&c, &b)

	var order []*Link
	Traverse(s, func(e *Link) bool {
		order = append(order, e)
		return false
	})
	if len(order) != 3 || order[0] != &a || order[1] != &b || order[2] != &c {
		t.Fatalf("unexpected order: %v", order)
	}
}

func TestContainsFind(t *testing.T) {
	s := newList()
	var a, b Link
	PushBack(s, &a)

	if !Contains(s, &a) {
		t.Fatal("a should be in the list")
	}
	if Contains(s, &b) {
		t.Fatal("b should not be in the list")
	}
	if Find(s, &a) != &a {
		t.Fatal("Find should locate a")
	}
	if FindReverse(s, &a) != &a {
		t.Fatal("FindReverse should locate a")
	}
}

func TestReverse(t *testing.T) {
	s := newList()
	var a, b, c Link
	PushBack(s, &a)
	PushBack(s, &b)
	PushBack(s, &c)

	Reverse(s)

	var order []*Link
	Traverse(s, func(e *Link) bool {
		order = append(order, e)
		return false
	})
	if len(order) != 3 || order[0] != &c || order[1] != &b || order[2] != &a {
		t.Fatalf("unexpected reversed order: %v", order)
	}
}

func TestTraverseStopsEarly(t *testing.T) {
	s := newList()
	var a, b, c Link
	PushBack(s, &a)
	PushBack(s, &b)
	PushBack(s, &c)

	var visited int
	stopped := Traverse(s, func(e *Link) bool {
		visited++
		return e == &b
	})
	if stopped != &b {
		t.Fatal("traverse should stop on b")
	}
	if visited != 2 {
		t.Fatalf("visited = %d, want 2", visited)
	}
}

func TestTraverseReverse(t *testing.T) {
	s := newList()
	var a, b Link
	PushBack(s, &a)
	PushBack(s, &b)

	var order []*Link
	TraverseReverse(s, func(e *Link) bool {
		order = append(order, e)
		return false
	})
	if len(order) != 2 || order[0] != &b || order[1] != &a {
		t.Fatalf("unexpected reverse traverse order: %v", order)
	}
}

func TestReInsertRequiresUnlink(t *testing.T) {
	// Demonstrates the scheduler-level contract: moving an element
	// between positions means Unlink then insert, never insert-while-linked.
	s := newList()
	var a, b Link
	PushBack(s, &a)
	PushBack(s, &b)

	Unlink(&a)
	PushFront(s, &a)

	var order []*Link
	Traverse(s, func(e *Link) bool {
		order = append(order, e)
		return false
	})
	if len(order) != 2 || order[0] != &a || order[1] != &b {
		t.Fatalf("unexpected order: %v", order)
	}
}
