// Package dlist implements an intrusive, circular, doubly-linked list
// with a sentinel node. It is the building block the scheduler's main
// queue is built from: splicing a [Link] in or out is O(1) and never
// allocates, because the link lives inside the caller's own struct
// rather than in a node the list owns.
//
// An empty list is a sentinel whose prev/next both point to itself. An
// element that is part of a list always has both prev and next set; an
// unlinked element has both nil. That nil/nil pair is the "not in any
// list" marker callers use to answer `is this task scheduled?` without
// a separate boolean.
package dlist

// Link is an intrusive list node, meant to be embedded in a containing
// struct (see [task.Task]). The zero value is unlinked.
type Link struct {
	prev, next *Link
}

// Linked reports whether e is currently part of some list.
func (e *Link) Linked() bool {
	return e.next != nil
}

// Init turns sentinel into an empty list: both cross-references point
// to itself.
func Init(sentinel *Link) *Link {
	sentinel.prev = sentinel
	sentinel.next = sentinel
	return sentinel
}

// IsEmpty reports whether sentinel heads an empty list.
func IsEmpty(sentinel *Link) bool {
	return sentinel.next == sentinel
}

// Length counts the elements in the list headed by sentinel. O(n); for
// diagnostics only, never called from the scheduler's hot path.
func Length(sentinel *Link) int {
	n := 0
	for e := sentinel.next; e != sentinel; e = e.next {
		n++
	}
	return n
}

// First returns the first element of the list, or nil if empty.
func First(sentinel *Link) *Link {
	if IsEmpty(sentinel) {
		return nil
	}
	return sentinel.next
}

// Last returns the last element of the list, or nil if empty.
func Last(sentinel *Link) *Link {
	if IsEmpty(sentinel) {
		return nil
	}
	return sentinel.prev
}

// Next returns the element following e, or nil if e is the last
// element (or e is the sentinel of an empty list). Callers that want
// to walk past the sentinel should use Traverse instead.
func Next(sentinel, e *Link) *Link {
	if e.next == sentinel {
		return nil
	}
	return e.next
}

// Prev returns the element preceding e, or nil if e is the first
// element.
func Prev(sentinel, e *Link) *Link {
	if e.prev == sentinel {
		return nil
	}
	return e.prev
}

func insertBetween(prev, next, e *Link) {
	e.prev = prev
	e.next = next
	prev.next = e
	next.prev = e
}

// PushFront inserts e immediately after sentinel (i.e. as the new
// first element). e must not already be linked; unlink it first.
func PushFront(sentinel, e *Link) {
	insertBetween(sentinel, sentinel.next, e)
}

// PushBack inserts e immediately before sentinel (i.e. as the new last
// element). e must not already be linked; unlink it first.
func PushBack(sentinel, e *Link) {
	insertBetween(sentinel.prev, sentinel, e)
}

// InsertBefore splices e in immediately before anchor. anchor may be
// the sentinel itself, which has the effect of PushBack. e must not
// already be linked.
func InsertBefore(anchor, e *Link) {
	insertBetween(anchor.prev, anchor, e)
}

// Unlink removes e from whatever list it belongs to and clears its
// cross-references. Returns e if it was linked, nil if e was already
// unlinked (a no-op).
func Unlink(e *Link) *Link {
	if e.next == nil {
		return nil
	}
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev = nil
	e.next = nil
	return e
}

// PopFront removes and returns the first element of the list, or nil
// if empty.
func PopFront(sentinel *Link) *Link {
	if IsEmpty(sentinel) {
		return nil
	}
	return Unlink(sentinel.next)
}

// PopBack removes and returns the last element of the list, or nil if
// empty.
func PopBack(sentinel *Link) *Link {
	if IsEmpty(sentinel) {
		return nil
	}
	return Unlink(sentinel.prev)
}

// Contains reports whether e is a member of the list headed by
// sentinel, searching from the front. O(n).
func Contains(sentinel, e *Link) bool {
	return Find(sentinel, e) != nil
}

// Find locates e in the list headed by sentinel, searching from the
// front, and returns e if found, nil otherwise. O(n).
func Find(sentinel, e *Link) *Link {
	for l := sentinel.next; l != sentinel; l = l.next {
		if l == e {
			return e
		}
	}
	return nil
}

// FindReverse is Find, searching from the back.
func FindReverse(sentinel, e *Link) *Link {
	for l := sentinel.prev; l != sentinel; l = l.prev {
		if l == e {
			return e
		}
	}
	return nil
}

// Reverse reverses the list headed by sentinel in place.
func Reverse(sentinel *Link) {
	e := sentinel
	for {
		e.prev, e.next = e.next, e.prev
		e = e.prev // was e.next before the swap
		if e == sentinel {
			break
		}
	}
}

// TraverseFunc is called with each element in turn. Returning true
// stops the traversal early. fn must not mutate the list it is
// traversing.
type TraverseFunc func(e *Link) (stop bool)

// Traverse walks the list from front to back, calling fn on each
// element, stopping at the end of the list or as soon as fn returns
// true. Returns the element fn stopped on, or nil if it reached the
// end.
func Traverse(sentinel *Link, fn TraverseFunc) *Link {
	for e := sentinel.next; e != sentinel; e = e.next {
		if fn(e) {
			return e
		}
	}
	return nil
}

// TraverseReverse is Traverse, walking from back to front.
func TraverseReverse(sentinel *Link, fn TraverseFunc) *Link {
	for e := sentinel.prev; e != sentinel; e = e.prev {
		if fn(e) {
			return e
		}
	}
	return nil
}
