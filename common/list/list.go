package list

import (
	"errors"
	"fmt"
)

var (
	ErrNilLink     = errors.New("nil link")
	ErrBrokenLink  = errors.New("broken link")
	ErrNotCircular = errors.New("chain does not return to head")
)

// Node is an intrusive link of a circular doubly-linked list. The containing
// struct embeds a Node and registers itself as owner with Init, so a Node
// found while walking a chain can be turned back into its container with Entry.
//
// A list is represented by a sentinel Node (owner nil) such that the sentinel
// is both the next node of the last entry and the previous node of the first
// entry. An empty list is a sentinel pointing to itself in both directions.
type Node[T any] struct {
	// Next and previous links in the ring. Never nil once Init was called.
	next, prev *Node[T]
	owner      *T
}

// New allocates a sentinel and initializes it as an empty list.
func New[T any]() *Node[T] {
	return new(Node[T]).Init(nil)
}

// Init makes n a self-referential ring owned by owner and returns n.
func (n *Node[T]) Init(owner *T) *Node[T] {
	n.next = n
	n.prev = n
	n.owner = owner
	return n
}

// Entry returns the struct this node is embedded in, nil for a sentinel.
func (n *Node[T]) Entry() *T {
	return n.owner
}

func (n *Node[T]) Next() *Node[T] {
	return n.next
}

func (n *Node[T]) Prev() *Node[T] {
	return n.prev
}

// Empty reports whether the list headed by h has no entries.
func (h *Node[T]) Empty() bool {
	return h.next == h
}

// Singular reports whether the list headed by h has exactly one entry.
func (h *Node[T]) Singular() bool {
	return !h.Empty() && h.next == h.prev
}

// First returns the first entry of the list headed by h or nil if it is empty.
func (h *Node[T]) First() *T {
	if h.Empty() {
		return nil
	}
	return h.next.owner
}

// Last returns the last entry of the list headed by h or nil if it is empty.
func (h *Node[T]) Last() *T {
	if h.Empty() {
		return nil
	}
	return h.prev.owner
}

// link inserts n between prev and next.
func link[T any](n, prev, next *Node[T]) {
	next.prev = n
	n.next = next
	n.prev = prev
	prev.next = n
}

// unlink joins the neighbours of n, leaving n's own links untouched.
func unlink[T any](n *Node[T]) {
	n.prev.next = n.next
	n.next.prev = n.prev
}

// AddAfter links n right after at.
func (n *Node[T]) AddAfter(at *Node[T]) {
	link(n, at, at.next)
}

// AddBefore links n right before at. With at a sentinel this appends to the tail.
func (n *Node[T]) AddBefore(at *Node[T]) {
	link(n, at.prev, at)
}

// Del removes n from its list. The links of n are cleared so a stale node can
// not be walked back into the chain.
func (n *Node[T]) Del() {
	unlink(n)
	n.next = nil
	n.prev = nil
}

// DelInit removes n from its list and leaves it as a self-referential ring.
func (n *Node[T]) DelInit() {
	unlink(n)
	n.next = n
	n.prev = n
}

// Linked reports whether n currently sits in a ring with other nodes.
func (n *Node[T]) Linked() bool {
	return n.next != nil && n.next != n
}

// MoveAfter removes n from its list and links it right after at.
func (n *Node[T]) MoveAfter(at *Node[T]) {
	if n == at {
		return
	}
	unlink(n)
	n.AddAfter(at)
}

// MoveBefore removes n from its list and links it right before at.
func (n *Node[T]) MoveBefore(at *Node[T]) {
	if n == at {
		return
	}
	unlink(n)
	n.AddBefore(at)
}

// SpliceTail moves every entry of the list headed by from to the tail of the
// list headed by h, keeping their order. from is left empty.
func (h *Node[T]) SpliceTail(from *Node[T]) {
	if from == h || from.Empty() {
		return
	}
	first, last := from.next, from.prev
	tail := h.prev

	tail.next = first
	first.prev = tail
	last.next = h
	h.prev = last

	from.next = from
	from.prev = from
}

// Len counts the entries of the list headed by h by walking it.
func (h *Node[T]) Len() int {
	cnt := 0
	for n := h.next; n != h; n = n.next {
		cnt++
	}
	return cnt
}

// Each calls fn for every entry from head to tail until fn returns false.
// fn may remove the entry it is given.
func (h *Node[T]) Each(fn func(entry *T) bool) {
	for n, next := h.next, h.next.next; n != h; n, next = next, next.next {
		if !fn(n.owner) {
			return
		}
	}
}

// Entries collects the entries of the list headed by h, head to tail.
func (h *Node[T]) Entries() []*T {
	ret := make([]*T, 0)
	for n := h.next; n != h; n = n.next {
		ret = append(ret, n.owner)
	}
	return ret
}

// Check walks the list headed by h and verifies that every node satisfies
// n.prev.next == n and n.next.prev == n and that the walk returns to h.
// limit bounds the walk, a non-positive limit means no bound.
func (h *Node[T]) Check(limit int) error {
	if h.next == nil || h.prev == nil {
		return fmt.Errorf("head: %w", ErrNilLink)
	}
	n := h
	for i := 0; limit <= 0 || i <= limit; i++ {
		if n.next == nil || n.prev == nil {
			return fmt.Errorf("node %d: %w", i, ErrNilLink)
		}
		if n.next.prev != n || n.prev.next != n {
			return fmt.Errorf("node %d: %w", i, ErrBrokenLink)
		}
		n = n.next
		if n == h {
			return nil
		}
	}
	return fmt.Errorf("walked %d nodes: %w", limit, ErrNotCircular)
}

func (h *Node[T]) String() string {
	return fmt.Sprintf("list{len: %v}", h.Len())
}
