package list

// LessFunc reports whether a must sort before b.
type LessFunc[T any] func(a, b *T) bool

// Sort stable-sorts the list headed by h in ascending order with merge sort.
//
// The ring is opened into a nil-terminated chain that only follows next
// links, sorted recursively, then re-attached to h while every prev link is
// rebuilt. The list is circular and doubly linked again when Sort returns.
func Sort[T any](h *Node[T], less LessFunc[T]) {
	if h.Empty() || h.Singular() {
		return
	}
	first := h.next
	h.prev.next = nil
	h.next = h
	h.prev = h

	first = mergeSort(first, less)

	prev := h
	for n := first; n != nil; n = n.next {
		n.prev = prev
		prev = n
	}
	h.next = first
	prev.next = h
	h.prev = prev
}

// mergeSort sorts a nil-terminated chain linked by next and returns its head.
func mergeSort[T any](head *Node[T], less LessFunc[T]) *Node[T] {
	if head == nil || head.next == nil {
		return head
	}
	slow, fast := head, head.next
	for fast != nil && fast.next != nil {
		slow = slow.next
		fast = fast.next.next
	}
	right := slow.next
	slow.next = nil
	return merge(mergeSort(head, less), mergeSort(right, less), less)
}

// merge joins two sorted chains. On ties the node from left wins.
func merge[T any](left, right *Node[T], less LessFunc[T]) *Node[T] {
	var dummy Node[T]
	tail := &dummy
	for left != nil && right != nil {
		if less(right.owner, left.owner) {
			tail.next = right
			right = right.next
		} else {
			tail.next = left
			left = left.next
		}
		tail = tail.next
	}
	if left != nil {
		tail.next = left
	} else {
		tail.next = right
	}
	return dummy.next
}
