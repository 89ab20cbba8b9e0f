package queue

import (
	"strconv"
	"strings"

	"github.com/Qthai16/queue-lab/common/list"
)

// DeleteMid deletes the middle element, index n/2 counted from the head.
func (q *Queue) DeleteMid() bool {
	if q == nil || q.head.Empty() {
		return false
	}
	// walk in from both ends until the cursors meet or become neighbours
	fwd, back := q.head.Next(), q.head.Prev()
	for fwd != back && fwd.Next() != back {
		fwd = fwd.Next()
		back = back.Prev()
	}
	deleteElement(back.Entry())
	return true
}

// DeleteDup deletes every element whose value occurs more than once in a run
// of adjacent equal values; no copy of such a value survives. q is expected
// to be sorted, on unsorted input only adjacent duplicates are found.
func (q *Queue) DeleteDup() bool {
	if q == nil || q.head.Empty() {
		return false
	}
	head := &q.head
	inRun := false
	head.Each(func(e *Element) bool {
		next := e.list.Next()
		if next != head && e.Value == next.Entry().Value {
			inRun = true
			deleteElement(e)
		} else if inRun {
			inRun = false
			deleteElement(e)
		}
		return true
	})
	return true
}

// Swap swaps every two adjacent elements.
func (q *Queue) Swap() {
	q.ReverseK(2)
}

// Reverse reverses q in place without allocating.
func (q *Queue) Reverse() {
	if q == nil || q.head.Empty() {
		return
	}
	q.head.Each(func(e *Element) bool {
		e.list.MoveAfter(&q.head)
		return true
	})
}

// ReverseK reverses every consecutive block of k elements. A trailing block
// shorter than k keeps its order. k larger than the queue is clamped to the
// queue size, so it reverses the whole queue.
func (q *Queue) ReverseK(k int) {
	if q == nil || q.head.Empty() || k <= 1 {
		return
	}
	size := q.Size()
	k = min(k, size)
	anchor := &q.head
	for remaining := size; remaining >= k; remaining -= k {
		cur := anchor.Next()
		// the block's first node ends up last and anchors the next block
		blockTail := cur
		for i := 0; i < k; i++ {
			next := cur.Next()
			cur.MoveAfter(anchor)
			cur = next
		}
		anchor = blockTail
	}
}

// Sort sorts q in ascending byte order. Equal values keep their order.
func (q *Queue) Sort() {
	if q == nil || q.head.Empty() {
		return
	}
	list.Sort(&q.head, lessValue)
}

func lessValue(a, b *Element) bool {
	return a.Value < b.Value
}

// Descend deletes every element that has a strictly greater element anywhere
// after it and returns the number of elements left.
func (q *Queue) Descend() int {
	if q == nil || q.head.Empty() {
		return 0
	}
	head := &q.head
	remaining := q.Size()
	best := head.Prev()
	for cur := best.Prev(); cur != head; {
		prev := cur.Prev()
		if CompareValues(cur.Entry().Value, best.Entry().Value) < 0 {
			deleteElement(cur.Entry())
			remaining--
		} else {
			best = cur
		}
		cur = prev
	}
	return remaining
}

// CompareValues orders two payloads. Base-10 integers compare as numbers and
// sort before every other value, equal numbers with different spellings fall
// back to byte order. Everything else compares byte by byte.
func CompareValues(a, b string) int {
	x, errA := strconv.ParseInt(a, 10, 64)
	y, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB != nil:
		return -1
	case errA != nil && errB == nil:
		return 1
	case errA != nil && errB != nil:
		return strings.Compare(a, b)
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return strings.Compare(a, b)
}
