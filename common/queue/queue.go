// Package queue implements a queue of strings on top of an intrusive circular
// doubly-linked list. A Queue is only a sentinel; its elements carry their own
// links. Nothing here is safe for concurrent use, a queue has a single owner.
//
// Every method accepts a nil *Queue and treats it like a failed call:
// false, nil or 0 without side effects.
package queue

import (
	"github.com/Qthai16/queue-lab/common/list"
)

type Queue struct {
	head list.Node[Element]
}

// New returns an empty queue, or nil if allocation fails.
func New() *Queue {
	if allocFail() {
		return nil
	}
	q := &Queue{}
	q.head.Init(nil)
	return q
}

// Free releases every element of q. q must not be used afterwards.
func Free(q *Queue) {
	if q == nil {
		return
	}
	q.head.Each(func(e *Element) bool {
		deleteElement(e)
		return true
	})
	q.head.Init(nil)
}

// InsertHead puts a copy of s at the head of q.
func (q *Queue) InsertHead(s string) bool {
	if q == nil {
		return false
	}
	e := newElement(s)
	if e == nil {
		return false
	}
	e.list.AddAfter(&q.head)
	return true
}

// InsertTail puts a copy of s at the tail of q.
func (q *Queue) InsertTail(s string) bool {
	if q == nil {
		return false
	}
	e := newElement(s)
	if e == nil {
		return false
	}
	e.list.AddBefore(&q.head)
	return true
}

// RemoveHead detaches the first element and hands it to the caller, who must
// Release it. If sp is not empty the value is copied into it, truncated to
// len(sp)-1 bytes and terminated by a zero byte.
func (q *Queue) RemoveHead(sp []byte) *Element {
	if q == nil || q.head.Empty() {
		return nil
	}
	return detach(q.head.First(), sp)
}

// RemoveTail is RemoveHead for the last element.
func (q *Queue) RemoveTail(sp []byte) *Element {
	if q == nil || q.head.Empty() {
		return nil
	}
	return detach(q.head.Last(), sp)
}

func detach(e *Element, sp []byte) *Element {
	e.list.DelInit()
	CopyValue(sp, e.Value)
	return e
}

// CopyValue copies s into sp as a zero-terminated byte string, truncating it
// to fit. It returns the number of bytes copied, not counting the terminator.
// An empty sp is left untouched.
func CopyValue(sp []byte, s string) int {
	if len(sp) == 0 {
		return 0
	}
	n := copy(sp[:len(sp)-1], s)
	sp[n] = 0
	return n
}

// Size counts the elements of q. There is no cached counter, every call walks
// the whole ring.
func (q *Queue) Size() int {
	if q == nil || q.head.Empty() {
		return 0
	}
	return q.head.Len()
}

// Values returns the payloads of q from head to tail.
func (q *Queue) Values() []string {
	if q == nil {
		return nil
	}
	ret := make([]string, 0)
	q.head.Each(func(e *Element) bool {
		ret = append(ret, e.Value)
		return true
	})
	return ret
}

// Check verifies the ring of q, walking at most limit nodes when limit > 0.
func (q *Queue) Check(limit int) error {
	if q == nil {
		return nil
	}
	return q.head.Check(limit)
}
