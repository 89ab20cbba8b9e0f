package queue

import (
	"math/rand"
	"strings"

	"github.com/Qthai16/queue-lab/common/list"
	"github.com/Qthai16/queue-lab/common/pool"
)

// Element is the unit a Queue holds: an owned string plus the link that
// places it in the queue's ring.
type Element struct {
	Value string
	list  list.Node[Element]
}

// Linked reports whether e still sits in a queue.
func (e *Element) Linked() bool {
	return e.list.Linked()
}

var (
	elementPool = pool.NewTPool(pool.TPoolConfig[Element]{
		Cleanup: func(e *Element) {
			e.Value = ""
			e.list.Init(nil)
		},
	})
	allocFailPercent = 0
)

// SetAllocFailPercent makes every allocation step of this package fail with
// probability p percent. 0 disables failure injection.
func SetAllocFailPercent(p int) {
	allocFailPercent = min(max(p, 0), 100)
}

func AllocFailPercent() int {
	return allocFailPercent
}

// ElementsInUse is the number of elements allocated and not yet released.
func ElementsInUse() int64 {
	return elementPool.InUse()
}

func allocFail() bool {
	return allocFailPercent > 0 && rand.Intn(100) < allocFailPercent
}

func allocElement() *Element {
	if allocFail() {
		return nil
	}
	e := elementPool.Get()
	e.list.Init(e)
	return e
}

func dupString(s string) (string, bool) {
	if allocFail() {
		return "", false
	}
	return strings.Clone(s), true
}

// newElement builds an unlinked element holding a copy of s. nil means
// allocation failed and nothing is left allocated.
func newElement(s string) *Element {
	e := allocElement()
	if e == nil {
		return nil
	}
	v, ok := dupString(s)
	if !ok {
		elementPool.Put(&e)
		return nil
	}
	e.Value = v
	return e
}

// Release frees an element detached by RemoveHead or RemoveTail.
// Releasing nil is a no-op.
func Release(e *Element) {
	if e == nil {
		return
	}
	elementPool.Put(&e)
}

// deleteElement unlinks e from its queue and releases it.
func deleteElement(e *Element) {
	e.list.Del()
	Release(e)
}
