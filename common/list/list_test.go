package list

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/tychoish/fun/assert"
	"github.com/tychoish/fun/assert/check"
)

type item struct {
	key  int
	seq  int
	link Node[item]
}

func newItem(key, seq int) *item {
	it := &item{key: key, seq: seq}
	it.link.Init(it)
	return it
}

func pushBack(h *Node[item], keys ...int) {
	for i, k := range keys {
		newItem(k, i).link.AddBefore(h)
	}
}

func keysOf(h *Node[item]) []int {
	ret := make([]int, 0)
	for _, it := range h.Entries() {
		ret = append(ret, it.key)
	}
	return ret
}

func lessKey(a, b *item) bool {
	return a.key < b.key
}

func TestNode(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		h := New[item]()
		check.True(t, h.Empty())
		check.True(t, !h.Singular())
		check.Equal(t, 0, h.Len())
		check.True(t, h.First() == nil)
		check.True(t, h.Last() == nil)
		check.True(t, h.Check(0) == nil)
	})

	t.Run("AddAfterAndBefore", func(t *testing.T) {
		h := New[item]()
		newItem(2, 0).link.AddAfter(h)
		newItem(1, 0).link.AddAfter(h)
		newItem(3, 0).link.AddBefore(h)

		assert.True(t, slices.Equal([]int{1, 2, 3}, keysOf(h)))
		check.Equal(t, 1, h.First().key)
		check.Equal(t, 3, h.Last().key)
		check.Equal(t, 3, h.Len())
		check.True(t, h.Check(0) == nil)
	})

	t.Run("DelClearsLinks", func(t *testing.T) {
		h := New[item]()
		pushBack(h, 1, 2, 3)
		mid := h.Next().Next()
		mid.Del()

		check.True(t, mid.Next() == nil && mid.Prev() == nil)
		check.True(t, !mid.Linked())
		assert.True(t, slices.Equal([]int{1, 3}, keysOf(h)))
		check.True(t, h.Check(0) == nil)
	})

	t.Run("DelInitSelfLoops", func(t *testing.T) {
		h := New[item]()
		pushBack(h, 1, 2)
		first := h.Next()
		first.DelInit()

		check.True(t, first.Next() == first && first.Prev() == first)
		check.True(t, !first.Linked())
		check.Equal(t, 1, first.Entry().key)
		check.True(t, h.Singular())
		check.Equal(t, 2, h.First().key)
	})

	t.Run("Move", func(t *testing.T) {
		h := New[item]()
		pushBack(h, 1, 2, 3, 4)
		last := h.Prev()
		last.MoveAfter(h)
		assert.True(t, slices.Equal([]int{4, 1, 2, 3}, keysOf(h)))

		first := h.Next()
		first.MoveBefore(h)
		assert.True(t, slices.Equal([]int{1, 2, 3, 4}, keysOf(h)))

		first = h.Next()
		first.MoveAfter(first)
		assert.True(t, slices.Equal([]int{1, 2, 3, 4}, keysOf(h)))
		check.True(t, h.Check(0) == nil)
	})

	t.Run("SpliceTail", func(t *testing.T) {
		h, other := New[item](), New[item]()
		pushBack(h, 1, 2)
		pushBack(other, 3, 4, 5)
		h.SpliceTail(other)

		assert.True(t, slices.Equal([]int{1, 2, 3, 4, 5}, keysOf(h)))
		check.True(t, other.Empty())
		check.True(t, h.Check(0) == nil)
		check.True(t, other.Check(0) == nil)

		h.SpliceTail(other)
		check.Equal(t, 5, h.Len())

		empty := New[item]()
		empty.SpliceTail(h)
		assert.True(t, slices.Equal([]int{1, 2, 3, 4, 5}, keysOf(empty)))
		check.True(t, h.Empty())
	})

	t.Run("EachAllowsRemoval", func(t *testing.T) {
		h := New[item]()
		pushBack(h, 1, 2, 3, 4, 5, 6)
		h.Each(func(it *item) bool {
			if it.key%2 == 0 {
				it.link.Del()
			}
			return true
		})
		assert.True(t, slices.Equal([]int{1, 3, 5}, keysOf(h)))

		visited := 0
		h.Each(func(it *item) bool {
			visited++
			return false
		})
		check.Equal(t, 1, visited)
	})

	t.Run("CheckDetectsBrokenLink", func(t *testing.T) {
		h := New[item]()
		pushBack(h, 1, 2, 3)
		h.next.next.prev = h
		err := h.Check(0)
		assert.True(t, errors.Is(err, ErrBrokenLink))
	})

	t.Run("CheckLimit", func(t *testing.T) {
		h := New[item]()
		pushBack(h, 1, 2, 3, 4)
		err := h.Check(2)
		assert.True(t, errors.Is(err, ErrNotCircular))
		check.True(t, h.Check(4) == nil)
	})
}

func TestSort(t *testing.T) {
	tests := map[string][]int{
		"empty":      {},
		"single":     {7},
		"pair":       {2, 1},
		"sorted":     {1, 2, 3, 4, 5},
		"descending": {9, 8, 7, 6, 5, 4},
		"duplicates": {3, 1, 3, 2, 1, 2, 3},
		"odd":        {5, 3, 9, 1, 7},
	}
	for name, keys := range tests {
		t.Run(name, func(t *testing.T) {
			h := New[item]()
			pushBack(h, keys...)
			Sort(h, lessKey)

			expect := slices.Clone(keys)
			slices.Sort(expect)
			got := keysOf(h)
			if !slices.Equal(expect, got) {
				t.Errorf("sort mismatch, expect: [%v], got: [%v]", expect, got)
			}
			if err := h.Check(0); err != nil {
				t.Errorf("broken ring after sort: %v", err)
			}
		})
	}
}

func TestSortStable(t *testing.T) {
	h := New[item]()
	keys := make([]int, 200)
	for i := range keys {
		keys[i] = rand.Intn(10)
	}
	pushBack(h, keys...)
	Sort(h, lessKey)

	prev := h.First()
	for _, it := range h.Entries()[1:] {
		if it.key < prev.key {
			t.Fatalf("not sorted: %v before %v", prev.key, it.key)
		}
		if it.key == prev.key && it.seq < prev.seq {
			t.Fatalf("not stable: key %v seq %v before seq %v", it.key, prev.seq, it.seq)
		}
		prev = it
	}
	check.True(t, h.Check(0) == nil)
}

func TestSortBackwardWalk(t *testing.T) {
	h := New[item]()
	pushBack(h, 4, 2, 5, 1, 3)
	Sort(h, lessKey)

	got := make([]int, 0)
	for n := h.Prev(); n != h; n = n.Prev() {
		got = append(got, n.Entry().key)
	}
	assert.True(t, slices.Equal([]int{5, 4, 3, 2, 1}, got))
}
