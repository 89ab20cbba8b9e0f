package queue

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"
)

func newQueue(t *testing.T, values ...string) *Queue {
	t.Helper()
	q := New()
	if q == nil {
		t.Fatalf("new queue failed")
	}
	for _, v := range values {
		if !q.InsertTail(v) {
			t.Fatalf("insert tail %q failed", v)
		}
	}
	return q
}

func expectValues(t *testing.T, q *Queue, expect ...string) {
	t.Helper()
	got := q.Values()
	if !slices.Equal(expect, got) {
		t.Errorf("values mismatch, expect: [%v], got: [%v]", expect, got)
	}
	if err := q.Check(0); err != nil {
		t.Errorf("broken ring: %v", err)
	}
	if q.Size() != len(expect) {
		t.Errorf("size mismatch, expect: [%v], got: [%v]", len(expect), q.Size())
	}
}

func TestNewAndFree(t *testing.T) {
	before := ElementsInUse()
	q := newQueue(t, "a", "b", "c")
	if ElementsInUse()-before != 3 {
		t.Errorf("expect 3 elements in use, got: [%v]", ElementsInUse()-before)
	}
	Free(q)
	if ElementsInUse() != before {
		t.Errorf("free leaked %v elements", ElementsInUse()-before)
	}
	Free(nil)

	empty := newQueue(t)
	expectValues(t, empty)
	Free(empty)
}

func TestInsert(t *testing.T) {
	q := newQueue(t)
	q.InsertHead("b")
	q.InsertHead("a")
	q.InsertTail("c")
	expectValues(t, q, "a", "b", "c")

	var nilQ *Queue
	if nilQ.InsertHead("x") || nilQ.InsertTail("x") {
		t.Errorf("insert on nil queue must fail")
	}
	Free(q)
}

func TestInsertCopiesValue(t *testing.T) {
	buf := []byte("mutable")
	q := newQueue(t)
	q.InsertTail(string(buf))
	buf[0] = 'X'
	expectValues(t, q, "mutable")
	Free(q)
}

func TestRemove(t *testing.T) {
	q := newQueue(t, "first", "middle", "last")

	sp := make([]byte, 16)
	e := q.RemoveHead(sp)
	if e == nil || e.Value != "first" {
		t.Fatalf("remove head, expect: [first], got: [%v]", e)
	}
	if e.Linked() {
		t.Errorf("removed element still linked")
	}
	if got := cString(sp); got != "first" {
		t.Errorf("buffer, expect: [first], got: [%v]", got)
	}
	Release(e)

	e = q.RemoveTail(nil)
	if e == nil || e.Value != "last" {
		t.Fatalf("remove tail, expect: [last], got: [%v]", e)
	}
	Release(e)
	expectValues(t, q, "middle")
	Free(q)
}

func TestRemoveTruncates(t *testing.T) {
	q := newQueue(t, "abcdefgh")
	sp := []byte("zzzzzz")
	e := q.RemoveTail(sp)
	if e == nil {
		t.Fatalf("remove tail failed")
	}
	if got := cString(sp); got != "abcde" {
		t.Errorf("truncated copy, expect: [abcde], got: [%v]", got)
	}
	if sp[5] != 0 {
		t.Errorf("copy not zero terminated: %v", sp)
	}
	if e.Value != "abcdefgh" {
		t.Errorf("element value must stay whole, got: [%v]", e.Value)
	}
	Release(e)
	Free(q)
}

func TestRemoveEmpty(t *testing.T) {
	q := newQueue(t)
	sp := []byte("untouched")
	if e := q.RemoveHead(sp); e != nil {
		t.Errorf("remove head on empty queue returned %v", e)
	}
	if e := q.RemoveTail(sp); e != nil {
		t.Errorf("remove tail on empty queue returned %v", e)
	}
	if string(sp) != "untouched" {
		t.Errorf("buffer modified: %q", sp)
	}
	var nilQ *Queue
	if nilQ.RemoveHead(sp) != nil || nilQ.RemoveTail(sp) != nil {
		t.Errorf("remove on nil queue must fail")
	}
	if nilQ.Size() != 0 {
		t.Errorf("nil queue size must be 0")
	}
	Free(q)
}

func TestCopyValue(t *testing.T) {
	tests := []struct {
		size   int
		value  string
		expect string
		n      int
	}{
		{size: 0, value: "abc", expect: "", n: 0},
		{size: 1, value: "abc", expect: "", n: 0},
		{size: 3, value: "abc", expect: "ab", n: 2},
		{size: 4, value: "abc", expect: "abc", n: 3},
		{size: 10, value: "abc", expect: "abc", n: 3},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("%d_%s", tc.size, tc.value), func(t *testing.T) {
			sp := make([]byte, tc.size)
			n := CopyValue(sp, tc.value)
			if n != tc.n {
				t.Errorf("copied, expect: [%v], got: [%v]", tc.n, n)
			}
			if got := cString(sp); got != tc.expect {
				t.Errorf("buffer, expect: [%v], got: [%v]", tc.expect, got)
			}
		})
	}
}

func TestAllocFailure(t *testing.T) {
	defer SetAllocFailPercent(0)

	q := newQueue(t, "a", "b")
	before := ElementsInUse()
	SetAllocFailPercent(100)
	if q.InsertHead("x") || q.InsertTail("y") {
		t.Errorf("insert must fail when allocation fails")
	}
	if New() != nil {
		t.Errorf("new must fail when allocation fails")
	}
	if ElementsInUse() != before {
		t.Errorf("failed insert leaked %v elements", ElementsInUse()-before)
	}
	SetAllocFailPercent(0)
	expectValues(t, q, "a", "b")

	SetAllocFailPercent(50)
	inserted := 2
	for i := 0; i < 200; i++ {
		if q.InsertTail("z") {
			inserted++
		}
		if err := q.Check(0); err != nil {
			t.Fatalf("broken ring after partial failures: %v", err)
		}
	}
	SetAllocFailPercent(0)
	if q.Size() != inserted {
		t.Errorf("size mismatch, expect: [%v], got: [%v]", inserted, q.Size())
	}
	Free(q)
	if ElementsInUse() != before-2 {
		t.Errorf("elements leaked after free: %v", ElementsInUse()-before+2)
	}

	SetAllocFailPercent(-5)
	if AllocFailPercent() != 0 {
		t.Errorf("percent must clamp to 0, got: [%v]", AllocFailPercent())
	}
	SetAllocFailPercent(500)
	if AllocFailPercent() != 100 {
		t.Errorf("percent must clamp to 100, got: [%v]", AllocFailPercent())
	}
}

func TestRandomOpsKeepInvariants(t *testing.T) {
	q := newQueue(t)
	model := make([]string, 0)
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		v := fmt.Sprintf("v%d", r.Intn(50))
		switch r.Intn(6) {
		case 0:
			q.InsertHead(v)
			model = append([]string{v}, model...)
		case 1:
			q.InsertTail(v)
			model = append(model, v)
		case 2:
			e := q.RemoveHead(nil)
			if len(model) == 0 {
				if e != nil {
					t.Fatalf("remove head on empty returned %v", e.Value)
				}
				continue
			}
			if e == nil || e.Value != model[0] {
				t.Fatalf("remove head, expect: [%v], got: [%v]", model[0], e)
			}
			model = model[1:]
			Release(e)
		case 3:
			e := q.RemoveTail(nil)
			if len(model) == 0 {
				if e != nil {
					t.Fatalf("remove tail on empty returned %v", e.Value)
				}
				continue
			}
			if e == nil || e.Value != model[len(model)-1] {
				t.Fatalf("remove tail, expect: [%v], got: [%v]", model[len(model)-1], e)
			}
			model = model[:len(model)-1]
			Release(e)
		case 4:
			if q.DeleteMid() != (len(model) > 0) {
				t.Fatalf("delete mid result mismatch at len %v", len(model))
			}
			if len(model) > 0 {
				mid := len(model) / 2
				model = append(model[:mid:mid], model[mid+1:]...)
			}
		case 5:
			q.Reverse()
			slices.Reverse(model)
		}
		if err := q.Check(0); err != nil {
			t.Fatalf("op %d: broken ring: %v", i, err)
		}
		if q.Size() != len(model) {
			t.Fatalf("op %d: size mismatch, expect: [%v], got: [%v]", i, len(model), q.Size())
		}
	}
	expectValues(t, q, model...)
	Free(q)
}

func cString(sp []byte) string {
	for i, b := range sp {
		if b == 0 {
			return string(sp[:i])
		}
	}
	return string(sp)
}
