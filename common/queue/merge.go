package queue

import (
	"github.com/Qthai16/queue-lab/common/list"
)

// Context ties one queue into a Group. The Group does not own Q.
type Context struct {
	Q     *Queue
	Size  int
	ID    int
	group *Group
	chain list.Node[Context]
}

// Next returns the context after c in its group, nil at the end.
func (c *Context) Next() *Context {
	return c.chain.Next().Entry()
}

// Prev returns the context before c in its group, nil at the start.
func (c *Context) Prev() *Context {
	return c.chain.Prev().Entry()
}

// Group is a chain of queue contexts, the input of Merge.
type Group struct {
	head   list.Node[Context]
	nextID int
}

func NewGroup() *Group {
	g := &Group{}
	g.head.Init(nil)
	return g
}

// Add appends q to the group and returns its context.
func (g *Group) Add(q *Queue) *Context {
	ctx := &Context{Q: q, Size: q.Size(), ID: g.nextID, group: g}
	g.nextID++
	ctx.chain.Init(ctx)
	ctx.chain.AddBefore(&g.head)
	return ctx
}

// Remove drops ctx from the group. The queue itself is left alone. A context
// that belongs to another group, or to none, is ignored.
func (g *Group) Remove(ctx *Context) {
	if ctx == nil || ctx.group != g {
		return
	}
	ctx.chain.DelInit()
	ctx.group = nil
}

// Accumulator returns the first context holding a queue, the one Merge
// collects into. nil if there is none.
func (g *Group) Accumulator() *Context {
	for ctx := g.First(); ctx != nil; ctx = ctx.Next() {
		if ctx.Q != nil {
			return ctx
		}
	}
	return nil
}

func (g *Group) First() *Context {
	return g.head.First()
}

func (g *Group) Last() *Context {
	return g.head.Last()
}

func (g *Group) Len() int {
	return g.head.Len()
}

func (g *Group) Contexts() []*Context {
	return g.head.Entries()
}

// Merge moves the elements of every queue in g into the first queue of g and
// sorts it. Contexts without a queue are skipped. The other queues are left
// empty but stay in the group. It returns the number of elements in the
// merged queue.
func Merge(g *Group) int {
	if g == nil {
		return 0
	}
	acc := g.Accumulator()
	if acc == nil {
		return 0
	}
	for ctx := acc.Next(); ctx != nil; ctx = ctx.Next() {
		if ctx.Q == nil {
			continue
		}
		acc.Q.head.SpliceTail(&ctx.Q.head)
		ctx.Size = 0
	}
	acc.Q.Sort()
	acc.Size = acc.Q.Size()
	return acc.Size
}
