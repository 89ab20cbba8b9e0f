package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/Qthai16/queue-lab/common/queue"
	"github.com/Qthai16/queue-lab/utils"
)

func newCommandTable() map[string]*command {
	table := []*command{
		{name: "new", usage: "new", doc: "Create a new queue and make it current", maxArgs: 0, mutates: true, fn: doNew},
		{name: "free", usage: "free", doc: "Free the current queue", maxArgs: 0, mutates: true, fn: doFree},
		{name: "prev", usage: "prev", doc: "Switch to the previous queue", maxArgs: 0, fn: doPrev},
		{name: "next", usage: "next", doc: "Switch to the next queue", maxArgs: 0, fn: doNext},
		{name: "ih", usage: "ih str [n]", doc: "Insert str at head n times, str RAND inserts random strings", minArgs: 1, maxArgs: 2, mutates: true, fn: doInsertHead},
		{name: "it", usage: "it str [n]", doc: "Insert str at tail n times, str RAND inserts random strings", minArgs: 1, maxArgs: 2, mutates: true, fn: doInsertTail},
		{name: "rh", usage: "rh [str]", doc: "Remove from head, optionally compare with str", maxArgs: 1, mutates: true, fn: doRemoveHead},
		{name: "rt", usage: "rt [str]", doc: "Remove from tail, optionally compare with str", maxArgs: 1, mutates: true, fn: doRemoveTail},
		{name: "size", usage: "size [n]", doc: "Compute queue size n times", maxArgs: 1, fn: doSize},
		{name: "dm", usage: "dm", doc: "Delete the middle element", maxArgs: 0, mutates: true, fn: doDeleteMid},
		{name: "dedup", usage: "dedup", doc: "Delete every value that has duplicates (sorted queue)", maxArgs: 0, mutates: true, fn: doDedup},
		{name: "swap", usage: "swap", doc: "Swap every two adjacent elements", maxArgs: 0, mutates: true, fn: doSwap},
		{name: "reverse", usage: "reverse", doc: "Reverse the queue", maxArgs: 0, mutates: true, fn: doReverse},
		{name: "reverseK", usage: "reverseK k", doc: "Reverse every block of k elements", minArgs: 1, maxArgs: 1, mutates: true, fn: doReverseK},
		{name: "sort", usage: "sort", doc: "Sort the queue ascending", maxArgs: 0, mutates: true, fn: doSort},
		{name: "descend", usage: "descend", doc: "Delete elements with a greater element after them", maxArgs: 0, mutates: true, fn: doDescend},
		{name: "merge", usage: "merge", doc: "Merge all queues into the first one, sorted", maxArgs: 0, mutates: true, fn: doMerge},
		{name: "show", usage: "show [-json]", doc: "Show every queue", maxArgs: 1, fn: doShow},
		{name: "hash", usage: "hash", doc: "Print the fingerprint of the current queue", maxArgs: 0, fn: doHash},
		{name: "stats", usage: "stats [-json]", doc: "Print command and error counters", maxArgs: 1, fn: doStats},
		{name: "option", usage: "option [name value]", doc: "Show or set options", maxArgs: 2, fn: doOption},
		{name: "source", usage: "source file", doc: "Run commands from file", minArgs: 1, maxArgs: 1, untimed: true, fn: doSource},
		{name: "help", usage: "help", doc: "Show this help", maxArgs: 0, fn: doHelp},
		{name: "quit", usage: "quit", doc: "Exit", maxArgs: 0, fn: doQuit},
	}
	cmds := make(map[string]*command, len(table))
	for _, cmd := range table {
		cmds[cmd.name] = cmd
	}
	return cmds
}

func doNew(c *Console, args []string) error {
	q := queue.New()
	if q == nil {
		return fmt.Errorf("%w: new queue", ErrAllocFail)
	}
	c.cur = c.group.Add(q)
	return nil
}

func doFree(c *Console, args []string) error {
	if c.cur == nil {
		return ErrNoQueue
	}
	old := c.cur
	c.cur = old.Prev()
	if c.cur == nil {
		c.cur = old.Next()
	}
	queue.Free(old.Q)
	c.group.Remove(old)
	return nil
}

func doPrev(c *Console, args []string) error {
	if c.cur == nil {
		return ErrNoQueue
	}
	prev := c.cur.Prev()
	if prev == nil {
		return fmt.Errorf("%w: q%v is the first queue", ErrInvalidArg, c.cur.ID)
	}
	c.cur = prev
	c.printf("current: q%v\n", c.cur.ID)
	return nil
}

func doNext(c *Console, args []string) error {
	if c.cur == nil {
		return ErrNoQueue
	}
	next := c.cur.Next()
	if next == nil {
		return fmt.Errorf("%w: q%v is the last queue", ErrInvalidArg, c.cur.ID)
	}
	c.cur = next
	c.printf("current: q%v\n", c.cur.ID)
	return nil
}

// repeatArg parses the optional repeat count at args[i], defaulting to 1.
func repeatArg(args []string, i int) (int, error) {
	if len(args) <= i {
		return 1, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: repeat count %q", ErrInvalidArg, args[i])
	}
	return n, nil
}

func doInsert(c *Console, args []string, insert func(q *queue.Queue, s string) bool) error {
	q, err := c.current()
	if err != nil {
		return err
	}
	n, err := repeatArg(args, 1)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		s := args[0]
		if s == RandArgument {
			s = randString(c.rnd)
		}
		if !insert(q, s) {
			return fmt.Errorf("%w: insert %q after %v of %v", ErrAllocFail, s, i, n)
		}
	}
	return nil
}

func doInsertHead(c *Console, args []string) error {
	return doInsert(c, args, (*queue.Queue).InsertHead)
}

func doInsertTail(c *Console, args []string) error {
	return doInsert(c, args, (*queue.Queue).InsertTail)
}

func doRemove(c *Console, args []string, remove func(q *queue.Queue, sp []byte) *queue.Element) error {
	q, err := c.current()
	if err != nil {
		return err
	}
	sp := make([]byte, c.opts.Length)
	e := remove(q, sp)
	if e == nil {
		if len(args) > 0 {
			return fmt.Errorf("%w: expected %q", ErrEmptyQueue, args[0])
		}
		utils.LogWarn("[qtest] remove on empty queue")
		return nil
	}
	defer queue.Release(e)
	got := string(sp[:bytes.IndexByte(sp, 0)])
	c.printf("Removed %v from queue\n", got)
	if len(args) > 0 && got != args[0] {
		return fmt.Errorf("%w: removed %q, expected %q", ErrMismatch, got, args[0])
	}
	return nil
}

func doRemoveHead(c *Console, args []string) error {
	return doRemove(c, args, (*queue.Queue).RemoveHead)
}

func doRemoveTail(c *Console, args []string) error {
	return doRemove(c, args, (*queue.Queue).RemoveTail)
}

func doSize(c *Console, args []string) error {
	q, err := c.current()
	if err != nil {
		return err
	}
	n, err := repeatArg(args, 0)
	if err != nil {
		return err
	}
	size := 0
	for i := 0; i < n; i++ {
		size = q.Size()
	}
	c.printf("Queue size = %v\n", size)
	return nil
}

func doDeleteMid(c *Console, args []string) error {
	q, err := c.current()
	if err != nil {
		return err
	}
	if !q.DeleteMid() {
		return fmt.Errorf("%w: delete middle", ErrEmptyQueue)
	}
	return nil
}

func doDedup(c *Console, args []string) error {
	q, err := c.current()
	if err != nil {
		return err
	}
	if !q.DeleteDup() {
		return fmt.Errorf("%w: delete duplicates", ErrEmptyQueue)
	}
	return nil
}

func doSwap(c *Console, args []string) error {
	q, err := c.current()
	if err != nil {
		return err
	}
	q.Swap()
	return nil
}

func doReverse(c *Console, args []string) error {
	q, err := c.current()
	if err != nil {
		return err
	}
	q.Reverse()
	return nil
}

func doReverseK(c *Console, args []string) error {
	q, err := c.current()
	if err != nil {
		return err
	}
	k, err := strconv.Atoi(args[0])
	if err != nil || k < 1 {
		return fmt.Errorf("%w: k %q", ErrInvalidArg, args[0])
	}
	q.ReverseK(k)
	return nil
}

func doSort(c *Console, args []string) error {
	q, err := c.current()
	if err != nil {
		return err
	}
	q.Sort()
	return nil
}

func doDescend(c *Console, args []string) error {
	q, err := c.current()
	if err != nil {
		return err
	}
	c.printf("Remaining %v\n", q.Descend())
	return nil
}

// doMerge merges the chain into its first queue and frees the emptied donors.
func doMerge(c *Console, args []string) error {
	if c.cur == nil {
		return ErrNoQueue
	}
	first := c.group.Accumulator()
	if first == nil {
		return ErrNoQueue
	}
	n := queue.Merge(c.group)
	for _, ctx := range c.group.Contexts() {
		if ctx == first {
			continue
		}
		queue.Free(ctx.Q)
		c.group.Remove(ctx)
	}
	c.cur = first
	c.printf("Merged size = %v\n", n)
	return nil
}

func doShow(c *Console, args []string) error {
	if len(args) > 0 {
		if args[0] != "-json" {
			return fmt.Errorf("%w: show %q", ErrInvalidArg, args[0])
		}
		s, err := renderJSON(context.Background(), c.snapshots())
		if err != nil {
			return err
		}
		c.printf("%v\n", s)
		return nil
	}
	for _, snap := range c.snapshots() {
		c.printf("%v\n", snap.String(c.opts.ShowLimit))
	}
	return nil
}

func doHash(c *Console, args []string) error {
	q, err := c.current()
	if err != nil {
		return err
	}
	fn, err := queue.LookupHasher(c.opts.Hash)
	if err != nil {
		return err
	}
	c.printf("%v: %08x\n", c.opts.Hash, queue.Fingerprint(q, fn()))
	return nil
}

func doStats(c *Console, args []string) error {
	if len(args) > 0 {
		if args[0] != "-json" {
			return fmt.Errorf("%w: stats %q", ErrInvalidArg, args[0])
		}
		b, err := json.Marshal(c.stats)
		if err != nil {
			return err
		}
		c.printf("%s\n", b)
		return nil
	}
	c.printf("%v", c.stats)
	return nil
}

func doOption(c *Console, args []string) error {
	if len(args) == 0 {
		for _, k := range optionNames() {
			c.printf("%v = %v\n", k, optionDefs[k].get(&c.opts))
		}
		return nil
	}
	def, ok := optionDefs[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown option %q", ErrInvalidArg, args[0])
	}
	if len(args) == 1 {
		c.printf("%v = %v\n", args[0], def.get(&c.opts))
		return nil
	}
	return def.set(&c.opts, args[1])
}

func doSource(c *Console, args []string) error {
	if c.depth >= maxSourceDepth {
		return fmt.Errorf("%w: source nested deeper than %v", ErrInvalidArg, maxSourceDepth)
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	c.depth++
	defer func() { c.depth-- }()
	return c.Run(context.Background(), f, false)
}

func doHelp(c *Console, args []string) error {
	c.printHelp()
	return nil
}

func doQuit(c *Console, args []string) error {
	c.quit = true
	return nil
}
