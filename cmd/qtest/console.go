package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strings"

	"github.com/Qthai16/queue-lab/common"
	"github.com/Qthai16/queue-lab/common/queue"
	"github.com/Qthai16/queue-lab/utils"
)

var (
	ErrUnknownCmd  = errors.New("unknown command")
	ErrInvalidArg  = errors.New("invalid argument")
	ErrNoQueue     = errors.New("no queue, run 'new' first")
	ErrEmptyQueue  = errors.New("queue is empty")
	ErrAllocFail   = errors.New("allocation failed")
	ErrMismatch    = errors.New("value mismatch")
	ErrBrokenChain = errors.New("broken chain")
	ErrTimeLimit   = errors.New("time limit exceeded")
)

type cmdFn func(c *Console, args []string) error

type command struct {
	name    string
	usage   string
	doc     string
	minArgs int
	maxArgs int // -1 for no limit
	mutates bool
	untimed bool
	fn      cmdFn
}

// Console interprets qtest commands against a chain of queues. The most
// recently created queue is the current one.
type Console struct {
	out      io.Writer
	opts     harnessOptions
	cmds     map[string]*command
	group    *queue.Group
	cur      *queue.Context
	stats    *HarnessStats
	rnd      *rand.Rand
	errCount int
	depth    int
	quit     bool
}

func NewConsole(out io.Writer, opts harnessOptions, seed int64) *Console {
	utils.SetVerbose(opts.Verbose)
	queue.SetAllocFailPercent(opts.Malloc)
	return &Console{
		out:   out,
		opts:  opts,
		cmds:  newCommandTable(),
		group: queue.NewGroup(),
		stats: NewHarnessStats(),
		rnd:   rand.New(rand.NewSource(seed)),
	}
}

func (c *Console) printf(format string, v ...interface{}) {
	fmt.Fprintf(c.out, format, v...)
}

// ErrorCount is the number of commands that reported an error.
func (c *Console) ErrorCount() int {
	return c.errCount
}

func (c *Console) Stats() *HarnessStats {
	return c.stats
}

// Quit reports whether a quit command ran.
func (c *Console) Quit() bool {
	return c.quit
}

// Execute runs one command line. Empty lines and lines starting with '#' are
// ignored. The returned error has already been reported and counted.
func (c *Console) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	if c.opts.Echo {
		c.printf("cmd> %v\n", line)
	}
	args := strings.Fields(line)
	cmd, ok := c.cmds[args[0]]
	if !ok {
		return c.report(fmt.Errorf("%w: %q", ErrUnknownCmd, args[0]))
	}
	argc := len(args) - 1
	if argc < cmd.minArgs || (cmd.maxArgs >= 0 && argc > cmd.maxArgs) {
		return c.report(fmt.Errorf("%w: usage: %v", ErrInvalidArg, cmd.usage))
	}

	utils.LogDebug("[qtest] run %v", line)
	limit := c.opts.TimeLimit
	if cmd.untimed {
		limit = 0
	}
	w := common.StartWatchdog(limit)
	err := cmd.fn(c, args[1:])
	expired, elapsed := w.Stop()
	c.stats.Commands.Add(cmd.name, elapsed)

	if err == nil && cmd.mutates {
		err = c.checkChain()
	}
	if err == nil && expired {
		err = fmt.Errorf("%w: %v took %v", ErrTimeLimit, cmd.name, elapsed)
	}
	if err != nil {
		return c.report(err)
	}
	if cmd.mutates && c.cur != nil {
		c.printf("%v\n", NewQueueSnapshot(c.cur, true).String(c.opts.ShowLimit))
	}
	return nil
}

func (c *Console) checkChain() error {
	for _, ctx := range c.group.Contexts() {
		if err := ctx.Q.Check(0); err != nil {
			return fmt.Errorf("%w: q%v: %v", ErrBrokenChain, ctx.ID, err)
		}
		ctx.Size = ctx.Q.Size()
	}
	return nil
}

func (c *Console) report(err error) error {
	c.errCount++
	c.stats.IncErrStat(errKey(err))
	c.printf("ERROR: %v\n", err)
	utils.LogDebug("[qtest] error: %v", err)
	return err
}

func errKey(err error) string {
	switch {
	case errors.Is(err, ErrAllocFail):
		return AllocFailErrKey
	case errors.Is(err, ErrMismatch):
		return MismatchErrKey
	case errors.Is(err, ErrInvalidArg), errors.Is(err, ErrUnknownCmd):
		return InvalidArgErrKey
	case errors.Is(err, ErrBrokenChain):
		return BrokenChainErrKey
	case errors.Is(err, ErrTimeLimit):
		return TimeLimitErrKey
	}
	return OtherErrKey
}

// Run executes lines from r until EOF, quit or ctx is done. A line read after
// ctx is done is dropped.
func (c *Console) Run(ctx context.Context, r io.Reader, prompt bool) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for {
		if prompt {
			c.printf("cmd> ")
		}
		if !scanner.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		c.Execute(scanner.Text())
		if c.quit {
			return nil
		}
	}
	return scanner.Err()
}

// Close frees every queue still in the chain.
func (c *Console) Close() {
	for _, ctx := range c.group.Contexts() {
		queue.Free(ctx.Q)
		c.group.Remove(ctx)
	}
	c.cur = nil
	if leaked := queue.ElementsInUse(); leaked != 0 {
		utils.LogWarn("[qtest] %v elements still allocated", leaked)
	}
}

func (c *Console) current() (*queue.Queue, error) {
	if c.cur == nil {
		return nil, ErrNoQueue
	}
	return c.cur.Q, nil
}

func (c *Console) snapshots() []*QueueSnapshot {
	ctxs := c.group.Contexts()
	ret := make([]*QueueSnapshot, 0, len(ctxs))
	for _, ctx := range ctxs {
		ret = append(ret, NewQueueSnapshot(ctx, ctx == c.cur))
	}
	return ret
}

func (c *Console) printHelp() {
	names := make([]string, 0, len(c.cmds))
	for k := range c.cmds {
		names = append(names, k)
	}
	sort.Strings(names)
	c.printf("Commands:\n")
	for _, k := range names {
		c.printf("  %-24v | %v\n", c.cmds[k].usage, c.cmds[k].doc)
	}
	c.printf("Options:\n")
	for _, k := range optionNames() {
		c.printf("  %-10v %-8v | %v\n", k, optionDefs[k].get(&c.opts), optionDefs[k].doc)
	}
}
