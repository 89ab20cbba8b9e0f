package main

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/Qthai16/queue-lab/common/queue"
	"github.com/Qthai16/queue-lab/utils"
)

const (
	defaultLength    = 1024
	defaultTimeLimit = time.Second
	defaultShowLimit = 50
	maxSourceDepth   = 8
)

type harnessOptions struct {
	Verbose   int
	Malloc    int           // percent of allocations made to fail
	Length    int           // buffer size used by rh/rt
	TimeLimit time.Duration // per command, 0 disables
	ShowLimit int           // values printed per queue
	Hash      string
	Echo      bool
}

func defaultOptions() harnessOptions {
	return harnessOptions{
		Verbose:   utils.VerboseInfo,
		Length:    defaultLength,
		TimeLimit: defaultTimeLimit,
		ShowLimit: defaultShowLimit,
		Hash:      queue.DefaultHasher,
	}
}

type optionDef struct {
	doc string
	get func(o *harnessOptions) string
	set func(o *harnessOptions, v string) error
}

func parseIntRange(v string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidArg, v)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%w: %v not in [%v, %v]", ErrInvalidArg, n, lo, hi)
	}
	return n, nil
}

var optionDefs = map[string]optionDef{
	"verbose": {
		doc: "verbosity level 0-3",
		get: func(o *harnessOptions) string { return strconv.Itoa(o.Verbose) },
		set: func(o *harnessOptions, v string) error {
			n, err := parseIntRange(v, utils.VerboseQuiet, utils.VerboseDebug)
			if err != nil {
				return err
			}
			o.Verbose = n
			utils.SetVerbose(n)
			return nil
		},
	},
	"malloc": {
		doc: "percent of allocations that fail",
		get: func(o *harnessOptions) string { return strconv.Itoa(o.Malloc) },
		set: func(o *harnessOptions, v string) error {
			n, err := parseIntRange(v, 0, 100)
			if err != nil {
				return err
			}
			o.Malloc = n
			queue.SetAllocFailPercent(n)
			return nil
		},
	},
	"length": {
		doc: "buffer size for removed strings",
		get: func(o *harnessOptions) string { return strconv.Itoa(o.Length) },
		set: func(o *harnessOptions, v string) error {
			n, err := parseIntRange(v, 1, 1<<20)
			if err != nil {
				return err
			}
			o.Length = n
			return nil
		},
	},
	"timelimit": {
		doc: "per command time limit in milliseconds, 0 disables",
		get: func(o *harnessOptions) string { return strconv.FormatInt(o.TimeLimit.Milliseconds(), 10) },
		set: func(o *harnessOptions, v string) error {
			n, err := parseIntRange(v, 0, 3600*1000)
			if err != nil {
				return err
			}
			o.TimeLimit = time.Duration(n) * time.Millisecond
			return nil
		},
	},
	"show": {
		doc: "values printed per queue, 0 prints all",
		get: func(o *harnessOptions) string { return strconv.Itoa(o.ShowLimit) },
		set: func(o *harnessOptions, v string) error {
			n, err := parseIntRange(v, 0, 1<<20)
			if err != nil {
				return err
			}
			o.ShowLimit = n
			return nil
		},
	},
	"hash": {
		doc: "fingerprint hash for the hash command",
		get: func(o *harnessOptions) string { return o.Hash },
		set: func(o *harnessOptions, v string) error {
			if _, err := queue.LookupHasher(v); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidArg, err)
			}
			o.Hash = v
			return nil
		},
	},
	"echo": {
		doc: "echo each command before running it",
		get: func(o *harnessOptions) string { return strconv.FormatBool(o.Echo) },
		set: func(o *harnessOptions, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%w: %q is not a bool", ErrInvalidArg, v)
			}
			o.Echo = b
			return nil
		},
	},
}

func optionNames() []string {
	names := make([]string, 0, len(optionDefs))
	for k := range optionDefs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
