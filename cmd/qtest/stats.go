package main

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const (
	AllocFailErrKey   = "alloc_fail"
	MismatchErrKey    = "mismatch"
	InvalidArgErrKey  = "invalid_arg"
	BrokenChainErrKey = "broken_chain"
	TimeLimitErrKey   = "time_limit"
	OtherErrKey       = "other"
)

type (
	JSONAtomicI64 struct {
		atomic.Int64
	}
	CmdStat struct {
		Name    string        `json:"name"`
		Count   JSONAtomicI64 `json:"count"`
		Elapsed JSONAtomicI64 `json:"elapsed_ns"`
	}
	CmdStatList struct {
		Data []*CmdStat `json:"list"`
		mu   sync.Mutex
	}
	HarnessStats struct {
		Commands *CmdStatList              `json:"commands"`
		ErrorMap map[string]*JSONAtomicI64 `json:"errors"`
	}
)

func (f *JSONAtomicI64) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%v", f.Load())), nil
}

func NewCmdStat(name string) *CmdStat {
	return &CmdStat{Name: name}
}

func (p *CmdStat) String() string {
	return fmt.Sprintf("%-10v count: %-6v elapsed: %v", p.Name, p.Count.Load(), time.Duration(p.Elapsed.Load()))
}

func NewCmdStatList() *CmdStatList {
	return &CmdStatList{Data: make([]*CmdStat, 0)}
}

// Add counts one run of name, keeping Data sorted by name.
func (l *CmdStatList) Add(name string, elapsed time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ind, found := slices.BinarySearchFunc(l.Data, name, func(s *CmdStat, target string) int {
		return strings.Compare(s.Name, target)
	})
	if !found {
		l.Data = slices.Insert(l.Data, ind, NewCmdStat(name))
	}
	l.Data[ind].Count.Add(1)
	l.Data[ind].Elapsed.Add(elapsed.Nanoseconds())
}

// Count returns how many times name ran.
func (l *CmdStatList) Count(name string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	ind, found := slices.BinarySearchFunc(l.Data, name, func(s *CmdStat, target string) int {
		return strings.Compare(s.Name, target)
	})
	if !found {
		return 0
	}
	return l.Data[ind].Count.Load()
}

func (l *CmdStatList) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var sb strings.Builder
	for _, s := range l.Data {
		sb.WriteString("  " + s.String() + "\n")
	}
	return sb.String()
}

func NewHarnessStats() *HarnessStats {
	return &HarnessStats{
		Commands: NewCmdStatList(),
		ErrorMap: map[string]*JSONAtomicI64{
			AllocFailErrKey:   {},
			MismatchErrKey:    {},
			InvalidArgErrKey:  {},
			BrokenChainErrKey: {},
			TimeLimitErrKey:   {},
			OtherErrKey:       {},
		},
	}
}

func (s *HarnessStats) IncErrStat(key string) {
	if c, ok := s.ErrorMap[key]; ok {
		c.Add(1)
		return
	}
	s.ErrorMap[OtherErrKey].Add(1)
}

func (s *HarnessStats) ErrCount(key string) int64 {
	if c, ok := s.ErrorMap[key]; ok {
		return c.Load()
	}
	return 0
}

func (s *HarnessStats) TotalErrors() int64 {
	var total int64
	for _, c := range s.ErrorMap {
		total += c.Load()
	}
	return total
}

func (s *HarnessStats) String() string {
	keys := make([]string, 0, len(s.ErrorMap))
	for k := range s.ErrorMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s1 := "Commands:\n" + s.Commands.String()
	s2 := "Errors: {"
	for i, k := range keys {
		if i > 0 {
			s2 += ", "
		}
		s2 += fmt.Sprintf("\"%v\": %v", k, s.ErrorMap[k].Load())
	}
	s2 += "}\n"
	return s1 + s2
}
