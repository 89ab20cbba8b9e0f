package queue

import (
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/Qthai16/queue-lab/utils/hashkit"

	"github.com/aviddiviner/go-murmur"
)

const (
	MurmurSeed    = 0x9747b28c
	DefaultHasher = "jenkins"
)

// Hasher32 is the part of hash.Hash32 a fingerprint needs.
type Hasher32 interface {
	Reset()
	Write(p []byte) (int, error)
	Sum32() uint32
}

type HashFn func() Hasher32

var hashers = map[string]HashFn{
	"jenkins":  func() Hasher32 { return hashkit.NewJenkins32() },
	"fnv":      func() Hasher32 { return fnv.New32a() },
	"murmur":   func() Hasher32 { return murmur.New32(MurmurSeed) },
	"murmur64": func() Hasher32 { return hashkit.NewFolded64() },
}

// LookupHasher returns the hash constructor registered under name.
func LookupHasher(name string) (HashFn, error) {
	fn, ok := hashers[name]
	if !ok {
		return nil, fmt.Errorf("unknown hash %q, want one of %v", name, HasherNames())
	}
	return fn, nil
}

func HasherNames() []string {
	names := make([]string, 0, len(hashers))
	for k := range hashers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Fingerprint digests the values of q in order. Each value is followed by a
// zero byte so ["ab"] and ["a", "b"] differ. An empty or nil queue hashes
// the empty input.
func Fingerprint(q *Queue, h Hasher32) uint32 {
	h.Reset()
	sep := []byte{0}
	if q != nil {
		q.head.Each(func(e *Element) bool {
			h.Write([]byte(e.Value))
			h.Write(sep)
			return true
		})
	}
	return h.Sum32()
}
