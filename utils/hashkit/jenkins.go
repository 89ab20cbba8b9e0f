// Package hashkit holds small non-cryptographic hashes.
package hashkit

import "hash"

const (
	DefaultSum32 = 0
)

// sum32 is a streaming Jenkins one-at-a-time hash. The running state is kept
// unfinalized so Write can be called repeatedly; Sum32 finalizes a copy.
type sum32 uint32

func (s *sum32) BlockSize() int { return 1 }
func (s *sum32) Reset()         { *s = DefaultSum32 }
func (s *sum32) Size() int      { return 4 }
func (s *sum32) Sum(in []byte) []byte {
	v := s.Sum32()
	return append(in, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func (s *sum32) Sum32() uint32 { return finalize(uint32(*s)) }
func (s *sum32) Write(data []byte) (int, error) {
	hash := uint32(*s)
	for _, b := range data {
		hash = mix(hash, b)
	}
	*s = sum32(hash)
	return len(data), nil
}

func mix(hash uint32, b byte) uint32 {
	hash += uint32(b)
	hash += hash << 10
	hash ^= hash >> 6
	return hash
}

func finalize(hash uint32) uint32 {
	hash += hash << 3
	hash ^= hash >> 11
	hash += hash << 15
	return hash
}

func NewJenkins32() hash.Hash32 {
	var s sum32 = DefaultSum32
	return &s
}

func Jenkins(data []byte) uint32 {
	var hash uint32 = DefaultSum32
	for _, b := range data {
		hash = mix(hash, b)
	}
	return finalize(hash)
}

func JenkinsString(data string) uint32 {
	var hash uint32 = DefaultSum32
	for i := 0; i < len(data); i++ {
		hash = mix(hash, data[i])
	}
	return finalize(hash)
}
