package pool

import (
	"sync"
	"sync/atomic"
)

type TPoolConfig[T any] struct {
	Generate func() *T // contructor, new(T) is used if nil
	Reset    func(*T)  // called after get T* from pool
	Cleanup  func(*T)  // called before put T* to pool
}

// generic sync.Pool wrapper, refer from thrift.pool
type TPool[T any] struct {
	pool sync.Pool
	Conf TPoolConfig[T]
	gets atomic.Int64
	puts atomic.Int64
}

func NewTPool[T any](conf TPoolConfig[T]) *TPool[T] {
	if conf.Generate == nil {
		conf.Generate = func() *T {
			return new(T)
		}
	}
	return &TPool[T]{
		pool: sync.Pool{
			New: func() interface{} {
				return conf.Generate()
			},
		},
		Conf: conf,
	}
}

func (p *TPool[T]) Get() *T {
	r := p.pool.Get().(*T)
	if p.Conf.Reset != nil {
		p.Conf.Reset(r)
	}
	p.gets.Add(1)
	return r
}

// Put returns *r to the pool and clears the caller's reference.
func (p *TPool[T]) Put(r **T) {
	if r == nil || *r == nil {
		return
	}
	if p.Conf.Cleanup != nil {
		p.Conf.Cleanup(*r)
	}
	p.pool.Put(*r)
	*r = nil
	p.puts.Add(1)
}

// InUse is the number of objects taken out and not yet returned.
func (p *TPool[T]) InUse() int64 {
	return p.gets.Load() - p.puts.Load()
}
