package fragment

import "github.com/eak1mov/go-libfragments/tile"

// Pool is a free list of recycled fragments. It is not safe for concurrent use.
type Pool struct {
	free []*Fragment
}

func NewPool() *Pool {
	return &Pool{}
}

// Get returns an empty fragment assigned to the tile, reusing a recycled one if available.
func (p *Pool) Get(id tile.ID, size tile.Size) *Fragment {
	n := len(p.free)
	if n == 0 {
		return New(id, size)
	}
	f := p.free[n-1]
	p.free[n-1] = nil
	p.free = p.free[:n-1]
	f.Init(id, size)
	return f
}

// Put recycles the fragment and returns it to the pool.
func (p *Pool) Put(f *Fragment) {
	f.Recycle()
	p.free = append(p.free, f)
}

// Len returns the number of fragments waiting for reuse.
func (p *Pool) Len() int {
	return len(p.free)
}
