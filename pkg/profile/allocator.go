package profile

import "sync/atomic"

// IDAllocator hands out unique, strictly increasing profile ids.
// It is safe for concurrent use.
type IDAllocator struct {
	last atomic.Int64
}

// NewIDAllocator returns an allocator whose first id is base+1.
func NewIDAllocator(base int64) *IDAllocator {
	a := &IDAllocator{}
	a.last.Store(base)
	return a
}

// Next returns an id greater than every id previously returned or observed.
func (a *IDAllocator) Next() int64 {
	return a.last.Add(1)
}

// Observe records an id issued elsewhere, such as one read from a saved
// profile, so that Next never returns it again.
func (a *IDAllocator) Observe(id int64) {
	for {
		last := a.last.Load()
		if id <= last || a.last.CompareAndSwap(last, id) {
			return
		}
	}
}

// Last returns the most recent id handed out or observed.
func (a *IDAllocator) Last() int64 {
	return a.last.Load()
}
