// Package pool implements the freed-object pools the core uses to avoid
// reallocating small, high-churn structures (path element buffers, clip
// boxes, trapezoid slices) on every drawing call. Each Pool wraps a
// sync.Pool with a typed Get/Put pair and a capacity cap, falling through
// to the normal garbage-collected allocator when the pool is empty; buffers
// larger than the cap are not kept.
package pool

import "sync"

// Pool recycles slices of T. Buffers are reset to zero length (capacity
// preserved) on Put, and dropped instead if their capacity exceeds maxCap
// to keep one large transient allocation from pinning memory indefinitely.
type Pool[T any] struct {
	p      sync.Pool
	maxCap int
}

// New creates a Pool. maxCap bounds the capacity of buffers kept for
// reuse; a buffer larger than maxCap is dropped instead of recycled.
func New[T any](maxCap int) *Pool[T] {
	return &Pool[T]{maxCap: maxCap}
}

// Get returns a zero-length slice, reused from the pool when available.
func (p *Pool[T]) Get() []T {
	if v := p.p.Get(); v != nil {
		return v.([]T)[:0]
	}
	return nil
}

// Put returns s to the pool for reuse. Slices whose capacity exceeds
// maxCap are discarded rather than retained, so one oversized path
// doesn't permanently grow the pool's steady-state footprint.
func (p *Pool[T]) Put(s []T) {
	if cap(s) == 0 || cap(s) > p.maxCap {
		return
	}
	p.p.Put(s[:0]) //nolint:staticcheck // intentional: reset length, keep capacity
}

// DefaultMaxCap is the default capacity ceiling applied by packages that
// don't have a more specific size in mind (path point buffers, trapezoid
// batches, clip box lists).
const DefaultMaxCap = 1 << 12
