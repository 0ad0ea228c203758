package pool

import "sync"

// SlicePool hands out reusable slices of T.
//
// Slices returned by Get are zeroed, so callers never observe values left behind by a
// previous user.
type SlicePool[T any] struct {
	pool sync.Pool
}

// NewSlicePool creates an empty pool for slices of T.
func NewSlicePool[T any]() *SlicePool[T] {
	return &SlicePool[T]{
		pool: sync.Pool{
			New: func() any { return &[]T{} },
		},
	}
}

// Get retrieves a zeroed slice of exactly size elements.
//
// If the pooled slice has insufficient capacity, a new slice is allocated. The caller must
// call the returned release function exactly once, after which the slice must not be used.
//
// Example:
//
//	chunks, release := chunkPool.Get(count)
//	defer release()
func (sp *SlicePool[T]) Get(size int) ([]T, func()) {
	ptr, _ := sp.pool.Get().(*[]T)
	if ptr == nil {
		ptr = &[]T{}
	}

	slice := *ptr
	if cap(slice) < size {
		slice = make([]T, size)
	} else {
		slice = slice[:size]
		clear(slice)
	}
	*ptr = slice

	return slice, func() { sp.pool.Put(ptr) }
}
