package frame

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Executor runs the chunk work of a complex frame.
//
// An Executor must call work exactly once for every index in [0, count), in any order and
// on any goroutines, and must return only after all calls have completed. Decode calls the
// executor at most once per frame; work for distinct indices may run concurrently.
type Executor func(work func(index int), count int)

// SerialExecutor runs every work item on the calling goroutine in index order.
func SerialExecutor(work func(index int), count int) {
	for i := range count {
		work(i)
	}
}

// NewParallelExecutor returns an Executor that spreads work items across up to workers
// goroutines. A workers value below 1 uses runtime.GOMAXPROCS(0).
//
// Goroutines are started per call and have exited when the executor returns. Frames with a
// single chunk run on the calling goroutine.
func NewParallelExecutor(workers int) Executor {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	return func(work func(index int), count int) {
		if count <= 1 || workers == 1 {
			SerialExecutor(work, count)
			return
		}

		var next atomic.Int64
		var wg sync.WaitGroup
		for range min(workers, count) {
			wg.Go(func() {
				for {
					i := int(next.Add(1) - 1)
					if i >= count {
						return
					}
					work(i)
				}
			})
		}
		wg.Wait()
	}
}
