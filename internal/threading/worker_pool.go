package threading

import (
	"context"
	"runtime"
	"sync"
)

// WorkerPool manages a fixed set of worker goroutines that drain a shared
// job queue. The renderer submits column batches to it every frame.
type WorkerPool struct {
	numWorkers int
	jobQueue   chan func()
	wg         sync.WaitGroup
	quit       chan struct{}
}

// NewWorkerPool creates a pool with the given number of workers. Zero or
// negative selects one worker per CPU.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		numWorkers: numWorkers,
		jobQueue:   make(chan func(), numWorkers*2),
		quit:       make(chan struct{}),
	}
}

// Start launches the worker goroutines. Must be called before Submit.
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		go wp.worker()
	}
}

func (wp *WorkerPool) worker() {
	for {
		select {
		case job := <-wp.jobQueue:
			job()
			wp.wg.Done()
		case <-wp.quit:
			return
		}
	}
}

// Submit enqueues a job. Pair with Wait to block until the queue drains.
func (wp *WorkerPool) Submit(job func()) {
	wp.wg.Add(1)
	wp.jobQueue <- job
}

// Wait blocks until every submitted job has completed.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// Stop shuts the worker goroutines down. The pool cannot be restarted.
func (wp *WorkerPool) Stop() {
	close(wp.quit)
}

// Workers returns the number of workers in the pool.
func (wp *WorkerPool) Workers() int {
	return wp.numWorkers
}

// ParallelFor runs fn for every index in [start, end), chunked across the
// pool, and blocks until all chunks finish.
func (wp *WorkerPool) ParallelFor(start, end int, fn func(int)) {
	wp.ParallelForWithContext(context.Background(), start, end, fn)
}

// ParallelForWithContext is ParallelFor with cancellation. Workers stop
// picking up further iterations once the context is done; iterations
// already running are not interrupted.
func (wp *WorkerPool) ParallelForWithContext(ctx context.Context, start, end int, fn func(int)) {
	if start >= end {
		return
	}

	totalWork := end - start
	chunkSize := totalWork / wp.numWorkers
	if chunkSize < 1 {
		chunkSize = 1
	}

	for i := start; i < end; i += chunkSize {
		chunkStart := i
		chunkEnd := chunkStart + chunkSize
		if chunkEnd > end {
			chunkEnd = end
		}
		wp.Submit(func() {
			for j := chunkStart; j < chunkEnd; j++ {
				select {
				case <-ctx.Done():
					return
				default:
					fn(j)
				}
			}
		})
	}
	wp.Wait()
}
