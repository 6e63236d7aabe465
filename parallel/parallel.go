// Package parallel provides a parallel-for primitive over index ranges,
// backed by a pool of persistent worker goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// serialThreshold is the minimum element count to use parallel dispatch.
// Below this, single-threaded is faster due to scheduling overhead.
const serialThreshold = 64

// DefaultBatchSize is the fallback work-unit batch when none is configured.
const DefaultBatchSize = 128

// task is one contiguous index range handed to a worker.
type task struct {
	start, end int
	fn         func(start, end int)
	wg         *sync.WaitGroup
}

// Pool schedules index-range tasks over persistent workers. The batch size
// controls dispatch granularity only; results never depend on it.
type Pool struct {
	numWorkers int
	batchSize  int

	workChan chan task
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

// NewPool creates a pool with one worker per logical CPU.
// batchSize <= 0 selects DefaultBatchSize.
func NewPool(batchSize int) *Pool {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Pool{
		numWorkers: runtime.GOMAXPROCS(0),
		batchSize:  batchSize,
	}
}

// start launches the persistent worker goroutines.
func (p *Pool) start() {
	if p.running {
		return
	}
	p.workChan = make(chan task, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// Close signals all workers to exit and waits for them. The pool may be
// reused after Close; the next ForEach restarts the workers.
func (p *Pool) Close() {
	if !p.running {
		return
	}
	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	p.running = false
}

// worker runs in a goroutine, processing tasks until stopped.
func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.stopChan:
			return
		case t, ok := <-p.workChan:
			if !ok {
				return
			}
			t.fn(t.start, t.end)
			t.wg.Done()
		}
	}
}

// ForEach invokes fn over [0, n) split into batches, and returns once every
// batch has completed. Batches run concurrently with no ordering guarantee,
// so fn must only write state owned by its own index range. ForEach is a
// full barrier: no call returns while any batch is still running.
func (p *Pool) ForEach(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if n <= serialThreshold {
		fn(0, n)
		return
	}
	if !p.running {
		p.start()
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += p.batchSize {
		end := start + p.batchSize
		if end > n {
			end = n
		}
		wg.Add(1)
		p.workChan <- task{start: start, end: end, fn: fn, wg: &wg}
	}
	wg.Wait()
}
