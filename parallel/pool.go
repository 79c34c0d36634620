// Package parallel provides a small worker pool for row-parallel pixel passes.
// Each blur or reconstruction pass reads a snapshot taken up front, so rows are
// independent and can be flushed between passes.
package parallel

import (
	"runtime"
	"sync"
)

type Pool struct {
	workers sync.WaitGroup
	tasks   sync.WaitGroup
	work    chan func()
	close   func()
}

// Start launches numWorkers goroutines; numWorkers < 1 means GOMAXPROCS.
// With a single worker the pool degenerates to running tasks inline.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{close: func() {}}

	if numWorkers > 1 {
		pool.work = make(chan func(), numWorkers)

		for range numWorkers {
			pool.workers.Go(func() {
				for f := range pool.work {
					f()
					pool.tasks.Done()
				}
			})
		}

		pool.close = sync.OnceFunc(func() { close(pool.work) })
	}

	return pool
}

// Do schedules f, or runs it inline for a single-worker pool.
func (p *Pool) Do(f func()) {
	if p.work == nil {
		f()
		return
	}
	p.tasks.Add(1)
	p.work <- f
}

// Flush blocks until every scheduled task has finished. The pool stays usable.
func (p *Pool) Flush() {
	p.tasks.Wait()
}

// Stop flushes outstanding tasks and shuts the workers down.
func (p *Pool) Stop() {
	p.tasks.Wait()
	p.close()
	p.workers.Wait()
}
