// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool used to
// spread independent blocks across goroutines. A Pool is created once and
// reused across many batch operations, so no goroutines are spawned per call.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	err := pool.ParallelFor(numBlocks, func(start, end int) error {
//	    return processBlocks(start, end)
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"

	"k8s.io/klog/v2"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool

	// sendMu is held for reading while work is handed to workC and for
	// writing while workC is closed.
	sendMu sync.RWMutex
}

// workItem represents one contiguous range handed to a worker.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
	}

	for range numWorkers {
		go p.worker()
	}
	klog.V(2).Infof("workerpool: started %d workers", numWorkers)
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe, as is calling it while ParallelFor
// runs on another goroutine; later ParallelFor calls run sequentially.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.sendMu.Lock()
		defer p.sendMu.Unlock()
		p.closed.Store(true)
		close(p.workC)
	})
}

// ParallelFor calls fn over [0, n) split into at most NumWorkers contiguous
// ranges, one per worker, and blocks until all ranges are done.
// It returns the error of the lowest range that failed, or nil.
//
// On a closed pool, or when only one range is needed, fn runs on the calling
// goroutine.
func (p *Pool) ParallelFor(n int, fn func(start, end int) error) error {
	if n <= 0 {
		return nil
	}

	workers := min(p.numWorkers, n)
	if workers == 1 {
		return fn(0, n)
	}
	p.sendMu.RLock()
	if p.closed.Load() {
		p.sendMu.RUnlock()
		return fn(0, n)
	}

	chunkSize := (n + workers - 1) / workers
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		start := i * chunkSize
		if start >= n {
			break
		}
		end := min(start+chunkSize, n)
		wg.Add(1)
		p.workC <- workItem{
			fn: func() {
				errs[i] = fn(start, end)
			},
			barrier: &wg,
		}
	}
	p.sendMu.RUnlock()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
