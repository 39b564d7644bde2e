// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.NumWorkers() != 4 {
		t.Errorf("NumWorkers() = %d, want 4", pool.NumWorkers())
	}
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	if pool.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), runtime.GOMAXPROCS(0))
	}
}

func TestParallelFor(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)

	err := pool.ParallelFor(n, func(start, end int) error {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
		return nil
	})
	if err != nil {
		t.Fatalf("ParallelFor() error = %v", err)
	}

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestParallelForCoversEachIndexOnce(t *testing.T) {
	pool := New(3)
	defer pool.Close()

	for _, n := range []int{1, 2, 3, 7, 10, 64} {
		var hits = make([]atomic.Int32, n)
		_ = pool.ParallelFor(n, func(start, end int) error {
			for i := start; i < end; i++ {
				hits[i].Add(1)
			}
			return nil
		})
		for i := range hits {
			if got := hits[i].Load(); got != 1 {
				t.Errorf("n=%d: index %d visited %d times", n, i, got)
			}
		}
	}
}

func TestParallelForError(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	errBoom := errors.New("boom")
	err := pool.ParallelFor(40, func(start, end int) error {
		if start <= 25 && 25 < end {
			return errBoom
		}
		return nil
	})
	if !errors.Is(err, errBoom) {
		t.Errorf("ParallelFor() error = %v, want %v", err, errBoom)
	}
}

func TestParallelForAfterClose(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close()

	calls := 0
	err := pool.ParallelFor(10, func(start, end int) error {
		calls++
		if start != 0 || end != 10 {
			t.Errorf("got range [%d, %d), want [0, 10)", start, end)
		}
		return nil
	})
	if err != nil || calls != 1 {
		t.Errorf("closed pool: calls = %d, err = %v", calls, err)
	}
}

func TestCloseDuringParallelFor(t *testing.T) {
	for range 20 {
		pool := New(4)
		var wg sync.WaitGroup
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 50 {
					var covered atomic.Int64
					err := pool.ParallelFor(64, func(start, end int) error {
						covered.Add(int64(end - start))
						return nil
					})
					if err != nil || covered.Load() != 64 {
						t.Errorf("ParallelFor during Close: covered %d of 64, err = %v", covered.Load(), err)
						return
					}
				}
			}()
		}
		pool.Close()
		wg.Wait()
	}
}

func BenchmarkParallelFor(b *testing.B) {
	pool := New(runtime.GOMAXPROCS(0))
	defer pool.Close()

	data := make([]float32, 1<<16)
	b.ResetTimer()
	for range b.N {
		_ = pool.ParallelFor(len(data), func(start, end int) error {
			for i := start; i < end; i++ {
				data[i] = float32(i)
			}
			return nil
		})
	}
}
