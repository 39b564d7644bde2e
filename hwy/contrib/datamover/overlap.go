// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package datamover

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/ajroetker/hwy-datamover/hwy/stream"
)

// splitKernel is a kernel whose read and write phases can run on different
// buffers.
type splitKernel[T any] interface {
	BlockKernel[T]
	newArena() *arena[T]
	fill(a *arena[T], r WordReader[T]) error
	drain(a *arena[T], w WordWriter[T]) error
}

// runOverlapped runs k with two buffers handed back and forth between a
// reader goroutine and a writer goroutine. A buffer is only passed to the
// writer once its block is completely read, and only returned to the reader
// once the block is completely written, so no buffer is ever filled and
// drained at the same time.
//
// A write failure aborts in, so the reader cannot stay blocked waiting for
// input; the write error is returned.
func runOverlapped[T any](k splitKernel[T], blocks int, in, out *stream.Stream[T]) error {
	checkStreams(k.Name(), k.Width(), in, out)
	if blocks <= 0 {
		return nil
	}

	free := make(chan *arena[T], 2)
	full := make(chan *arena[T], 2)
	free <- k.newArena()
	free <- k.newArena()

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		defer close(full)
		for b := range blocks {
			var a *arena[T]
			select {
			case a = <-free:
			case <-ctx.Done():
				return nil
			}
			if err := k.fill(a, in); err != nil {
				return fmt.Errorf("%s: reading block %d of %d: %w", k.Name(), b, blocks, err)
			}
			full <- a
		}
		return nil
	})
	var writeErr error
	g.Go(func() error {
		b := 0
		for a := range full {
			if err := k.drain(a, out); err != nil {
				writeErr = fmt.Errorf("%s: writing block %d of %d: %w", k.Name(), b, blocks, err)
				// The reader may be blocked on in; release it.
				in.Abort()
				return writeErr
			}
			free <- a
			b++
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		if writeErr != nil {
			return writeErr
		}
		return err
	}
	klog.V(2).Infof("%s: processed %d blocks of %d words overlapped", k.Name(), blocks, k.WordsPerBlock())
	return nil
}
