// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package datamover

import (
	"errors"
	"fmt"

	"github.com/ajroetker/hwy-datamover/hwy"
	"github.com/ajroetker/hwy-datamover/hwy/contrib/workerpool"
	"github.com/ajroetker/hwy-datamover/hwy/stream"
)

var errOutputFull = errors.New("datamover: output slice full")

// Apply runs a kernel over blocks stored back-to-back in src, writing the
// results back-to-back into dst. Blocks are independent, so they are spread
// across the pool's workers; newKernel is called once per worker and each
// worker uses its kernel exclusively.
//
// len(src) must be a multiple of the block size and len(dst) >= len(src).
func Apply[T any](pool *workerpool.Pool, newKernel func() (BlockKernel[T], error), src, dst []T) error {
	first, err := newKernel()
	if err != nil {
		return err
	}
	width := first.Width()
	blockSize := first.WordsPerBlock() * width
	if len(src)%blockSize != 0 {
		return fmt.Errorf("%w: %d entries is not a whole number of %d-entry %s blocks",
			ErrGeometry, len(src), blockSize, first.Name())
	}
	if len(dst) < len(src) {
		return fmt.Errorf("%w: output holds %d entries, need %d", ErrGeometry, len(dst), len(src))
	}

	blocks := len(src) / blockSize
	return pool.ParallelFor(blocks, func(start, end int) error {
		k := first
		if start != 0 {
			nk, err := newKernel()
			if err != nil {
				return err
			}
			k = nk
		}
		r := &sliceReader[T]{src: src[start*blockSize : end*blockSize], width: width}
		w := &sliceWriter[T]{dst: dst[start*blockSize : end*blockSize]}
		for b := start; b < end; b++ {
			if err := k.ProcessBlock(r, w); err != nil {
				return fmt.Errorf("%s: block %d of %d: %w", k.Name(), b, blocks, err)
			}
		}
		return nil
	})
}

// sliceReader reads words from a flat slice.
type sliceReader[T any] struct {
	src   []T
	width int
	pos   int
}

func (r *sliceReader[T]) Read() (hwy.Word[T], error) {
	if r.pos+r.width > len(r.src) {
		return hwy.Word[T]{}, stream.ErrClosed
	}
	w := hwy.LoadN(r.src[r.pos:], r.width)
	r.pos += r.width
	return w, nil
}

// sliceWriter writes words to a flat slice.
type sliceWriter[T any] struct {
	dst []T
	pos int
}

func (w *sliceWriter[T]) Write(word hwy.Word[T]) error {
	n := word.NumLanes()
	if w.pos+n > len(w.dst) {
		return errOutputFull
	}
	hwy.Store(word, w.dst[w.pos:w.pos+n])
	w.pos += n
	return nil
}
