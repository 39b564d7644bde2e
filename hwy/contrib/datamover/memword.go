// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package datamover

import "github.com/ajroetker/hwy-datamover/hwy/stream"

// MemWordTranspose transposes R×C blocks at word granularity: the block is
// viewed as an R×(C/N) matrix of words and emitted column-major. Entries
// inside a word keep their order, so this is an entry-level transpose only
// when combined with a transpose of each N×N word tile (see Transpose).
//
// Rows need not be a multiple of the word width.
type MemWordTranspose[T any] struct {
	geom Geometry
	buf  *arena[T]
}

// NewMemWordTranspose creates a MemWordTranspose stage. It requires
// g.Cols to be a multiple of g.Width.
func NewMemWordTranspose[T any](g Geometry) (*MemWordTranspose[T], error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	t := &MemWordTranspose[T]{geom: g}
	t.buf = t.newArena()
	return t, nil
}

// Name returns the stage name.
func (t *MemWordTranspose[T]) Name() string { return "mem-word-transpose" }

// Width returns the word width.
func (t *MemWordTranspose[T]) Width() int { return t.geom.Width }

// Geometry returns the block geometry.
func (t *MemWordTranspose[T]) Geometry() Geometry { return t.geom }

// WordsPerBlock returns (C/N)*R.
func (t *MemWordTranspose[T]) WordsPerBlock() int { return t.geom.WordsPerBlock() }

func (t *MemWordTranspose[T]) newArena() *arena[T] {
	return newArena[T](t.geom.WordsPerBlock(), t.geom.Width)
}

// fill reads one block row-major, storing word (i, j) at j*R + i.
func (t *MemWordTranspose[T]) fill(a *arena[T], r WordReader[T]) error {
	rows, colWords := t.geom.Rows, t.geom.ColWords()
	for i := range rows {
		for j := range colWords {
			w, err := readWord(r, i*colWords+j)
			if err != nil {
				return err
			}
			a.put(j*rows+i, w)
		}
	}
	return nil
}

// drain writes the buffer in index order.
func (t *MemWordTranspose[T]) drain(a *arena[T], w WordWriter[T]) error {
	for idx := range t.geom.WordsPerBlock() {
		if err := writeWord(w, idx, a.word(idx)); err != nil {
			return err
		}
	}
	return nil
}

// ProcessBlock transposes one block.
func (t *MemWordTranspose[T]) ProcessBlock(r WordReader[T], w WordWriter[T]) error {
	if err := t.fill(t.buf, r); err != nil {
		return err
	}
	return t.drain(t.buf, w)
}

// Run transposes blocks consecutive blocks from in to out.
func (t *MemWordTranspose[T]) Run(blocks int, in, out *stream.Stream[T]) error {
	return RunBlocks[T](t, blocks, in, out)
}

// RunOverlapped is Run with two buffers: reading block k+1 proceeds while
// block k is written. If writing to out fails, in is aborted.
func (t *MemWordTranspose[T]) RunOverlapped(blocks int, in, out *stream.Stream[T]) error {
	return runOverlapped[T](t, blocks, in, out)
}
