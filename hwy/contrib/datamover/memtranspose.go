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

import (
	"github.com/ajroetker/hwy-datamover/hwy"
	"github.com/ajroetker/hwy-datamover/hwy/stream"
)

// MemTranspose transposes R×C blocks entry by entry, producing the C×R
// transpose row-major, while reading and writing only whole words.
//
// Input row i is stored rotated by i mod N lanes, so the N entries of any
// column segment j*N..j*N+N-1 end up in N distinct lanes (banks). An output
// word is then one lane-wise gather, each lane reading its own bank, followed
// by a rotation that puts the lanes back in order:
//
//	store:  arena[i*C/N + j] = RotateLanesLeft(in(i, j), N - i%N)
//	gather: lane k from arena[j'*C + i'/N + ((k + N - i'%N) % N) * C/N], lane k
//	emit:   RotateLanesLeft(gathered, i'%N)
//
// Both Rows and Cols must be multiples of the word width.
type MemTranspose[T any] struct {
	geom Geometry
	buf  *arena[T]
}

// NewMemTranspose creates a MemTranspose stage. It requires g.Rows and
// g.Cols to be multiples of g.Width.
func NewMemTranspose[T any](g Geometry) (*MemTranspose[T], error) {
	if err := g.ValidateSquare(); err != nil {
		return nil, err
	}
	t := &MemTranspose[T]{geom: g}
	t.buf = t.newArena()
	return t, nil
}

// Name returns the stage name.
func (t *MemTranspose[T]) Name() string { return "mem-transpose" }

// Width returns the word width.
func (t *MemTranspose[T]) Width() int { return t.geom.Width }

// Geometry returns the input block geometry.
func (t *MemTranspose[T]) Geometry() Geometry { return t.geom }

// WordsPerBlock returns R*C/N.
func (t *MemTranspose[T]) WordsPerBlock() int { return t.geom.WordsPerBlock() }

func (t *MemTranspose[T]) newArena() *arena[T] {
	return newArena[T](t.geom.WordsPerBlock(), t.geom.Width)
}

// fill reads one block row-major and stores each word skewed by its row.
func (t *MemTranspose[T]) fill(a *arena[T], r WordReader[T]) error {
	n, colWords := t.geom.Width, t.geom.ColWords()
	for i := range t.geom.Rows {
		skew := n - i%n
		for j := range colWords {
			idx := i*colWords + j
			w, err := readWord(r, idx)
			if err != nil {
				return err
			}
			a.put(idx, hwy.RotateLanesLeft(w, skew))
		}
	}
	return nil
}

// drain gathers the transposed rows out of the skewed buffer.
func (t *MemTranspose[T]) drain(a *arena[T], w WordWriter[T]) error {
	n, cols, colWords, rowWords := t.geom.Width, t.geom.Cols, t.geom.ColWords(), t.geom.RowWords()
	for i := range cols {
		shift := i % n
		for j := range rowWords {
			base := j*cols + i/n
			rows := hwy.IndicesFromFunc(n, func(k int) int32 {
				return int32(base + ((k+n-shift)%n)*colWords)
			})
			word := hwy.RotateLanesLeft(a.gatherLanes(rows), shift)
			if err := writeWord(w, i*rowWords+j, word); err != nil {
				return err
			}
		}
	}
	return nil
}

// ProcessBlock transposes one block.
func (t *MemTranspose[T]) ProcessBlock(r WordReader[T], w WordWriter[T]) error {
	if err := t.fill(t.buf, r); err != nil {
		return err
	}
	return t.drain(t.buf, w)
}

// Run transposes blocks consecutive blocks from in to out.
func (t *MemTranspose[T]) Run(blocks int, in, out *stream.Stream[T]) error {
	return RunBlocks[T](t, blocks, in, out)
}

// RunOverlapped is Run with two buffers: reading block k+1 proceeds while
// block k is written. If writing to out fails, in is aborted.
func (t *MemTranspose[T]) RunOverlapped(blocks int, in, out *stream.Stream[T]) error {
	return runOverlapped[T](t, blocks, in, out)
}
