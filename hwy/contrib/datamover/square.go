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

// squareKernel buffers one N×N block, one word per row, and emits each
// output row as a gather over the buffer. The gather pattern of row i is
// fixed at construction; pick(i, j) returns the buffered (row, col) whose
// entry lands in output row i, lane j.
type squareKernel[T any] struct {
	name string
	n    int
	buf  *arena[T]
	rows []hwy.Word[int32]
}

func newSquareKernel[T any](name string, n int, pick func(i, j int) (int, int)) (squareKernel[T], error) {
	if err := validateWidth(n); err != nil {
		return squareKernel[T]{}, err
	}
	rows := make([]hwy.Word[int32], n)
	for i := range n {
		rows[i] = hwy.IndicesFromFunc(n, func(j int) int32 {
			r, c := pick(i, j)
			return int32(r*n + c)
		})
	}
	return squareKernel[T]{name: name, n: n, buf: newArena[T](n, n), rows: rows}, nil
}

// Name returns the stage name.
func (k *squareKernel[T]) Name() string { return k.name }

// Width returns the word width, which is also the block side.
func (k *squareKernel[T]) Width() int { return k.n }

// WordsPerBlock returns the block side.
func (k *squareKernel[T]) WordsPerBlock() int { return k.n }

// ProcessBlock reads one block into the buffer, then writes it reordered.
func (k *squareKernel[T]) ProcessBlock(r WordReader[T], w WordWriter[T]) error {
	for i := range k.n {
		word, err := readWord(r, i)
		if err != nil {
			return err
		}
		k.buf.put(i, word)
	}
	for i := range k.n {
		if err := writeWord(w, i, k.buf.gather(k.rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// Run processes blocks consecutive blocks from in to out.
func (k *squareKernel[T]) Run(blocks int, in, out *stream.Stream[T]) error {
	return RunBlocks[T](k, blocks, in, out)
}

// SymUpper mirrors the super-diagonal of each N×N block onto its
// sub-diagonal: out[i][j] = in[i][j] for i <= j, in[j][i] otherwise.
type SymUpper[T any] struct {
	squareKernel[T]
}

// NewSymUpper creates a SymUpper stage for words of n entries.
func NewSymUpper[T any](n int) (*SymUpper[T], error) {
	k, err := newSquareKernel[T]("sym-upper", n, func(i, j int) (int, int) {
		if i > j {
			return j, i
		}
		return i, j
	})
	if err != nil {
		return nil, err
	}
	return &SymUpper[T]{k}, nil
}

// SymLower mirrors the sub-diagonal of each N×N block onto its
// super-diagonal: out[i][j] = in[i][j] for i >= j, in[j][i] otherwise.
type SymLower[T any] struct {
	squareKernel[T]
}

// NewSymLower creates a SymLower stage for words of n entries.
func NewSymLower[T any](n int) (*SymLower[T], error) {
	k, err := newSquareKernel[T]("sym-lower", n, func(i, j int) (int, int) {
		if i < j {
			return j, i
		}
		return i, j
	})
	if err != nil {
		return nil, err
	}
	return &SymLower[T]{k}, nil
}

// Transpose transposes each N×N block: out[i][j] = in[j][i].
type Transpose[T any] struct {
	squareKernel[T]
}

// NewTranspose creates a Transpose stage for words of n entries.
func NewTranspose[T any](n int) (*Transpose[T], error) {
	k, err := newSquareKernel[T]("transpose", n, func(i, j int) (int, int) {
		return j, i
	})
	if err != nil {
		return nil, err
	}
	return &Transpose[T]{k}, nil
}
