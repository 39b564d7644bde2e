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
	"fmt"

	"github.com/ajroetker/hwy-datamover/hwy"
	"github.com/ajroetker/hwy-datamover/hwy/contrib/workerpool"
)

// In-memory transpose tuning parameters
const (
	// MinTransposeParallelOps is the minimum number of entries before
	// ParallelTranspose2D splits the work across the pool.
	MinTransposeParallelOps = 64 * 64

	// TransposeRowsPerStrip defines how many rows each worker transposes.
	TransposeRowsPerStrip = 64
)

// Transpose2D transposes an m×k row-major matrix to k×m.
// It is the plain in-memory counterpart of MemTranspose: any shape is
// accepted and nothing is streamed. Short slices are left untouched.
func Transpose2D[T any](src []T, m, k int, dst []T) {
	if len(src) < m*k || len(dst) < k*m {
		return
	}
	Transpose2DStrided(src, 0, m, k, m, dst)
}

// Transpose2DStrided transposes rows [rowStart, rowEnd) of an M×k matrix
// into columns [rowStart, rowEnd) of the k×dstM matrix dst. Row strips can
// therefore be transposed independently.
//
// Full lanes×lanes tiles are moved as words: lanes row words go into a tile
// buffer and each output word is a strided gather down one tile column.
// Edges are copied entry by entry.
func Transpose2DStrided[T any](src []T, rowStart, rowEnd, k, dstM int, dst []T) {
	if rowStart >= rowEnd {
		return
	}

	lanes := hwy.MaxLanes[T]()
	blockRowEnd := rowStart + (rowEnd-rowStart)/lanes*lanes
	blockK := k / lanes * lanes

	if blockRowEnd > rowStart && blockK > 0 {
		tile := make([]T, lanes*lanes)
		cols := make([]hwy.Word[int32], lanes)
		for c := range lanes {
			cols[c] = hwy.IndicesStride(lanes, int32(c), int32(lanes))
		}
		for i := rowStart; i < blockRowEnd; i += lanes {
			for j := 0; j < blockK; j += lanes {
				for r := range lanes {
					hwy.Store(hwy.LoadN(src[(i+r)*k+j:], lanes), tile[r*lanes:])
				}
				for c := range lanes {
					hwy.Store(hwy.GatherIndex(tile, cols[c]), dst[(j+c)*dstM+i:])
				}
			}
		}
	}

	// Right edge: columns [blockK, k) for all rows in range
	for i := rowStart; i < rowEnd; i++ {
		for j := blockK; j < k; j++ {
			dst[j*dstM+i] = src[i*k+j]
		}
	}

	// Bottom edge: rows [blockRowEnd, rowEnd) not covered by tiles
	for i := blockRowEnd; i < rowEnd; i++ {
		for j := 0; j < blockK; j++ {
			dst[j*dstM+i] = src[i*k+j]
		}
	}
}

// ParallelTranspose2D transposes an m×k row-major matrix to k×m on pool,
// one strip of TransposeRowsPerStrip rows per task. Small matrices are
// transposed on the calling goroutine.
func ParallelTranspose2D[T any](pool *workerpool.Pool, src []T, m, k int, dst []T) error {
	if m < 0 || k < 0 || len(src) < m*k || len(dst) < k*m {
		return fmt.Errorf("%w: cannot transpose %d entries as %dx%d into %d entries",
			ErrGeometry, len(src), m, k, len(dst))
	}

	if m*k < MinTransposeParallelOps {
		Transpose2D(src, m, k, dst)
		return nil
	}

	numStrips := (m + TransposeRowsPerStrip - 1) / TransposeRowsPerStrip
	return pool.ParallelFor(numStrips, func(start, end int) error {
		for strip := start; strip < end; strip++ {
			rowStart := strip * TransposeRowsPerStrip
			rowEnd := min(rowStart+TransposeRowsPerStrip, m)
			Transpose2DStrided(src, rowStart, rowEnd, k, m, dst)
		}
		return nil
	})
}
