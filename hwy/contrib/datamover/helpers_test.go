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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ajroetker/hwy-datamover/hwy"
	"github.com/ajroetker/hwy-datamover/hwy/stream"
)

// runFlat streams src through s and returns the flattened output. It checks
// that exactly len(src) entries come out.
func runFlat[T any](t *testing.T, s Stage[T], blocks int, src []T) []T {
	t.Helper()
	width := s.Width()
	in := stream.FromSlice(width, src)
	out := stream.New[T](width, len(src)/width+1)
	require.NoError(t, s.Run(blocks, in, out))
	require.Zero(t, in.Len(), "%s left input words unread", s.Name())
	out.Close()
	words, err := out.Drain()
	require.NoError(t, err)
	require.Len(t, words, len(src)/width, "%s output word count", s.Name())
	return hwy.Flatten(words)
}

// sequence returns n entries start, start+1, ...
func sequence[T hwy.Lanes](n int, start T) []T {
	return hwy.Iota(n, start).Data()
}

// transposed returns the rows×cols row-major matrix src transposed with the
// in-memory Transpose2D.
func transposed[T any](src []T, rows, cols int) []T {
	dst := make([]T, len(src))
	Transpose2D(src, rows, cols, dst)
	return dst
}

// refWordTranspose views a rows×cols matrix as rows×(cols/width) words and
// returns the words column-major, keeping each word's entries in order.
func refWordTranspose[T any](src []T, rows, cols, width int) []T {
	colWords := cols / width
	dst := make([]T, 0, len(src))
	for j := range colWords {
		for i := range rows {
			start := i*cols + j*width
			dst = append(dst, src[start:start+width]...)
		}
	}
	return dst
}

// perBlock applies ref to each block of blockSize entries.
func perBlock[T any](src []T, blockSize int, ref func([]T) []T) []T {
	dst := make([]T, 0, len(src))
	for b := 0; b < len(src); b += blockSize {
		dst = append(dst, ref(src[b:b+blockSize])...)
	}
	return dst
}
