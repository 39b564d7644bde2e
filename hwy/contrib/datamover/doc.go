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

// Package datamover provides streaming block-reordering stages for BLAS
// pipelines.
//
// Every stage reads words of N entries from an input stream and writes the
// same number of words, reordered, to an output stream. Stages only ever
// read and write whole words; reordering below word granularity happens in a
// per-stage arena that holds exactly one block.
//
// # Small blocks (N×N, one word per row)
//
//   - SymUpper: mirrors the super-diagonal onto the sub-diagonal
//   - SymLower: mirrors the sub-diagonal onto the super-diagonal
//   - Transpose: transposes the block
//   - Forward: relays words unchanged
//
// # Large blocks (R×C, C/N words per row)
//
//   - MemWordTranspose: transposes the block at word granularity; the
//     entries inside each word keep their order
//   - MemTranspose: transposes the block entry by entry using skewed
//     (rotated) storage so that every access is a whole word
//
// # Usage
//
//	t, err := datamover.NewMemTranspose[float32](datamover.Geometry{Width: 8, Rows: 64, Cols: 32})
//	if err != nil {
//	    return err
//	}
//	in := stream.FromSlice(8, block)
//	out := stream.New[float32](8, t.WordsPerBlock())
//	if err := t.Run(1, in, out); err != nil {
//	    return err
//	}
//
// Stages compose through streams; see Pipeline to run a chain of them
// concurrently, and Apply to run a stage over blocks held in memory.
package datamover
