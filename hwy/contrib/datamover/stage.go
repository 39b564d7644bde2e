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

	"k8s.io/klog/v2"

	"github.com/ajroetker/hwy-datamover/hwy"
	"github.com/ajroetker/hwy-datamover/hwy/stream"
)

// WordReader is the input side of a block: *stream.Stream implements it.
type WordReader[T any] interface {
	Read() (hwy.Word[T], error)
}

// WordWriter is the output side of a block: *stream.Stream implements it.
type WordWriter[T any] interface {
	Write(w hwy.Word[T]) error
}

// BlockKernel processes one block at a time: it reads exactly
// WordsPerBlock words from r and writes exactly WordsPerBlock words to w.
// A kernel owns its buffer and must not be used concurrently.
type BlockKernel[T any] interface {
	Name() string
	Width() int
	WordsPerBlock() int
	ProcessBlock(r WordReader[T], w WordWriter[T]) error
}

// Stage is a pipeline element connecting an input and an output stream.
// Run processes blocks consecutive blocks of WordsPerBlock words each and
// returns; it never closes either stream.
type Stage[T any] interface {
	Name() string
	Width() int
	WordsPerBlock() int
	Run(blocks int, in, out *stream.Stream[T]) error
}

// RunBlocks drives k over blocks consecutive blocks of the in stream,
// writing the results to out.
func RunBlocks[T any](k BlockKernel[T], blocks int, in, out *stream.Stream[T]) error {
	checkStreams(k.Name(), k.Width(), in, out)
	for b := range blocks {
		if err := k.ProcessBlock(in, out); err != nil {
			return fmt.Errorf("%s: block %d of %d: %w", k.Name(), b, blocks, err)
		}
		if klog.V(3).Enabled() {
			klog.Infof("%s: block %d of %d done", k.Name(), b, blocks)
		}
	}
	klog.V(2).Infof("%s: processed %d blocks of %d words", k.Name(), blocks, k.WordsPerBlock())
	return nil
}

// checkStreams asserts stream widths in hwydebug builds.
func checkStreams[T any](name string, width int, in, out *stream.Stream[T]) {
	if !debugChecks {
		return
	}
	if in.Width() != width || out.Width() != width {
		panic(fmt.Sprintf("%s: stage width %d, input stream width %d, output stream width %d",
			name, width, in.Width(), out.Width()))
	}
}

// readWord reads word idx of the current block.
func readWord[T any](r WordReader[T], idx int) (hwy.Word[T], error) {
	w, err := r.Read()
	if err != nil {
		return w, fmt.Errorf("reading word %d: %w", idx, err)
	}
	return w, nil
}

// writeWord writes word idx of the current block.
func writeWord[T any](w WordWriter[T], idx int, word hwy.Word[T]) error {
	if err := w.Write(word); err != nil {
		return fmt.Errorf("writing word %d: %w", idx, err)
	}
	return nil
}
