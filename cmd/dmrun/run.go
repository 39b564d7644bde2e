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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"k8s.io/klog/v2"

	"github.com/ajroetker/hwy-datamover/hwy"
	"github.com/ajroetker/hwy-datamover/hwy/contrib/datamover"
	"github.com/ajroetker/hwy-datamover/hwy/stream"
)

type config struct {
	transforms []string
	width      int
	rows       int
	cols       int
	blocks     int
	depth      int
	overlap    bool
}

// withDefaults fills in the zero-valued sizes.
func (c config) withDefaults() config {
	if c.width == 0 {
		c.width = hwy.MaxLanes[int32]()
	}
	if c.rows == 0 {
		c.rows = 2 * c.width
	}
	if c.cols == 0 {
		c.cols = 2 * c.width
	}
	return c
}

// shape is how a block is laid out when printed.
type shape struct {
	rows, cols int
}

// transform is one stage of the chain plus what dmrun needs to print and
// chain it.
type transform struct {
	stage   datamover.Stage[int32]
	in, out shape

	// next is the geometry the following mem-* stage sees.
	next datamover.Geometry

	// overlapped is set for stages that can overlap fill and drain.
	overlapped func(blocks int, in, out *stream.Stream[int32]) error

	// reference is set for stages with an in-memory equivalent; it returns
	// the expected output of one block.
	reference func(block []int32) []int32
}

type builder struct {
	help  string
	build func(g datamover.Geometry) (transform, error)
}

var builders = map[string]builder{
	"sym-upper": {"mirror the upper triangle of each width×width block",
		square(datamover.NewSymUpper[int32])},
	"sym-lower": {"mirror the lower triangle of each width×width block",
		square(datamover.NewSymLower[int32])},
	"transpose": {"transpose each width×width block",
		withReference(square(datamover.NewTranspose[int32]))},
	"forward": {"relay width words per block unchanged",
		square(datamover.NewForward[int32])},
	"mem-word-transpose": {"reorder the words of each rows×cols block column-major",
		func(g datamover.Geometry) (transform, error) {
			t, err := datamover.NewMemWordTranspose[int32](g)
			if err != nil {
				return transform{}, err
			}
			return transform{
				stage:      t,
				in:         shape{g.Rows, g.Cols},
				out:        shape{g.ColWords(), g.Rows * g.Width},
				next:       g,
				overlapped: t.RunOverlapped,
			}, nil
		}},
	"mem-transpose": {"transpose each rows×cols block entry by entry",
		func(g datamover.Geometry) (transform, error) {
			t, err := datamover.NewMemTranspose[int32](g)
			if err != nil {
				return transform{}, err
			}
			return transform{
				stage:      t,
				in:         shape{g.Rows, g.Cols},
				out:        shape{g.Cols, g.Rows},
				next:       g.Transposed(),
				overlapped: t.RunOverlapped,
				reference:  transposeReference(g.Rows, g.Cols),
			}, nil
		}},
}

func square[S datamover.Stage[int32]](newStage func(n int) (S, error)) func(datamover.Geometry) (transform, error) {
	return func(g datamover.Geometry) (transform, error) {
		s, err := newStage(g.Width)
		if err != nil {
			return transform{}, err
		}
		sh := shape{g.Width, g.Width}
		return transform{
			stage: s,
			in:    sh,
			out:   sh,
			next:  g,
		}, nil
	}
}

// withReference adds the in-memory transpose of a width×width block.
func withReference(build func(datamover.Geometry) (transform, error)) func(datamover.Geometry) (transform, error) {
	return func(g datamover.Geometry) (transform, error) {
		t, err := build(g)
		t.reference = transposeReference(g.Width, g.Width)
		return t, err
	}
}

func transposeReference(rows, cols int) func([]int32) []int32 {
	return func(block []int32) []int32 {
		dst := make([]int32, len(block))
		datamover.Transpose2D(block, rows, cols, dst)
		return dst
	}
}

func transformNames() string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

// buildChain creates the named transforms in order. Every stage of a chain
// must move the same number of words per block.
func buildChain(cfg config) ([]transform, error) {
	g := datamover.Geometry{Width: cfg.width, Rows: cfg.rows, Cols: cfg.cols}
	chain := make([]transform, 0, len(cfg.transforms))
	for _, name := range cfg.transforms {
		b, ok := builders[name]
		if !ok {
			return nil, fmt.Errorf("unknown transform %q (available: %s)", name, transformNames())
		}
		t, err := b.build(g)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if len(chain) > 0 && t.stage.WordsPerBlock() != chain[0].stage.WordsPerBlock() {
			return nil, fmt.Errorf("%s moves %d words per block but %s moves %d; they cannot be chained",
				name, t.stage.WordsPerBlock(), chain[0].stage.Name(), chain[0].stage.WordsPerBlock())
		}
		chain = append(chain, t)
		g = t.next
	}
	return chain, nil
}

func run(ctx context.Context, w io.Writer, cfg config) error {
	cfg = cfg.withDefaults()
	chain, err := buildChain(cfg)
	if err != nil {
		return err
	}
	if cfg.blocks < 1 {
		return fmt.Errorf("--blocks must be at least 1, got %d", cfg.blocks)
	}
	if cfg.overlap && (len(chain) != 1 || chain[0].overlapped == nil) {
		return errors.New("--overlap needs exactly one mem-* transform")
	}

	first, last := chain[0], chain[len(chain)-1]
	blockSize := first.in.rows * first.in.cols
	src := hwy.Iota(cfg.blocks*blockSize, int32(0)).Data()
	in := stream.FromSlice(cfg.width, src)
	out := stream.New[int32](cfg.width, len(src)/cfg.width)

	stages := make([]datamover.Stage[int32], len(chain))
	for i, t := range chain {
		stages[i] = t.stage
	}
	switch {
	case cfg.overlap:
		err = first.overlapped(cfg.blocks, in, out)
	case len(stages) == 1:
		err = first.stage.Run(cfg.blocks, in, out)
	default:
		var p *datamover.Pipeline[int32]
		p, err = datamover.NewPipeline(cfg.depth, stages...)
		if err == nil {
			err = p.Run(ctx, cfg.blocks, in, out)
		}
	}
	if err != nil {
		return err
	}
	out.Close()
	words, err := out.Drain()
	if err != nil {
		return err
	}
	dst := hwy.Flatten(words)
	klog.V(1).Infof("streamed %d words through %d stages", len(words), len(stages))

	title := cases.Title(language.English)
	names := make([]string, len(chain))
	for i, t := range chain {
		names[i] = title.String(t.stage.Name())
	}
	fmt.Fprintf(w, "%s: %d-entry words, %d block(s), dispatch %s\n",
		strings.Join(names, " → "), cfg.width, cfg.blocks, hwy.CurrentName())
	for b := range cfg.blocks {
		block := src[b*blockSize : (b+1)*blockSize]
		printBlock(w, fmt.Sprintf("Input block %d", b), block, first.in)
		block = dst[b*blockSize : (b+1)*blockSize]
		printBlock(w, fmt.Sprintf("Output block %d", b), block, last.out)
	}
	if len(chain) == 1 && first.reference != nil {
		for b := range cfg.blocks {
			want := first.reference(src[b*blockSize : (b+1)*blockSize])
			if !slices.Equal(want, dst[b*blockSize : (b+1)*blockSize]) {
				return fmt.Errorf("%s: block %d differs from the in-memory transpose", first.stage.Name(), b)
			}
		}
		fmt.Fprintf(w, "\nAll %d block(s) match the in-memory transpose.\n", cfg.blocks)
	}
	return nil
}

func printBlock(w io.Writer, heading string, block []int32, sh shape) {
	fmt.Fprintf(w, "\n%s (%d×%d):\n", heading, sh.rows, sh.cols)
	cellWidth := len(fmt.Sprint(slices.Max(block))) + 1
	for r := range sh.rows {
		for _, v := range block[r*sh.cols : (r+1)*sh.cols] {
			fmt.Fprintf(w, "%*d", cellWidth, v)
		}
		fmt.Fprintln(w)
	}
}

func list(w io.Writer) error {
	title := cases.Title(language.English)
	fmt.Fprintf(w, "Dispatch: %s (%d-byte words)\n", title.String(hwy.CurrentName()), hwy.CurrentWidth())
	fmt.Fprintf(w, "Default width: %d int32, %d float32, %d float64 entries\n\n",
		hwy.MaxLanes[int32](), hwy.MaxLanes[float32](), hwy.MaxLanes[float64]())
	names := strings.Split(transformNames(), ", ")
	for _, name := range names {
		fmt.Fprintf(w, "  %-20s %s\n", name, builders[name].help)
	}
	return nil
}
