// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package datamover

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/ajroetker/hwy-datamover/hwy/stream"
)

// Pipeline chains stages through intermediate streams and runs every stage
// on its own goroutine. Stage i+1 consumes exactly what stage i produces, so
// all stages must share the word width and process the same number of words
// per block.
type Pipeline[T any] struct {
	width  int
	depth  int
	stages []Stage[T]
}

// NewPipeline creates a pipeline of stages. Intermediate streams hold up to
// depth words (stream.DefaultDepth if depth <= 0). Stages that differ in
// width or in words per block return ErrGeometry.
func NewPipeline[T any](depth int, stages ...Stage[T]) (*Pipeline[T], error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("%w: pipeline has no stages", ErrGeometry)
	}
	width, words := stages[0].Width(), stages[0].WordsPerBlock()
	for _, s := range stages[1:] {
		if s.Width() != width {
			return nil, fmt.Errorf("%w: stage %s has width %d, pipeline width is %d",
				ErrGeometry, s.Name(), s.Width(), width)
		}
		if s.WordsPerBlock() != words {
			return nil, fmt.Errorf("%w: stage %s moves %d words per block, %s moves %d",
				ErrGeometry, s.Name(), s.WordsPerBlock(), stages[0].Name(), words)
		}
	}
	return &Pipeline[T]{width: width, depth: depth, stages: stages}, nil
}

// Width returns the word width shared by all stages.
func (p *Pipeline[T]) Width() int { return p.width }

// Name returns the stage names joined by "|".
func (p *Pipeline[T]) Name() string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return strings.Join(names, "|")
}

// Stages returns the stages in order.
func (p *Pipeline[T]) Stages() []Stage[T] { return p.stages }

// Run pushes blocks blocks from in through every stage into out, returning
// once all stages are done. If a stage fails, or ctx is cancelled, every
// stream of the run (in and out included) is aborted so that neither the
// stages nor the caller's producer and consumer stay blocked. The error
// returned is the failure that started the teardown.
func (p *Pipeline[T]) Run(ctx context.Context, blocks int, in, out *stream.Stream[T]) error {
	streams := make([]*stream.Stream[T], len(p.stages)+1)
	streams[0], streams[len(p.stages)] = in, out
	for i := 1; i < len(p.stages); i++ {
		streams[i] = stream.New[T](p.width, p.depth)
	}
	abort := func() {
		for _, s := range streams {
			s.Abort()
		}
	}
	stop := context.AfterFunc(ctx, abort)
	defer stop()

	klog.V(1).Infof("pipeline %s: running %d blocks", p.Name(), blocks)
	errs := make([]error, len(p.stages))
	var g errgroup.Group
	for i, s := range p.stages {
		g.Go(func() error {
			if err := s.Run(blocks, streams[i], streams[i+1]); err != nil {
				errs[i] = fmt.Errorf("stage %d: %w", i, err)
				abort()
				return errs[i]
			}
			return nil
		})
	}
	if g.Wait() == nil {
		klog.V(1).Infof("pipeline %s: done", p.Name())
		return nil
	}
	err := rootCause(errs)
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, stream.ErrAborted) {
		err = fmt.Errorf("%w: %w", ctxErr, err)
	}
	klog.Errorf("pipeline %s: %v", p.Name(), err)
	return err
}

// rootCause returns the first error that is not a consequence of the abort
// it triggered, falling back to the first error.
func rootCause(errs []error) error {
	var first error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if !errors.Is(err, stream.ErrAborted) {
			return err
		}
		if first == nil {
			first = err
		}
	}
	return first
}
