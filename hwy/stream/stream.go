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

// Package stream provides the point-to-point word queue that connects data
// mover stages.
//
// A Stream is a bounded FIFO of hwy.Word values with one producer and one
// consumer. Write blocks while the stream is full and Read blocks while it is
// empty; these are the only suspension points of a stage. Word order is
// preserved exactly and no word is duplicated or dropped.
//
// Usage:
//
//	s := stream.New[float32](8, 64)
//	go func() {
//	    for _, w := range words {
//	        s.Write(w)
//	    }
//	    s.Close()
//	}()
//	for {
//	    w, err := s.Read()
//	    if errors.Is(err, stream.ErrClosed) {
//	        break
//	    }
//	    ...
//	}
package stream

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ajroetker/hwy-datamover/hwy"
)

var (
	// ErrClosed is returned by Read once the stream is closed and drained,
	// and by Write on a closed stream.
	ErrClosed = errors.New("stream: closed")

	// ErrAborted is returned by Read and Write once the stream was aborted.
	ErrAborted = errors.New("stream: aborted")
)

// DefaultDepth is the capacity used when New is given a non-positive depth.
const DefaultDepth = 64

// Stream is a bounded, blocking, single-producer/single-consumer queue of
// words of a fixed width.
type Stream[T any] struct {
	width int
	c     chan hwy.Word[T]

	// mu serializes Close against Write so that a write never races a close
	// of c; it is held only while a write is being handed to c or while
	// closing.
	mu     sync.RWMutex
	closed bool

	abortOnce sync.Once
	abort     chan struct{}
}

// New creates a stream of words of width entries holding at most depth
// words. If depth <= 0, DefaultDepth is used.
func New[T any](width, depth int) *Stream[T] {
	if width <= 0 {
		panic(fmt.Sprintf("stream: invalid word width %d", width))
	}
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Stream[T]{
		width: width,
		c:     make(chan hwy.Word[T], depth),
		abort: make(chan struct{}),
	}
}

// FromWords creates a closed stream pre-filled with words. The stream is
// sized to hold all of them, so it never blocks.
func FromWords[T any](width int, words []hwy.Word[T]) *Stream[T] {
	s := New[T](width, max(len(words), 1))
	for _, w := range words {
		if err := s.Write(w); err != nil {
			panic(err)
		}
	}
	s.Close()
	return s
}

// FromSlice splits entries into words of width entries and returns a closed
// stream holding them. A trailing partial word is zero padded.
func FromSlice[T any](width int, entries []T) *Stream[T] {
	return FromWords(width, hwy.LoadWords(entries, width))
}

// Width returns the number of entries per word.
func (s *Stream[T]) Width() int {
	return s.width
}

// Len returns the number of words currently buffered.
func (s *Stream[T]) Len() int {
	return len(s.c)
}

// Cap returns the maximum number of buffered words.
func (s *Stream[T]) Cap() int {
	return cap(s.c)
}

// Write appends w to the stream, blocking while the stream is full.
// Writing a word whose width differs from the stream's is a programming
// error and panics.
func (s *Stream[T]) Write(w hwy.Word[T]) error {
	if w.NumLanes() != s.width {
		panic(fmt.Sprintf("stream: writing word of %d lanes to stream of width %d", w.NumLanes(), s.width))
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	select {
	case s.c <- w:
		return nil
	case <-s.abort:
		return ErrAborted
	}
}

// WriteAll writes every word in order, stopping at the first error.
func (s *Stream[T]) WriteAll(words []hwy.Word[T]) error {
	for i, w := range words {
		if err := s.Write(w); err != nil {
			return fmt.Errorf("writing word %d of %d: %w", i, len(words), err)
		}
	}
	return nil
}

// Read removes and returns the oldest word, blocking while the stream is
// empty. It returns ErrClosed once the stream is closed and all buffered
// words were read, and ErrAborted once the stream is aborted.
func (s *Stream[T]) Read() (hwy.Word[T], error) {
	select {
	case w, ok := <-s.c:
		if !ok {
			return hwy.Word[T]{}, ErrClosed
		}
		return w, nil
	case <-s.abort:
		return hwy.Word[T]{}, ErrAborted
	}
}

// ReadN reads exactly n words.
func (s *Stream[T]) ReadN(n int) ([]hwy.Word[T], error) {
	words := make([]hwy.Word[T], 0, n)
	for i := range n {
		w, err := s.Read()
		if err != nil {
			return words, fmt.Errorf("reading word %d of %d: %w", i, n, err)
		}
		words = append(words, w)
	}
	return words, nil
}

// Drain reads words until the stream is closed.
func (s *Stream[T]) Drain() ([]hwy.Word[T], error) {
	var words []hwy.Word[T]
	for {
		w, err := s.Read()
		if errors.Is(err, ErrClosed) {
			return words, nil
		}
		if err != nil {
			return words, err
		}
		words = append(words, w)
	}
}

// Close marks the end of the stream. Buffered words remain readable.
// Calling Close multiple times is safe. Close must not be called while the
// producer may still be blocked in Write on a full stream; use Abort for that.
func (s *Stream[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.c)
	}
}

// Abort unblocks any pending or future Read and Write with ErrAborted.
// Calling Abort multiple times is safe.
func (s *Stream[T]) Abort() {
	s.abortOnce.Do(func() {
		close(s.abort)
	})
}
