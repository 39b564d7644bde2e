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

// Package hwy provides the fixed-width word type moved between data mover
// stages, plus the whole-word lane operations the movers are built from.
//
// A word holds N entries that always travel together. Every operation in this
// package reads and produces complete words: lanes may be permuted or gathered
// across words lane-by-lane, but a word is never partially written.
//
// Basic usage:
//
//	import "github.com/ajroetker/hwy-datamover/hwy"
//
//	// Split a row into words of 4 entries
//	words := hwy.LoadWords(row, 4)
//
//	// Rotate lanes of the first word
//	r := hwy.RotateLanesLeft(words[0], 1)
//
//	// Store results
//	hwy.Store(r, output)
package hwy

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integers is a constraint for all integer types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Lanes is a constraint for numeric entry types. Words themselves accept any
// entry type; Lanes is only needed by helpers that synthesize values, like Iota.
type Lanes interface {
	Floats | Integers
}

// Word is an ordered tuple of entries transferred as a unit between stages.
//
// Words have value semantics: operations never modify their inputs and always
// return a fresh word. Word instances should not be created directly; use
// LoadN, LoadWords or Iota instead.
type Word[T any] struct {
	data []T
}

// NumLanes returns the number of entries in this word.
func (w Word[T]) NumLanes() int {
	return len(w.data)
}

// Data returns the underlying slice representation of the word.
// This is primarily for testing; callers must not modify it.
func (w Word[T]) Data() []T {
	return w.data
}

// Store writes the word's entries to a slice.
// This is the method form of the hwy.Store function.
func (w Word[T]) Store(dst []T) {
	n := min(len(w.data), len(dst))
	copy(dst[:n], w.data[:n])
}
