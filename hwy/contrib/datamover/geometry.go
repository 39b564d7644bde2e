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
	"errors"
	"fmt"
)

// ErrGeometry is returned by constructors given a block shape the stage
// cannot handle.
var ErrGeometry = errors.New("datamover: invalid geometry")

// Geometry describes the blocks processed by the large-block stages.
// Blocks are Rows×Cols entries streamed row-major as words of Width entries.
type Geometry struct {
	Width int // entries per word (N)
	Rows  int // block rows (R)
	Cols  int // block columns (C)
}

// ColWords returns the number of words per block row.
func (g Geometry) ColWords() int {
	return g.Cols / g.Width
}

// RowWords returns the number of words per row of the transposed block.
func (g Geometry) RowWords() int {
	return g.Rows / g.Width
}

// WordsPerBlock returns the number of words in one block.
func (g Geometry) WordsPerBlock() int {
	return g.ColWords() * g.Rows
}

// Transposed returns the geometry of the transposed block.
func (g Geometry) Transposed() Geometry {
	return Geometry{Width: g.Width, Rows: g.Cols, Cols: g.Rows}
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d/%d", g.Rows, g.Cols, g.Width)
}

// Validate checks the constraints of the word-granularity transpose:
// positive sizes and Cols a multiple of Width.
func (g Geometry) Validate() error {
	if g.Width <= 0 || g.Rows <= 0 || g.Cols <= 0 {
		return fmt.Errorf("%w: %v: sizes must be positive", ErrGeometry, g)
	}
	if g.Cols%g.Width != 0 {
		return fmt.Errorf("%w: %v: cols %d not a multiple of width %d", ErrGeometry, g, g.Cols, g.Width)
	}
	return nil
}

// ValidateSquare checks the constraints of the entry-level transpose:
// those of Validate plus Rows a multiple of Width.
func (g Geometry) ValidateSquare() error {
	if err := g.Validate(); err != nil {
		return err
	}
	if g.Rows%g.Width != 0 {
		return fmt.Errorf("%w: %v: rows %d not a multiple of width %d", ErrGeometry, g, g.Rows, g.Width)
	}
	return nil
}

func validateWidth(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: word width %d must be positive", ErrGeometry, n)
	}
	return nil
}
