package datamover

import "github.com/ajroetker/hwy-datamover/hwy/stream"

// Forward relays N words per block unchanged, holding a single word in
// flight. It keeps a chain's shape and latency uniform where no reordering is
// needed.
type Forward[T any] struct {
	n int
}

// NewForward creates a Forward stage for words of n entries.
func NewForward[T any](n int) (*Forward[T], error) {
	if err := validateWidth(n); err != nil {
		return nil, err
	}
	return &Forward[T]{n: n}, nil
}

// Name returns the stage name.
func (f *Forward[T]) Name() string { return "forward" }

// Width returns the word width.
func (f *Forward[T]) Width() int { return f.n }

// WordsPerBlock returns the number of words relayed per block.
func (f *Forward[T]) WordsPerBlock() int { return f.n }

// ProcessBlock relays one block.
func (f *Forward[T]) ProcessBlock(r WordReader[T], w WordWriter[T]) error {
	for i := range f.n {
		word, err := readWord(r, i)
		if err != nil {
			return err
		}
		if err := writeWord(w, i, word); err != nil {
			return err
		}
	}
	return nil
}

// Run relays blocks*N words from in to out.
func (f *Forward[T]) Run(blocks int, in, out *stream.Stream[T]) error {
	return RunBlocks[T](f, blocks, in, out)
}
