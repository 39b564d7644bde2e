package datamover

import "github.com/ajroetker/hwy-datamover/hwy"

// arena is the block buffer of a stage: a flat slice of entries addressed
// in whole words. It is sized once and reused for every block.
type arena[T any] struct {
	data  []T
	width int
}

func newArena[T any](words, width int) *arena[T] {
	return &arena[T]{data: make([]T, words*width), width: width}
}

// put stores w as word idx.
func (a *arena[T]) put(idx int, w hwy.Word[T]) {
	hwy.Store(w, a.data[idx*a.width:(idx+1)*a.width])
}

// word loads word idx.
func (a *arena[T]) word(idx int) hwy.Word[T] {
	return hwy.LoadN(a.data[idx*a.width:], a.width)
}

// gather builds a word from arbitrary entry offsets.
func (a *arena[T]) gather(indices hwy.Word[int32]) hwy.Word[T] {
	return hwy.GatherIndex(a.data, indices)
}

// gatherLanes builds a word whose lane k is lane k of word rows[k].
func (a *arena[T]) gatherLanes(rows hwy.Word[int32]) hwy.Word[T] {
	return hwy.GatherLanes(a.data, a.width, rows)
}
