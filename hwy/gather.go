package hwy

// This file provides gathers that assemble one whole word from entries held
// in a flat buffer. They are how a stage builds an output word out of an
// arena of buffered input words without touching the words in place.

// GatherIndex loads elements from non-contiguous memory locations specified by indices.
// For each lane i in the index word, it loads src[indices[i]].
// If an index is out of bounds (negative or >= len(src)), the result for that lane is zero.
func GatherIndex[T any, I ~int32 | ~int64](src []T, indices Word[I]) Word[T] {
	n := len(indices.data)
	result := make([]T, n)
	for i := range n {
		idx := int(indices.data[i])
		if idx >= 0 && idx < len(src) {
			result[i] = src[idx]
		}
		// else: leave as zero value
	}
	return Word[T]{data: result}
}

// GatherLanes gathers lane i of the result from lane i of word rows[i] of src,
// where src is a flat buffer of width-entry words. Each lane therefore reads
// its own bank, which is the access pattern of skewed storage.
// Out of range rows yield the zero value.
func GatherLanes[T any, I ~int32 | ~int64](src []T, width int, rows Word[I]) Word[T] {
	return GatherIndex(src, IndicesFromFunc(len(rows.data), func(lane int) I {
		return rows.data[lane]*I(width) + I(lane)
	}))
}

// IndicesFromFunc creates an index word by calling a function for each lane.
// This is useful for creating custom gather patterns.
func IndicesFromFunc[I ~int32 | ~int64](numLanes int, f func(lane int) I) Word[I] {
	result := make([]I, numLanes)
	for i := range numLanes {
		result[i] = f(i)
	}
	return Word[I]{data: result}
}

// IndicesStride creates an index word with values [start, start+stride, start+2*stride, ...].
func IndicesStride[I ~int32 | ~int64](numLanes int, start, stride I) Word[I] {
	result := make([]I, numLanes)
	for i := range numLanes {
		result[i] = start + I(i)*stride
	}
	return Word[I]{data: result}
}
