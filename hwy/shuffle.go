package hwy

// This file provides lane permutations of a single word. They read one whole
// word and return one whole word.

// RotateLanesLeft rotates the lanes of w cyclically towards lane 0.
// Lane i of the result holds lane (i+shift) mod n of w.
// [0,1,2,3] rotated left by 1 -> [1,2,3,0]
// Negative shifts rotate right.
func RotateLanesLeft[T any](w Word[T], shift int) Word[T] {
	n := len(w.data)
	if n == 0 {
		return w
	}
	shift %= n
	if shift < 0 {
		shift += n
	}
	result := make([]T, n)
	copy(result, w.data[shift:])
	copy(result[n-shift:], w.data[:shift])
	return Word[T]{data: result}
}
