package hwy

import "github.com/samber/lo"

// This file provides conversions between flat slices of entries and words.

// LoadN creates a word of exactly n entries from the start of src.
// Missing entries (len(src) < n) are zero.
func LoadN[T any](src []T, n int) Word[T] {
	data := make([]T, n)
	copy(data, src[:min(n, len(src))])
	return Word[T]{data: data}
}

// Store writes a word's data to a slice.
func Store[T any](w Word[T], dst []T) {
	w.Store(dst)
}

// Iota creates a word of n lanes holding [start, start+1, start+2, ...].
func Iota[T Lanes](n int, start T) Word[T] {
	data := make([]T, n)
	for i := range data {
		data[i] = start + T(i)
	}
	return Word[T]{data: data}
}

// LoadWords splits src into consecutive words of width entries.
// A trailing partial word is zero padded.
func LoadWords[T any](src []T, width int) []Word[T] {
	if len(src) == 0 {
		return nil
	}
	return lo.Map(lo.Chunk(src, width), func(chunk []T, _ int) Word[T] {
		return LoadN(chunk, width)
	})
}

// Flatten concatenates the entries of words into one slice.
func Flatten[T any](words []Word[T]) []T {
	return lo.Flatten(lo.Map(words, func(w Word[T], _ int) []T {
		return w.data
	}))
}
