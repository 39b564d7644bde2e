package hwy

import (
	"reflect"
	"testing"
)

func TestRotateLanesLeft(t *testing.T) {
	tests := []struct {
		name   string
		input  []int32
		shift  int
		expect []int32
	}{
		{
			name:   "by zero",
			input:  []int32{0, 1, 2, 3},
			shift:  0,
			expect: []int32{0, 1, 2, 3},
		},
		{
			name:   "by one",
			input:  []int32{0, 1, 2, 3},
			shift:  1,
			expect: []int32{1, 2, 3, 0},
		},
		{
			name:   "by three",
			input:  []int32{0, 1, 2, 3},
			shift:  3,
			expect: []int32{3, 0, 1, 2},
		},
		{
			name:   "full turn",
			input:  []int32{0, 1, 2, 3},
			shift:  4,
			expect: []int32{0, 1, 2, 3},
		},
		{
			name:   "more than a turn",
			input:  []int32{0, 1, 2, 3, 4, 5, 6, 7},
			shift:  10,
			expect: []int32{2, 3, 4, 5, 6, 7, 0, 1},
		},
		{
			name:   "negative",
			input:  []int32{0, 1, 2, 3},
			shift:  -1,
			expect: []int32{3, 0, 1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Word[int32]{data: tt.input}
			result := RotateLanesLeft(w, tt.shift)
			if !reflect.DeepEqual(result.data, tt.expect) {
				t.Errorf("RotateLanesLeft(%d) = %v, want %v", tt.shift, result.data, tt.expect)
			}
		})
	}
}

func TestRotateLanesLeftDoesNotAlias(t *testing.T) {
	input := []int32{0, 1, 2, 3}
	w := Word[int32]{data: input}
	r := RotateLanesLeft(w, 0)
	r.data[0] = 99
	if input[0] != 0 {
		t.Errorf("rotation modified its input: %v", input)
	}
}
