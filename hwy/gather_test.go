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

package hwy

import (
	"reflect"
	"testing"
)

func TestGatherIndex(t *testing.T) {
	src := []float32{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

	tests := []struct {
		name    string
		indices []int32
		want    []float32
	}{
		{
			name:    "sequential",
			indices: []int32{0, 1, 2, 3},
			want:    []float32{10, 20, 30, 40},
		},
		{
			name:    "reverse",
			indices: []int32{3, 2, 1, 0},
			want:    []float32{40, 30, 20, 10},
		},
		{
			name:    "scattered",
			indices: []int32{0, 4, 2, 8},
			want:    []float32{10, 50, 30, 90},
		},
		{
			name:    "out of bounds",
			indices: []int32{-1, 1, 10, 2},
			want:    []float32{0, 20, 0, 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GatherIndex(src, Word[int32]{data: tt.indices})
			if !reflect.DeepEqual(got.data, tt.want) {
				t.Errorf("GatherIndex() = %v, want %v", got.data, tt.want)
			}
		})
	}
}

func TestGatherLanes(t *testing.T) {
	// Three words of four lanes: row r holds r*10 + lane.
	src := []int64{
		0, 1, 2, 3,
		10, 11, 12, 13,
		20, 21, 22, 23,
	}
	rows := Word[int32]{data: []int32{2, 0, 1, 2}}
	got := GatherLanes(src, 4, rows)
	want := []int64{20, 1, 12, 23}
	if !reflect.DeepEqual(got.data, want) {
		t.Errorf("GatherLanes() = %v, want %v", got.data, want)
	}
}

func TestIndices(t *testing.T) {
	if got := IndicesStride[int64](3, 5, 2); !reflect.DeepEqual(got.data, []int64{5, 7, 9}) {
		t.Errorf("IndicesStride() = %v", got.data)
	}
	sq := IndicesFromFunc(4, func(lane int) int32 { return int32(lane * lane) })
	if !reflect.DeepEqual(sq.data, []int32{0, 1, 4, 9}) {
		t.Errorf("IndicesFromFunc() = %v", sq.data)
	}
}
