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

package stream

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/hwy-datamover/hwy"
)

func TestFIFOOrder(t *testing.T) {
	s := New[int32](2, 4)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 100 {
			assert.NoError(t, s.Write(hwy.Iota(2, int32(i*2))))
		}
		s.Close()
	}()

	words, err := s.Drain()
	require.NoError(t, err)
	wg.Wait()
	require.Len(t, words, 100)
	for i, w := range words {
		if got := w.Data()[0]; got != int32(i*2) {
			t.Fatalf("word %d lane 0 = %d, want %d", i, got, i*2)
		}
	}
}

func TestFromSlice(t *testing.T) {
	s := FromSlice(4, []float32{1, 2, 3, 4, 5, 6, 7, 8})
	require.Equal(t, 4, s.Width())
	require.Equal(t, 2, s.Len())

	words, err := s.ReadN(2)
	require.NoError(t, err)
	require.Equal(t, []float32{5, 6, 7, 8}, words[1].Data())

	_, err = s.Read()
	require.ErrorIs(t, err, ErrClosed)
}

func TestReadNShort(t *testing.T) {
	s := FromSlice(2, []int64{1, 2, 3, 4})
	words, err := s.ReadN(3)
	require.ErrorIs(t, err, ErrClosed)
	require.Len(t, words, 2)
}

func TestWriteAfterClose(t *testing.T) {
	s := New[uint8](2, 1)
	s.Close()
	s.Close()
	require.ErrorIs(t, s.Write(hwy.LoadN([]uint8{}, 2)), ErrClosed)
}

func TestWrongWidthPanics(t *testing.T) {
	s := New[float64](4, 1)
	require.Panics(t, func() {
		_ = s.Write(hwy.LoadN([]float64{}, 2))
	})
}

func TestAbortUnblocks(t *testing.T) {
	full := New[int32](1, 1)
	require.NoError(t, full.Write(hwy.LoadN([]int32{1}, 1)))
	empty := New[int32](1, 1)

	errs := make(chan error, 2)
	go func() { errs <- full.Write(hwy.LoadN([]int32{2}, 1)) }()
	go func() {
		_, err := empty.Read()
		errs <- err
	}()

	time.Sleep(10 * time.Millisecond)
	full.Abort()
	empty.Abort()
	empty.Abort()

	for range 2 {
		select {
		case err := <-errs:
			require.ErrorIs(t, err, ErrAborted)
		case <-time.After(5 * time.Second):
			t.Fatal("abort did not unblock stream operations")
		}
	}
}

func TestDefaultDepth(t *testing.T) {
	s := New[float32](8, 0)
	require.Equal(t, DefaultDepth, s.Cap())
	require.Panics(t, func() { New[float32](0, 1) })
}

func BenchmarkStream(b *testing.B) {
	s := New[float32](8, 64)
	w := hwy.Iota(8, float32(0))
	done := make(chan struct{})
	go func() {
		for range b.N {
			if _, err := s.Read(); err != nil {
				break
			}
		}
		close(done)
	}()
	b.ResetTimer()
	for range b.N {
		_ = s.Write(w)
	}
	<-done
}
