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

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunTranspose(t *testing.T) {
	out, err := execute(t, "transpose", "--width", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Transpose: 2-entry words, 1 block(s)")
	assert.Contains(t, out, "Input block 0 (2×2):\n 0 1\n 2 3\n")
	assert.Contains(t, out, "Output block 0 (2×2):\n 0 2\n 1 3\n")
	assert.Contains(t, out, "All 1 block(s) match the in-memory transpose.")
}

func TestRunMemTranspose(t *testing.T) {
	for _, overlap := range []string{"--overlap=false", "--overlap=true"} {
		out, err := execute(t, "mem-transpose", "--width=2", "--rows=2", "--cols=4", "--blocks=2", overlap)
		require.NoError(t, err, overlap)
		assert.Contains(t, out, "Input block 0 (2×4):\n 0 1 2 3\n 4 5 6 7\n", overlap)
		assert.Contains(t, out, "Output block 0 (4×2):\n 0 4\n 1 5\n 2 6\n 3 7\n", overlap)
		assert.Contains(t, out, "Output block 1 (4×2):\n  8 12\n  9 13\n 10 14\n 11 15\n", overlap)
		assert.Contains(t, out, "All 2 block(s) match the in-memory transpose.", overlap)
	}
}

func TestRunMemWordTranspose(t *testing.T) {
	out, err := execute(t, "mem-word-transpose", "--width=2", "--rows=2", "--cols=4")
	require.NoError(t, err)
	assert.Contains(t, out, "Output block 0 (2×4):\n 0 1 4 5\n 2 3 6 7\n")
	assert.NotContains(t, out, "in-memory transpose")
}

func TestRunChain(t *testing.T) {
	out, err := execute(t, "mem-transpose", "mem-transpose", "--width=2", "--rows=2", "--cols=4", "--depth=1")
	require.NoError(t, err)
	assert.Contains(t, out, "Mem-Transpose → Mem-Transpose")
	assert.Contains(t, out, "Output block 0 (2×4):\n 0 1 2 3\n 4 5 6 7\n")
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"rotate"}, `unknown transform "rotate"`},
		{[]string{"transpose", "mem-transpose", "--width=2", "--rows=4", "--cols=4"}, "cannot be chained"},
		{[]string{"transpose", "--overlap", "--width=2"}, "--overlap needs exactly one mem-* transform"},
		{[]string{"mem-transpose", "--width=4", "--rows=6", "--cols=8"}, "mem-transpose: "},
		{[]string{"forward", "--blocks=0"}, "--blocks must be at least 1"},
	}
	for _, tt := range tests {
		_, err := execute(t, tt.args...)
		assert.ErrorContains(t, err, tt.want, "%v", tt.args)
	}
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Dispatch: ")
	for _, name := range []string{"sym-upper", "sym-lower", "transpose", "forward", "mem-word-transpose", "mem-transpose"} {
		assert.Contains(t, out, name)
	}
}
