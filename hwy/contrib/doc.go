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

// Package contrib holds the stages and runtime pieces built on top of the
// hwy word operations.
//
// # Subpackages
//
// The contrib package is organized into subdirectories:
//
//   - datamover: streaming block reordering stages (mirrors, transposes,
//     forwarding), pipelines and the batch API
//   - workerpool: persistent worker pool used to spread in-memory blocks
//     across cores
//
// # Data Movers (hwy/contrib/datamover)
//
//	import "github.com/ajroetker/hwy-datamover/hwy/contrib/datamover"
//
//	t, _ := datamover.NewMemTranspose[float32](datamover.Geometry{Width: 8, Rows: 64, Cols: 32})
//	err := t.Run(blocks, in, out)
//
// # Worker Pool (hwy/contrib/workerpool)
//
//	pool := workerpool.New(0)
//	defer pool.Close()
//	err := datamover.Apply(pool, newKernel, src, dst)
package contrib
