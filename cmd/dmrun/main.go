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

// Command dmrun streams generated blocks through one or more data mover
// transforms and prints the blocks going in and coming out.
//
// Usage:
//
//	dmrun transpose --width 4 --blocks 2
//	dmrun mem-transpose --width 2 --rows 2 --cols 4
//	dmrun mem-transpose mem-transpose --rows 8 --cols 8   # chained
//	dmrun list
//
// Chained transforms run as a pipeline, each stage on its own goroutine.
// Pass -v=2 to see per-stage logging.
package main

import (
	goflag "flag"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		klog.Flush()
		os.Exit(1)
	}
	klog.Flush()
}

func newRootCmd() *cobra.Command {
	var cfg config
	cmd := &cobra.Command{
		Use:   "dmrun transform [transform...]",
		Short: "Run streaming block transforms on generated data",
		Long: "dmrun generates blocks of consecutive integers, streams them word by word\n" +
			"through the named transforms and prints input and output blocks.\n\n" +
			"Transforms: " + transformNames() + ".",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.transforms = args
			return run(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.width, "width", 0, "Entries per word (default: lanes of an int32 register)")
	flags.IntVar(&cfg.rows, "rows", 0, "Block rows for mem-* transforms (default: 2*width)")
	flags.IntVar(&cfg.cols, "cols", 0, "Block columns for mem-* transforms (default: 2*width)")
	flags.IntVar(&cfg.blocks, "blocks", 1, "Number of blocks to stream")
	flags.IntVar(&cfg.depth, "depth", 0, "Stream depth in words (default: stream.DefaultDepth)")
	flags.BoolVar(&cfg.overlap, "overlap", false, "Overlap fill and drain of consecutive blocks (single mem-* transform only)")

	klogFlags := goflag.NewFlagSet("klog", goflag.ExitOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)

	cmd.AddCommand(newListCmd())
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available transforms and the detected word width",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return list(cmd.OutOrStdout())
		},
	}
}
