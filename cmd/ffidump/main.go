// Copyright 2025 jax-go Authors
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

// ffidump prints the registered foreign-call symbol table: the linear
// algebra entry points, their buffer slots and their attributes.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/jax/ffi"
	_ "github.com/matsen/jax/lapack" // registers the entry points
)

func main() {
	root := &cobra.Command{
		Use:          "ffidump",
		Short:        "Inspect the registered FFI symbol table",
		SilenceUsage: true,
	}
	root.AddCommand(listCmd(), describeCmd())
	if err := root.Execute(); err != nil {
		slog.Error("ffidump failed", "error", err)
		os.Exit(1)
	}
}

func listCmd() *cobra.Command {
	var long bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all registered symbols",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range ffi.Symbols() {
				if !long {
					fmt.Println(name)
					continue
				}
				h, _ := ffi.Lookup(name)
				fmt.Printf("%s %s\n", name, h.Signature())
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false, "include each symbol's signature")
	return cmd
}

func describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <symbol>",
		Short: "Print the full binding of one symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, ok := ffi.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown symbol %q", args[0])
			}
			fmt.Printf("%s\n  signature: %s\n", args[0], h.Signature())
			fmt.Println("  args:")
			for _, s := range h.ArgSpecs() {
				fmt.Printf("    %-24s %s\n", s.Name, s.DType)
			}
			fmt.Println("  rets:")
			for _, s := range h.RetSpecs() {
				fmt.Printf("    %-24s %s\n", s.Name, s.DType)
			}
			if attrs := h.AttrSpecs(); len(attrs) > 0 {
				fmt.Println("  attrs:")
				for _, a := range attrs {
					fmt.Printf("    %-24s %s\n", a.Name(), a.TypeName())
				}
			}
			return nil
		},
	}
}
