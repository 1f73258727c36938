// Copyright 2025 walteh LLC
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
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/walteh/reblock/cmd/reblock/opts"
)

func main() {
	os.Exit(run(context.Background(), opts.New(), os.Args[1:]))
}

// run executes the command tree and returns the process exit code.
// A failing command prints its error exactly once.
func run(ctx context.Context, o *opts.RootOpts, args []string) int {
	rootCmd := NewRootCmd(o)
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(o.Stderr, "❌ %s\n", color.New(color.FgRed).Sprint(err.Error()))
		return 1
	}
	return 0
}
