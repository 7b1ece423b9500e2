// Package main provides the CLI entrypoint for mockgraph.
//
// mockgraph works on YAML declaration files written against the store
// domain:
//   - tree compiles the declarations of one set and prints the tree
//   - check compiles and builds every set and reports all problems
package main

import (
	"fmt"
	"os"
)

const appName = "mockgraph"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err.Error())
		os.Exit(1)
	}
}
