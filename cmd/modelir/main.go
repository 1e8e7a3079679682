// modelir loads probabilistic model documents into a DAG-safe IR and runs
// the IR passes over them.
//
// Usage:
//
//	# Deep-copy a model and compare the shape of source and copy
//	modelir copy counter.yaml --expand
//
//	# Print a model with formula references replaced by their definitions
//	modelir expand counter.yaml -p props.yaml
//
//	# Evaluate labels, formulas and properties in one state
//	modelir eval counter.yaml --const p=0.5 --state x=1,y=0
//
//	# Report node counts and sharing
//	modelir stats counter.yaml --expand
//
//	# Run evaluation scenarios against golden traces
//	modelir test ./scenarios
package main

import (
	"fmt"
	"os"

	"github.com/roach88/modelir/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
