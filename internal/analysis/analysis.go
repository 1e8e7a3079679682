// Package analysis reports the shape of an AST: how many physical nodes it
// has, how many of them are shared, and how large it would be as a tree.
package analysis

import (
	"fmt"
	"io"
	"math"
	"sort"
	"text/tabwriter"

	"github.com/roach88/modelir/internal/ast"
	"github.com/roach88/modelir/internal/traverse"
)

// Report describes one rooted graph.
type Report struct {
	Nodes        int            `json:"nodes"`        // Distinct physical nodes
	TreeSize     int64          `json:"tree_size"`    // Nodes counted once per path from the root
	Shared       int            `json:"shared"`       // Nodes with more than one parent slot
	Propositions int            `json:"propositions"` // Expression nodes classified as propositions
	Depth        int            `json:"depth"`        // Longest root to leaf path, in nodes
	ByKind       map[string]int `json:"by_kind"`      // Distinct nodes per kind name
}

// Sharing returns TreeSize / Nodes; 1 means the graph is a tree.
func (r *Report) Sharing() float64 {
	if r.Nodes == 0 {
		return 0
	}
	return float64(r.TreeSize) / float64(r.Nodes)
}

type shape struct {
	size  int64
	depth int
}

// Analyze computes the report for root. The options configure the
// underlying passes (logger, recorder). TreeSize saturates at MaxInt64.
func Analyze(root ast.Node, opts ...traverse.Option) (*Report, error) {
	r := &Report{ByKind: make(map[string]int)}
	if ast.IsNil(root) {
		return r, nil
	}

	parents := make(map[ast.Node]int)
	err := traverse.Walk(root, func(n ast.Node) error {
		r.Nodes++
		r.ByKind[n.Kind().String()]++
		if e, ok := n.(ast.Expression); ok && e.IsProposition() {
			r.Propositions++
		}
		for _, c := range n.Children() {
			if !ast.IsNil(c) {
				parents[c]++
			}
		}
		return nil
	}, append([]traverse.Option{traverse.WithName("analysis.walk")}, opts...)...)
	if err != nil {
		return nil, err
	}
	for _, k := range parents {
		if k > 1 {
			r.Shared++
		}
	}

	var pass *traverse.Pass[shape]
	pass = traverse.New[shape](traverse.Uniform[shape](func(n ast.Node) (shape, error) {
		s := shape{size: 1}
		for _, c := range n.Children() {
			if ast.IsNil(c) {
				continue
			}
			cs, err := pass.Visit(c)
			if err != nil {
				return shape{}, err
			}
			s.size += cs.size
			if s.size < 0 {
				s.size = math.MaxInt64
			}
			s.depth = max(s.depth, cs.depth)
		}
		s.depth++
		return s, nil
	}), append([]traverse.Option{traverse.WithName("analysis.shape")}, opts...)...)

	top, err := pass.Visit(root)
	if err != nil {
		return nil, err
	}
	pass.Report()
	r.TreeSize = top.size
	r.Depth = top.depth
	return r, nil
}

// Write renders the report as an aligned table.
func (r *Report) Write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "nodes\t%d\n", r.Nodes)
	fmt.Fprintf(tw, "tree size\t%d\n", r.TreeSize)
	fmt.Fprintf(tw, "shared\t%d\n", r.Shared)
	fmt.Fprintf(tw, "propositions\t%d\n", r.Propositions)
	fmt.Fprintf(tw, "depth\t%d\n", r.Depth)
	fmt.Fprintf(tw, "sharing\t%.2f\n", r.Sharing())

	kinds := make([]string, 0, len(r.ByKind))
	for k := range r.ByKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(tw, "  %s\t%d\n", k, r.ByKind[k])
	}
	return tw.Flush()
}
