package traverse

import "github.com/roach88/modelir/internal/ast"

// Dedupable reports whether n may be merged with structurally equal nodes.
//
// Literals and references to constants, labels and observables always
// qualify. Operators, function calls, conditionals and formula references
// qualify when the node is a proposition. Variable references never do:
// merging two references to a clock variable with different inferred types
// loses type information downstream.
func Dedupable(n ast.Node) bool {
	switch e := n.(type) {
	case *ast.Literal, *ast.ConstantRef, *ast.LabelRef, *ast.ObsRef:
		return true
	case *ast.BinaryOp, *ast.Func, *ast.ITE, *ast.UnaryOp, *ast.FormulaRef:
		return e.(ast.Expression).IsProposition()
	default:
		return false
	}
}

type structuralEntry[R any] struct {
	node   ast.Node
	result R
}

// structuralCache buckets results by structural digest and confirms each
// candidate with ast.Equal, so a digest collision can never merge distinct
// nodes.
type structuralCache[R any] struct {
	hasher  *ast.Hasher
	buckets map[ast.Digest][]structuralEntry[R]
}

func newStructuralCache[R any]() *structuralCache[R] {
	return &structuralCache[R]{
		hasher:  ast.NewHasher(),
		buckets: make(map[ast.Digest][]structuralEntry[R]),
	}
}

func (c *structuralCache[R]) lookup(n ast.Node) (R, bool) {
	for _, e := range c.buckets[c.hasher.Sum(n)] {
		if e.node == n || ast.Equal(e.node, n) {
			return e.result, true
		}
	}
	var zero R
	return zero, false
}

func (c *structuralCache[R]) store(n ast.Node, r R) {
	d := c.hasher.Sum(n)
	c.buckets[d] = append(c.buckets[d], structuralEntry[R]{node: n, result: r})
}
