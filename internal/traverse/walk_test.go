package traverse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/modelir/internal/ast"
)

func TestNodesVisitsInPreOrderOnce(t *testing.T) {
	root, shared := diamond()
	lt := shared.(*ast.BinaryOp)
	not := root.(*ast.BinaryOp).Right

	nodes := Nodes(root)
	assert.Equal(t, []ast.Node{root, shared, lt.Left, lt.Right, not}, nodes)
}

func TestWalkStopsOnError(t *testing.T) {
	root, shared := diamond()
	stop := errors.New("stop")

	var seen []ast.Node
	err := Walk(root, func(n ast.Node) error {
		seen = append(seen, n)
		if n == shared {
			return stop
		}
		return nil
	})

	require.ErrorIs(t, err, stop)
	assert.Equal(t, []ast.Node{root, shared}, seen)
}

func TestWalkWithDedupSkipsEqualPropositions(t *testing.T) {
	a := ast.NewLiteralBool(true)
	b := ast.NewLiteralBool(true)
	root := ast.NewFunc(ast.FuncMax, ast.NewIdent("y"), a, b)

	assert.Len(t, Nodes(root), 4)

	count := 0
	require.NoError(t, Walk(root, func(ast.Node) error {
		count++
		return nil
	}, WithDedup()))
	assert.Equal(t, 3, count)
}
