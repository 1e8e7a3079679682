package testutil

import (
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"

	"github.com/roach88/modelir/internal/ast"
)

// Leaves returns a fresh set of leaf expressions covering every leaf kind the
// dedup layer distinguishes: variables (including a clock), constants,
// labels, literals and an unresolved identifier.
func Leaves() []ast.Expression {
	return []ast.Expression{
		ast.NewVar("x", 0, ast.TypeInt),
		ast.NewVar("c", 1, ast.TypeClock),
		ast.NewConstantRef("N", ast.TypeInt),
		ast.NewLabelRef("goal"),
		ast.NewLiteralInt(1),
		ast.NewLiteralBool(true),
		ast.NewIdent("y"),
	}
}

// BuildDAG deterministically builds an expression DAG from a recipe. Each
// step adds one node whose operands are picked from the nodes built so far,
// so later steps share earlier nodes. Some steps add fresh literals that are
// structurally equal to existing ones.
//
// The root is a max(...) over every node built, so all of them are reachable.
func BuildDAG(recipe []int) ast.Expression {
	pool := Leaves()
	pick := func(i int) ast.Expression { return pool[i%len(pool)] }

	for _, r := range recipe {
		if r < 0 {
			r = -r
		}
		a, b := pick(r/7), pick(r/49)
		var n ast.Expression
		switch r % 7 {
		case 0:
			n = ast.NewBinaryOp(ast.OpPlus, a, b)
		case 1:
			n = ast.NewBinaryOp(ast.OpLt, a, b)
		case 2:
			n = ast.NewBinaryOp(ast.OpAnd, a, b)
		case 3:
			n = ast.NewUnaryOp(ast.OpNot, a)
		case 4:
			n = ast.NewITE(a, b, a)
		case 5:
			n = ast.NewFunc(ast.FuncMax, a, b)
		default:
			n = ast.NewLiteralInt(int64(r % 3))
		}
		pool = append(pool, n)
	}
	return ast.NewFunc(ast.FuncMax, pool...)
}

// GenRecipe generates recipes for BuildDAG.
func GenRecipe() gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, 10000))
}
